package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/export"
)

type reportState interface {
	Master() models.MasterData
	Students() []models.Student
	Profile() models.SchoolProfile
}

// AdmitCardsRequest selects the schedule and students to render cards for.
// An empty StudentIDs list means every student of the class.
type AdmitCardsRequest struct {
	Class      string                 `json:"class" validate:"required"`
	Term       string                 `json:"term" validate:"required"`
	Exam       string                 `json:"exam" validate:"required"`
	StudentIDs []string               `json:"student_ids"`
	Fields     models.AdmitCardFields `json:"fields"`
}

// admitCardNote is the static instruction block printed on every card.
const admitCardNote = "Candidates must carry this admit card to every examination. " +
	"Reach the examination hall at least 15 minutes before the scheduled start time. " +
	"Electronic devices are not permitted inside the hall."

// CalculateGrade maps a percentage onto the grade ladder. Lower bounds are
// inclusive; every percentage maps to exactly one grade.
func CalculateGrade(percentage float64) string {
	switch {
	case percentage >= 91:
		return "A1"
	case percentage >= 81:
		return "A2"
	case percentage >= 71:
		return "B1"
	case percentage >= 61:
		return "B2"
	case percentage >= 51:
		return "C1"
	case percentage >= 41:
		return "C2"
	case percentage >= 33:
		return "D"
	default:
		return "E"
	}
}

// ReportService turns a student, the master data and the marks ledger into
// printable report-card and admit-card view models plus PDF/CSV documents.
type ReportService struct {
	state     reportState
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs a ReportService.
func NewReportService(state reportState, csv *export.CSVExporter, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{state: state, csv: csv, pdf: export.NewPDFExporter(), validator: validate, logger: logger}
}

// BuildReportCard assembles the term report for one student.
func (s *ReportService) BuildReportCard(_ context.Context, studentID, term string) (*models.ReportCard, error) {
	master := s.state.Master()
	if !contains(master.ExamTerms, term) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}
	students := s.state.Students()
	idx := findStudentIndex(students, studentID)
	if idx < 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	student := students[idx]

	exams := master.TermExams[term]
	subjects := student.Subjects
	if len(subjects) == 0 {
		for _, assignment := range master.ClassSubjects[student.Class] {
			subjects = append(subjects, assignment.Name)
		}
	}

	card := &models.ReportCard{
		School:      s.state.Profile(),
		StudentID:   student.ID,
		StudentName: student.FullName(),
		Class:       student.Class,
		Section:     student.Section,
		RollNo:      student.RollNo,
		Term:        term,
	}

	for _, subject := range subjects {
		row := models.SubjectRow{Subject: subject}
		for _, exam := range exams {
			cell := models.ExamCell{ExamName: exam.Name, MaxMarks: exam.MaxMarks}
			if contains(exam.Subjects, subject) {
				cell.Applicable = true
				cell.Score = student.Marks.Score(term, exam.Name, subject)
				if cell.Score != "" {
					row.MaxTotal += exam.MaxMarks
					if value, err := strconv.ParseFloat(cell.Score, 64); err == nil {
						row.ObtainedTotal += value
						cell.OverMax = value > float64(exam.MaxMarks)
					}
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		card.GrandObtained += row.ObtainedTotal
		card.GrandMax += row.MaxTotal
		card.Subjects = append(card.Subjects, row)
	}

	if card.GrandMax > 0 {
		card.Percentage = 100 * card.GrandObtained / float64(card.GrandMax)
	}
	card.Grade = CalculateGrade(card.Percentage)
	card.CoScholastic = coScholasticRows(&master, term, student.Class)
	return card, nil
}

// coScholasticRows includes only areas assigned to both the term and the
// student's class. Grades stay placeholders: no entry workflow feeds them yet.
func coScholasticRows(master *models.MasterData, term, class string) []models.CoScholasticRow {
	classAreas := make(map[string]bool)
	for _, area := range master.ClassCoScholasticAreas[class] {
		classAreas[area] = true
	}
	var rows []models.CoScholasticRow
	for _, area := range master.TermCoScholasticAreas[term] {
		if !classAreas[area] {
			continue
		}
		rows = append(rows, models.CoScholasticRow{
			Area:        area,
			Subjects:    master.CoScholasticSubjects[area],
			Grade:       "A",
			Remark:      "",
			Placeholder: true,
		})
	}
	return rows
}

// BuildAdmitCards renders one admit card per selected student from the
// stored schedule of the (class, term, exam) triple.
func (s *ReportService) BuildAdmitCards(_ context.Context, req AdmitCardsRequest) ([]models.AdmitCard, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admit card payload")
	}
	master := s.state.Master()
	schedule := master.FindSchedule(req.Class, req.Term, req.Exam)
	if schedule == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no schedule exists for this class, term and exam")
	}

	entries := make([]models.ScheduleEntry, len(schedule.Entries))
	copy(entries, schedule.Entries)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	wanted := make(map[string]bool, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		wanted[id] = true
	}

	profile := s.state.Profile()
	var cards []models.AdmitCard
	for _, student := range s.state.Students() {
		if student.Class != req.Class {
			continue
		}
		if len(wanted) > 0 && !wanted[student.ID] {
			continue
		}
		cards = append(cards, models.AdmitCard{
			School:      profile,
			StudentID:   student.ID,
			StudentName: student.FullName(),
			Class:       student.Class,
			Section:     student.Section,
			RollNo:      student.RollNo,
			DOB:         student.DOB,
			Term:        req.Term,
			ExamName:    req.Exam,
			Entries:     entries,
			Fields:      req.Fields,
			Note:        admitCardNote,
		})
	}
	if len(cards) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no matching students in this class")
	}
	return cards, nil
}

// ReportCardPDF renders one report card as a PDF document.
func (s *ReportService) ReportCardPDF(ctx context.Context, studentID, term string) ([]byte, error) {
	card, err := s.BuildReportCard(ctx, studentID, term)
	if err != nil {
		return nil, err
	}

	doc := export.NewDocument()
	doc.AddPage()
	doc.Letterhead(card.School.Name, card.School.Address, card.School.Phone, card.School.Affiliation)
	doc.SectionTitle(fmt.Sprintf("Report Card - %s", card.Term))
	doc.KeyValues([][2]string{
		{"Student", card.StudentName},
		{"Admission No", card.StudentID},
		{"Class", classSectionLabel(card.Class, card.Section)},
		{"Roll No", card.RollNo},
	})

	headers := []string{"Subject"}
	widths := []float64{46}
	examWidth := 0.0
	if n := len(card.Subjects); n > 0 && len(card.Subjects[0].Cells) > 0 {
		examWidth = 110.0 / float64(len(card.Subjects[0].Cells))
		for _, cell := range card.Subjects[0].Cells {
			headers = append(headers, fmt.Sprintf("%s (%d)", cell.ExamName, cell.MaxMarks))
			widths = append(widths, examWidth)
		}
	}
	headers = append(headers, "Total")
	widths = append(widths, 30)

	rows := make([][]string, 0, len(card.Subjects))
	for _, subject := range card.Subjects {
		row := []string{subject.Subject}
		for _, cell := range subject.Cells {
			if !cell.Applicable {
				row = append(row, "N/A")
			} else {
				row = append(row, cell.Score)
			}
		}
		row = append(row, fmt.Sprintf("%s / %d", formatScore(subject.ObtainedTotal), subject.MaxTotal))
		rows = append(rows, row)
	}
	doc.Table(headers, widths, rows)

	doc.KeyValues([][2]string{
		{"Grand Total", fmt.Sprintf("%s / %d", formatScore(card.GrandObtained), card.GrandMax)},
		{"Percentage", fmt.Sprintf("%.2f%%", card.Percentage)},
		{"Grade", card.Grade},
		{"", ""},
	})

	if len(card.CoScholastic) > 0 {
		doc.SectionTitle("Co-Scholastic Areas")
		coRows := make([][]string, 0, len(card.CoScholastic))
		for _, row := range card.CoScholastic {
			coRows = append(coRows, []string{row.Area, row.Grade})
		}
		doc.Table([]string{"Area", "Grade"}, []float64{140, 46}, coRows)
	}

	return doc.Output()
}

// AdmitCardsPDF renders the selected admit cards, one page per student.
func (s *ReportService) AdmitCardsPDF(ctx context.Context, req AdmitCardsRequest) ([]byte, error) {
	cards, err := s.BuildAdmitCards(ctx, req)
	if err != nil {
		return nil, err
	}

	doc := export.NewDocument()
	for _, card := range cards {
		doc.AddPage()
		doc.Letterhead(card.School.Name, card.School.Address, card.School.Phone)
		doc.SectionTitle(fmt.Sprintf("Admit Card - %s (%s)", card.ExamName, card.Term))

		pairs := [][2]string{
			{"Student", card.StudentName},
			{"Admission No", card.StudentID},
			{"Class", card.Class},
		}
		if card.Fields.ShowSection && card.Section != "" {
			pairs = append(pairs, [2]string{"Section", card.Section})
		}
		if card.Fields.ShowRollNo && card.RollNo != "" {
			pairs = append(pairs, [2]string{"Roll No", card.RollNo})
		}
		if card.Fields.ShowDOB && card.DOB != "" {
			pairs = append(pairs, [2]string{"Date of Birth", card.DOB})
		}
		doc.KeyValues(pairs)

		rows := make([][]string, 0, len(card.Entries))
		for _, entry := range card.Entries {
			rows = append(rows, []string{entry.Subject, entry.Date, entry.StartTime, entry.EndTime})
		}
		doc.Table([]string{"Subject", "Date", "Start", "End"}, []float64{76, 40, 35, 35}, rows)
		doc.Paragraph(card.Note)
	}

	return doc.Output()
}

// ClassMarksCSV exports the marks of every student in a class for one exam.
func (s *ReportService) ClassMarksCSV(_ context.Context, class, term, exam string) ([]byte, error) {
	dataset, err := s.classMarksDataset(class, term, exam)
	if err != nil {
		return nil, err
	}
	return s.csv.Render(dataset)
}

// ClassMarksPDF renders the same class marks sheet as a tabular PDF.
func (s *ReportService) ClassMarksPDF(_ context.Context, class, term, exam string) ([]byte, error) {
	dataset, err := s.classMarksDataset(class, term, exam)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("Class %s - %s (%s)", class, exam, term)
	return s.pdf.Render(dataset, title)
}

func (s *ReportService) classMarksDataset(class, term, exam string) (export.Dataset, error) {
	master := s.state.Master()
	def := master.FindExam(term, exam)
	if def == nil {
		return export.Dataset{}, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	subjects, err := applicableSubjects(&master, class, term, exam)
	if err != nil {
		return export.Dataset{}, err
	}

	headers := append([]string{"AdmissionNo", "Name", "RollNo"}, subjects...)
	dataset := export.Dataset{Headers: headers}
	for _, student := range s.state.Students() {
		if student.Class != class {
			continue
		}
		row := map[string]string{
			"AdmissionNo": student.ID,
			"Name":        student.FullName(),
			"RollNo":      student.RollNo,
		}
		for _, subject := range subjects {
			row[subject] = student.Marks.Score(term, exam, subject)
		}
		dataset.Rows = append(dataset.Rows, row)
	}
	return dataset, nil
}

func classSectionLabel(class, section string) string {
	if section == "" {
		return class
	}
	return class + "-" + section
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
