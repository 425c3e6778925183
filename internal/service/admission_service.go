package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shikshahq/school-console-api/internal/models"
	"github.com/shikshahq/school-console-api/internal/store"
	appErrors "github.com/shikshahq/school-console-api/pkg/errors"
	"github.com/shikshahq/school-console-api/pkg/export"
)

type admissionState interface {
	Master() models.MasterData
	Students() []models.Student
	Sessions() []models.Session
	Settings() models.Settings
	Update(ctx context.Context, fn func(*store.State) error) error
}

// csvHeaders is the import/export column contract, in order.
var csvHeaders = []string{
	"FirstName", "MiddleName", "LastName", "Class", "Section", "RollNo",
	"Gender", "DOB", "BloodGroup", "Category", "Religion", "Caste",
	"Mobile", "Email", "AdmissionDate",
	"FatherName", "FatherPhone", "MotherName", "MotherPhone",
	"CurrentAddress", "PermanentAddress",
}

// AdmitRequest carries a new admission.
type AdmitRequest struct {
	FirstName  string `json:"first_name" validate:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`

	Class    string   `json:"class" validate:"required"`
	Section  string   `json:"section"`
	RollNo   string   `json:"roll_no"`
	Subjects []string `json:"subjects"`

	Gender     string `json:"gender"`
	DOB        string `json:"dob"`
	BloodGroup string `json:"blood_group"`
	Category   string `json:"category"`
	Religion   string `json:"religion"`
	Caste      string `json:"caste"`
	Mobile     string `json:"mobile"`
	Email      string `json:"email" validate:"omitempty,email"`

	AdmissionDate    string `json:"admission_date"`
	CurrentAddress   string `json:"current_address"`
	PermanentAddress string `json:"permanent_address"`

	Father        models.Guardian `json:"father"`
	Mother        models.Guardian `json:"mother"`
	OtherGuardian models.Guardian `json:"other_guardian"`
}

// ImportResult summarises a CSV import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Warnings []string `json:"warnings,omitempty"`
}

// GenerateAdmissionID derives the human-readable admission number. Serial is
// the caller-supplied monotonic counter; the function itself never mutates
// state.
func GenerateAdmissionID(settings models.Settings, serial int, class, section, sessionName, admissionDate string) string {
	year := admissionYear(admissionDate)
	padded := padSerial(serial, settings.IDPadding)

	if settings.IDType == models.IDTypePattern {
		id := settings.IDPattern
		// Each token is substituted at its first occurrence only; a repeated
		// token keeps later occurrences verbatim.
		id = strings.Replace(id, "[PREFIX]", settings.IDPrefix, 1)
		id = strings.Replace(id, "[SEP]", settings.IDSeparator, 1)
		id = strings.Replace(id, "[YEAR]", year, 1)
		id = strings.Replace(id, "[SESSION]", sessionName, 1)
		id = strings.Replace(id, "[CLASS]", class, 1)
		id = strings.Replace(id, "[SECTION]", section, 1)
		id = strings.Replace(id, "[SERIAL]", padded, 1)
		return id
	}

	var parts []string
	if settings.IDPrefix != "" {
		parts = append(parts, settings.IDPrefix)
	}
	if settings.IncludeDateInID {
		parts = append(parts, year)
	}
	if settings.IncludeClassInID && class != "" {
		parts = append(parts, class)
	}
	parts = append(parts, padded)
	return strings.Join(parts, settings.IDSeparator)
}

func admissionYear(admissionDate string) string {
	if t, err := time.Parse("2006-01-02", admissionDate); err == nil {
		return strconv.Itoa(t.Year())
	}
	return strconv.Itoa(time.Now().Year())
}

func padSerial(serial, padding int) string {
	if padding <= 0 {
		return strconv.Itoa(serial)
	}
	return fmt.Sprintf("%0*d", padding, serial)
}

// AdmissionService creates student records: single admissions and CSV bulk
// import, both advancing the serial counter exactly once per student.
type AdmissionService struct {
	state     admissionState
	csv       *export.CSVExporter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdmissionService constructs an AdmissionService.
func NewAdmissionService(state admissionState, csvExporter *export.CSVExporter, validate *validator.Validate, logger *zap.Logger) *AdmissionService {
	if csvExporter == nil {
		csvExporter = export.NewCSVExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{state: state, csv: csvExporter, validator: validate, logger: logger}
}

// PreviewID shows the ID the next admission would receive without consuming
// the serial.
func (s *AdmissionService) PreviewID(_ context.Context, class, section, admissionDate string) string {
	settings := s.state.Settings()
	sessionName := ""
	if current := models.CurrentSession(s.state.Sessions()); current != nil {
		sessionName = current.Name
	}
	return GenerateAdmissionID(settings, settings.IDStartNumber, class, section, sessionName, admissionDate)
}

// Admit creates one student and increments the serial counter in the same
// mutation.
func (s *AdmissionService) Admit(ctx context.Context, req AdmitRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admission payload")
	}

	var created models.Student
	err := s.state.Update(ctx, func(st *store.State) error {
		student, err := buildStudent(st, req)
		if err != nil {
			return err
		}
		st.Students = append(st.Students, *student)
		st.Settings.IDStartNumber++
		created = *student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func buildStudent(st *store.State, req AdmitRequest) (*models.Student, error) {
	if !contains(st.Master.Classes, req.Class) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown class: "+req.Class)
	}
	current := models.CurrentSession(st.Sessions)
	if current == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no current session configured")
	}

	admissionDate := req.AdmissionDate
	if admissionDate == "" {
		admissionDate = time.Now().Format("2006-01-02")
	}

	id := GenerateAdmissionID(st.Settings, st.Settings.IDStartNumber, req.Class, req.Section, current.Name, admissionDate)
	for i := range st.Students {
		if st.Students[i].ID == id {
			return nil, appErrors.Clone(appErrors.ErrConflict, "admission ID already in use: "+id)
		}
	}

	return &models.Student{
		ID:                 id,
		AdmissionSessionID: current.ID,
		AdmissionDate:      admissionDate,
		FirstName:          req.FirstName,
		MiddleName:         req.MiddleName,
		LastName:           req.LastName,
		Class:              req.Class,
		Section:            req.Section,
		RollNo:             req.RollNo,
		Subjects:           req.Subjects,
		Gender:             req.Gender,
		DOB:                req.DOB,
		BloodGroup:         req.BloodGroup,
		Category:           req.Category,
		Religion:           req.Religion,
		Caste:              req.Caste,
		Mobile:             req.Mobile,
		Email:              req.Email,
		CurrentAddress:     req.CurrentAddress,
		PermanentAddress:   req.PermanentAddress,
		Father:             req.Father,
		Mother:             req.Mother,
		OtherGuardian:      req.OtherGuardian,
		ParentLoginID:      id,
		ParentLoginPassword: uuid.NewString()[:8],
		Marks:              models.Marks{},
	}, nil
}

// ImportCSV bulk-creates students. A row is accepted only when FirstName and
// Class are both non-empty; every other row is counted as skipped. All
// accepted rows land in one snapshot mutation.
func (s *AdmissionService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unreadable CSV file")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "CSV file is empty")
	}

	col := make(map[string]int, len(records[0]))
	for i, header := range records[0] {
		col[strings.TrimSpace(header)] = i
	}
	field := func(row []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	result := &ImportResult{}
	err = s.state.Update(ctx, func(st *store.State) error {
		for n, row := range records[1:] {
			req := AdmitRequest{
				FirstName:        field(row, "FirstName"),
				MiddleName:       field(row, "MiddleName"),
				LastName:         field(row, "LastName"),
				Class:            field(row, "Class"),
				Section:          field(row, "Section"),
				RollNo:           field(row, "RollNo"),
				Gender:           field(row, "Gender"),
				DOB:              field(row, "DOB"),
				BloodGroup:       field(row, "BloodGroup"),
				Category:         field(row, "Category"),
				Religion:         field(row, "Religion"),
				Caste:            field(row, "Caste"),
				Mobile:           field(row, "Mobile"),
				Email:            field(row, "Email"),
				AdmissionDate:    field(row, "AdmissionDate"),
				CurrentAddress:   field(row, "CurrentAddress"),
				PermanentAddress: field(row, "PermanentAddress"),
				Father:           models.Guardian{Name: field(row, "FatherName"), Phone: field(row, "FatherPhone")},
				Mother:           models.Guardian{Name: field(row, "MotherName"), Phone: field(row, "MotherPhone")},
			}
			if req.FirstName == "" || req.Class == "" {
				result.Skipped++
				continue
			}
			student, err := buildStudent(st, req)
			if err != nil {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", n+2, err))
				continue
			}
			st.Students = append(st.Students, *student)
			st.Settings.IDStartNumber++
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ExportCSV renders every student using the import column contract, so an
// export can be re-imported.
func (s *AdmissionService) ExportCSV(_ context.Context) ([]byte, error) {
	dataset := export.Dataset{Headers: csvHeaders}
	for _, st := range s.state.Students() {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"FirstName":        st.FirstName,
			"MiddleName":       st.MiddleName,
			"LastName":         st.LastName,
			"Class":            st.Class,
			"Section":          st.Section,
			"RollNo":           st.RollNo,
			"Gender":           st.Gender,
			"DOB":              st.DOB,
			"BloodGroup":       st.BloodGroup,
			"Category":         st.Category,
			"Religion":         st.Religion,
			"Caste":            st.Caste,
			"Mobile":           st.Mobile,
			"Email":            st.Email,
			"AdmissionDate":    st.AdmissionDate,
			"FatherName":       st.Father.Name,
			"FatherPhone":      st.Father.Phone,
			"MotherName":       st.Mother.Name,
			"MotherPhone":      st.Mother.Phone,
			"CurrentAddress":   st.CurrentAddress,
			"PermanentAddress": st.PermanentAddress,
		})
	}
	return s.csv.Render(dataset)
}
