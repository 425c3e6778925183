package models

// ListKind identifies one of the master-data string pools. Mutations go
// through a closed set of kinds rather than dynamic field names.
type ListKind string

const (
	ListClasses    ListKind = "classes"
	ListSections   ListKind = "sections"
	ListSubjects   ListKind = "subjects"
	ListCategories ListKind = "categories"
	ListReligions  ListKind = "religions"
	ListCastes     ListKind = "castes"
)

// ValidListKinds enumerates every pool the master data carries.
var ValidListKinds = []ListKind{
	ListClasses, ListSections, ListSubjects, ListCategories, ListReligions, ListCastes,
}

// SubjectType marks a class subject as mandatory or optional.
type SubjectType string

const (
	SubjectMandatory SubjectType = "Mandatory"
	SubjectOptional  SubjectType = "Optional"
)

// SubjectAssignment binds a subject to a class with its type.
type SubjectAssignment struct {
	Name string      `json:"name"`
	Type SubjectType `json:"type"`
}

// ExamDefinition describes a named assessment within a term.
type ExamDefinition struct {
	Name     string   `json:"name"`
	MaxMarks int      `json:"max_marks"`
	Subjects []string `json:"subjects"`
}

// ScheduleEntry assigns a date and time window to one subject.
type ScheduleEntry struct {
	Subject   string `json:"subject"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ClassExamSchedule holds the timetable for one (class, term, exam) triple.
// At most one schedule exists per triple.
type ClassExamSchedule struct {
	ID        string          `json:"id"`
	ClassName string          `json:"class_name"`
	Term      string          `json:"term"`
	ExamName  string          `json:"exam_name"`
	Entries   []ScheduleEntry `json:"entries"`
}

// MasterData is the configuration snapshot every other module reads.
// It is mutated only by whole-object replacement inside the store.
type MasterData struct {
	Classes    []string `json:"classes"`
	Sections   []string `json:"sections"`
	Subjects   []string `json:"subjects"`
	Categories []string `json:"categories"`
	Religions  []string `json:"religions"`
	Castes     []string `json:"castes"`

	ExamTerms []string                    `json:"exam_terms"`
	TermExams map[string][]ExamDefinition `json:"term_exams"`

	CoScholasticSubjects   map[string][]string `json:"co_scholastic_subjects"`
	TermCoScholasticAreas  map[string][]string `json:"term_co_scholastic_areas"`
	ClassCoScholasticAreas map[string][]string `json:"class_co_scholastic_areas"`

	ClassSubjects map[string][]SubjectAssignment `json:"class_subjects"`
	ClassSections map[string][]string            `json:"class_sections"`

	ExamSchedules []ClassExamSchedule `json:"exam_schedules"`
}

// List returns the pool addressed by kind; ok is false for unknown kinds.
func (m *MasterData) List(kind ListKind) ([]string, bool) {
	switch kind {
	case ListClasses:
		return m.Classes, true
	case ListSections:
		return m.Sections, true
	case ListSubjects:
		return m.Subjects, true
	case ListCategories:
		return m.Categories, true
	case ListReligions:
		return m.Religions, true
	case ListCastes:
		return m.Castes, true
	default:
		return nil, false
	}
}

// SetList replaces the pool addressed by kind.
func (m *MasterData) SetList(kind ListKind, values []string) bool {
	switch kind {
	case ListClasses:
		m.Classes = values
	case ListSections:
		m.Sections = values
	case ListSubjects:
		m.Subjects = values
	case ListCategories:
		m.Categories = values
	case ListReligions:
		m.Religions = values
	case ListCastes:
		m.Castes = values
	default:
		return false
	}
	return true
}

// SectionsForClass returns the class-specific section list, falling back to
// the global pool when the class has no assignment.
func (m *MasterData) SectionsForClass(class string) []string {
	if sections, ok := m.ClassSections[class]; ok && len(sections) > 0 {
		return sections
	}
	return m.Sections
}

// FindExam locates an exam definition by term and name.
func (m *MasterData) FindExam(term, name string) *ExamDefinition {
	for i := range m.TermExams[term] {
		if m.TermExams[term][i].Name == name {
			return &m.TermExams[term][i]
		}
	}
	return nil
}

// FindSchedule returns the schedule for a (class, term, exam) triple.
func (m *MasterData) FindSchedule(class, term, exam string) *ClassExamSchedule {
	for i := range m.ExamSchedules {
		s := &m.ExamSchedules[i]
		if s.ClassName == class && s.Term == term && s.ExamName == exam {
			return s
		}
	}
	return nil
}
