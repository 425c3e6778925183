package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shikshahq/school-console-api/internal/models"
)

// DefaultTerm seeds the term list; the engine guarantees at least one term
// always remains.
const DefaultTerm = "Term 1"

// DefaultCoScholasticArea seeds the co-scholastic configuration; at least one
// area always remains.
const DefaultCoScholasticArea = "Co-Scholastic Activities"

// DefaultState builds the snapshot contents used when a blob is missing or
// corrupt.
func DefaultState() State {
	return State{
		Master:   defaultMasterData(),
		Students: []models.Student{},
		Sessions: []models.Session{defaultSession()},
		Settings: defaultSettings(),
		Profile:  defaultProfile(),
	}
}

func defaultMasterData() models.MasterData {
	return models.MasterData{
		Classes:    []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"},
		Sections:   []string{"A", "B", "C", "D"},
		Subjects:   []string{"English", "Hindi", "Mathematics", "Science", "Social Science"},
		Categories: []string{"General", "OBC", "SC", "ST"},
		Religions:  []string{},
		Castes:     []string{},

		ExamTerms: []string{DefaultTerm},
		TermExams: map[string][]models.ExamDefinition{DefaultTerm: {}},

		CoScholasticSubjects: map[string][]string{
			DefaultCoScholasticArea: {"Work Education", "Art Education", "Health & Physical Education"},
		},
		TermCoScholasticAreas:  map[string][]string{DefaultTerm: {}},
		ClassCoScholasticAreas: map[string][]string{},

		ClassSubjects: map[string][]models.SubjectAssignment{},
		ClassSections: map[string][]string{},

		ExamSchedules: []models.ClassExamSchedule{},
	}
}

func defaultSession() models.Session {
	return models.Session{
		ID:        uuid.NewString(),
		Name:      academicYear(time.Now()),
		IsCurrent: true,
	}
}

// academicYear names the April-to-March session containing t.
func academicYear(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

func defaultSettings() models.Settings {
	return models.Settings{
		IDType:           models.IDTypeNumeric,
		IDPrefix:         "ADM",
		IDSeparator:      "-",
		IDStartNumber:    1,
		IDPadding:        4,
		IDPattern:        "[PREFIX][SEP][YEAR][SEP][SERIAL]",
		IncludeClassInID: false,
		IncludeDateInID:  true,
	}
}

func defaultProfile() models.SchoolProfile {
	return models.SchoolProfile{
		Name:    "Springfield Public School",
		Address: "School Road",
	}
}
