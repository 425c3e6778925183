package models

// ExamCell is one subject × exam cell on a report card.
type ExamCell struct {
	ExamName   string `json:"exam_name"`
	MaxMarks   int    `json:"max_marks"`
	Score      string `json:"score"`
	Applicable bool   `json:"applicable"`
	// OverMax flags a numerically parsed score above the exam maximum.
	// Display-only; never blocks saving.
	OverMax bool `json:"over_max,omitempty"`
}

// SubjectRow aggregates one subject across all exams of the term.
type SubjectRow struct {
	Subject       string     `json:"subject"`
	Cells         []ExamCell `json:"cells"`
	ObtainedTotal float64    `json:"obtained_total"`
	MaxTotal      int        `json:"max_total"`
}

// CoScholasticRow is one co-scholastic area line. Grades are placeholders
// until an entry workflow exists for them.
type CoScholasticRow struct {
	Area        string   `json:"area"`
	Subjects    []string `json:"subjects"`
	Grade       string   `json:"grade"`
	Remark      string   `json:"remark"`
	Placeholder bool     `json:"placeholder"`
}

// ReportCard is the printable per-student term report view model.
type ReportCard struct {
	School       SchoolProfile     `json:"school"`
	StudentID    string            `json:"student_id"`
	StudentName  string            `json:"student_name"`
	Class        string            `json:"class"`
	Section      string            `json:"section,omitempty"`
	RollNo       string            `json:"roll_no,omitempty"`
	Term         string            `json:"term"`
	Subjects     []SubjectRow      `json:"subjects"`
	CoScholastic []CoScholasticRow `json:"co_scholastic,omitempty"`

	GrandObtained float64 `json:"grand_obtained"`
	GrandMax      int     `json:"grand_max"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
}

// AdmitCardFields toggles which student fields render on an admit card.
type AdmitCardFields struct {
	ShowRollNo  bool `json:"show_roll_no"`
	ShowSection bool `json:"show_section"`
	ShowDOB     bool `json:"show_dob"`
	ShowPhoto   bool `json:"show_photo"`
}

// AdmitCard is the printable per-student exam timetable view model.
type AdmitCard struct {
	School      SchoolProfile   `json:"school"`
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	Class       string          `json:"class"`
	Section     string          `json:"section,omitempty"`
	RollNo      string          `json:"roll_no,omitempty"`
	DOB         string          `json:"dob,omitempty"`
	Term        string          `json:"term"`
	ExamName    string          `json:"exam_name"`
	Entries     []ScheduleEntry `json:"entries"`
	Fields      AdmitCardFields `json:"fields"`
	Note        string          `json:"note"`
}
