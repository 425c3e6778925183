package models

// Guardian holds contact details for one parent or guardian.
type Guardian struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Occupation string `json:"occupation"`
}

// Marks is the sparse score ledger: term → exam → subject → raw score string.
// Scores stay strings so placeholders like "AB" survive round-trips.
type Marks map[string]map[string]map[string]string

// Score reads one cell; the empty string means no entry.
func (m Marks) Score(term, exam, subject string) string {
	if m == nil {
		return ""
	}
	return m[term][exam][subject]
}

// SetScore writes one cell, creating intermediate maps on demand.
func (m Marks) SetScore(term, exam, subject, value string) {
	if m[term] == nil {
		m[term] = make(map[string]map[string]string)
	}
	if m[term][exam] == nil {
		m[term][exam] = make(map[string]string)
	}
	m[term][exam][subject] = value
}

// Student is one admitted learner. ID is the generated admission number.
type Student struct {
	ID                 string `json:"id"`
	AdmissionSessionID string `json:"admission_session_id"`
	AdmissionDate      string `json:"admission_date"`

	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name,omitempty"`

	Class    string   `json:"class"`
	Section  string   `json:"section,omitempty"`
	RollNo   string   `json:"roll_no,omitempty"`
	Subjects []string `json:"subjects,omitempty"`

	Gender     string `json:"gender,omitempty"`
	DOB        string `json:"dob,omitempty"`
	BloodGroup string `json:"blood_group,omitempty"`
	Category   string `json:"category,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Caste      string `json:"caste,omitempty"`
	Mobile     string `json:"mobile,omitempty"`
	Email      string `json:"email,omitempty"`

	CurrentAddress   string `json:"current_address,omitempty"`
	PermanentAddress string `json:"permanent_address,omitempty"`

	Father        Guardian `json:"father"`
	Mother        Guardian `json:"mother"`
	OtherGuardian Guardian `json:"other_guardian"`

	// Parent portal credentials. Stored as-is; this mirrors the source
	// system, which is a single-admin local console.
	ParentLoginID       string `json:"parent_login_id,omitempty"`
	ParentLoginPassword string `json:"parent_login_password,omitempty"`

	Marks Marks `json:"marks,omitempty"`
}

// FullName joins the student's name parts, skipping empty segments.
func (s *Student) FullName() string {
	name := s.FirstName
	if s.MiddleName != "" {
		name += " " + s.MiddleName
	}
	if s.LastName != "" {
		name += " " + s.LastName
	}
	return name
}

// StudentFilter captures supported filters for listing students.
type StudentFilter struct {
	Search  string
	Class   string
	Section string
	Session string
}
