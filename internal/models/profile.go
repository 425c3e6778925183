package models

// SchoolProfile is the single identity/branding record rendered on report
// cards and admit cards.
type SchoolProfile struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website,omitempty"`
	Affiliation string `json:"affiliation,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}
