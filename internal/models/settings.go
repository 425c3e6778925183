package models

// IDType selects the admission-ID generation strategy.
type IDType string

const (
	IDTypeNumeric IDType = "Numeric"
	IDTypePattern IDType = "Pattern"
)

// Settings holds the admission-ID generation configuration. IDStartNumber is
// the monotonic serial counter, incremented once per created or imported
// student and persisted with the rest of the settings blob.
type Settings struct {
	IDType           IDType `json:"id_type"`
	IDPrefix         string `json:"id_prefix"`
	IDSeparator      string `json:"id_separator"`
	IDStartNumber    int    `json:"id_start_number"`
	IDPadding        int    `json:"id_padding"`
	IDPattern        string `json:"id_pattern"`
	IncludeClassInID bool   `json:"include_class_in_id"`
	IncludeDateInID  bool   `json:"include_date_in_id"`
}
