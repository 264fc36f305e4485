package questions

// ID tipe untuk Question
type QuestionID string

// Type enum
type Type string

const (
	TypeFreeText       Type = "free_text"
	TypeMultipleChoice Type = "multiple_choice"
	TypeYesNo          Type = "yes_no"
	TypeRating         Type = "rating"
	TypeDate           Type = "date"
	TypeFileUpload     Type = "file_upload"
	TypeCheckboxList   Type = "checkbox_list"
	TypeDropdown       Type = "dropdown"
)

// RiskLevel enum
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Question dibuat oleh document ingestion, read-only di subsystem ini.
// ExtractedKeywords dan ControlMapping sudah diekstrak sekali di boundary,
// generator tidak perlu parsing ulang.
type Question struct {
	ID                QuestionID `json:"id"`
	OrganizationID    string     `json:"organization_id"`
	Text              string     `json:"text"`
	Type              Type       `json:"type"`
	ExtractedKeywords []string   `json:"extracted_keywords,omitempty"`
	ControlMapping    []string   `json:"control_mapping,omitempty"`
	RiskLevel         RiskLevel  `json:"risk_level,omitempty"`
}
