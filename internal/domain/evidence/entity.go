package evidence

import "time"

// ID tipe untuk Evidence
type EvidenceID string

// DocumentType enum
type DocumentType string

const (
	TypePolicyDocument       DocumentType = "policy_document"
	TypeTrainingMaterial     DocumentType = "training_material"
	TypeIncidentResponsePlan DocumentType = "incident_response_plan"
	TypeAuditReport          DocumentType = "audit_report"
	TypeCertification        DocumentType = "certification"
	TypeOther                DocumentType = "other"
)

// Status enum
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusExpired  Status = "expired"
)

// Evidence item dari evidence repository milik platform; di subsystem ini
// hanya dibaca, tidak pernah diubah.
type Evidence struct {
	ID             EvidenceID   `json:"id"`
	OrganizationID string       `json:"organization_id"`
	Title          string       `json:"title"`
	DocumentType   DocumentType `json:"document_type"`
	ControlIDs     []string     `json:"control_ids,omitempty"`
	Status         Status       `json:"status"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
