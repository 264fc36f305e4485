package library

import "time"

// ID tipe untuk Entry
type EntryID string

// Category closed enum; divalidasi di boundary (create + import) supaya
// tidak ada string liar masuk ke tabel.
type Category string

const (
	CategoryAccessControl       Category = "access_control"
	CategoryDataProtection      Category = "data_protection"
	CategoryIncidentResponse    Category = "incident_response"
	CategoryNetworkSecurity     Category = "network_security"
	CategoryPhysicalSecurity    Category = "physical_security"
	CategoryBusinessContinuity  Category = "business_continuity"
	CategoryVendorManagement    Category = "vendor_management"
	CategoryComplianceFramework Category = "compliance_framework"
	CategoryGeneralSecurity     Category = "general_security"
	CategoryCustom              Category = "custom"
)

// AllCategories daftar lengkap untuk validasi dan pesan error
var AllCategories = []Category{
	CategoryAccessControl,
	CategoryDataProtection,
	CategoryIncidentResponse,
	CategoryNetworkSecurity,
	CategoryPhysicalSecurity,
	CategoryBusinessContinuity,
	CategoryVendorManagement,
	CategoryComplianceFramework,
	CategoryGeneralSecurity,
	CategoryCustom,
}

// ParseCategory validasi string jadi Category
func ParseCategory(s string) (Category, error) {
	for _, c := range AllCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "category", Message: "invalid category: " + s}
}

// InitialConfidence skor awal entry baru sebelum terbukti dipakai
const InitialConfidence = 50

// Aggregate Root: Entry
//
// Entry dimiliki eksklusif oleh satu organisasi; tidak ada sharing lintas
// org. UsageCount dan ConfidenceScore hanya naik lewat IncrementUsage,
// update biasa tidak boleh meresetnya.
type Entry struct {
	ID                 EntryID        `json:"id"`
	OrganizationID     string         `json:"organization_id"`
	Category           Category       `json:"category"`
	Subcategory        string         `json:"subcategory,omitempty"`
	KeyPhrases         []string       `json:"key_phrases"`
	StandardAnswer     string         `json:"standard_answer"`
	EvidenceReferences []string       `json:"evidence_references,omitempty"`
	UsageCount         int            `json:"usage_count"`
	ConfidenceScore    float64        `json:"confidence_score"`
	LastUsedAt         *time.Time     `json:"last_used_at,omitempty"`
	LastUpdated        time.Time      `json:"last_updated"`
	IsActive           bool           `json:"is_active"`
	CreatedBy          string         `json:"created_by"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}
