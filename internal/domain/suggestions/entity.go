package suggestions

// SourceType enum
type SourceType string

const (
	SourceLibrary    SourceType = "library"
	SourceEvidence   SourceType = "evidence"
	SourcePattern    SourceType = "pattern"
	SourceGenerative SourceType = "generative"
)

// Priority urutan tie-break saat skor sama; angka kecil menang.
func (s SourceType) Priority() int {
	switch s {
	case SourceLibrary:
		return 0
	case SourceEvidence:
		return 1
	case SourcePattern:
		return 2
	case SourceGenerative:
		return 3
	}
	return 4
}

// Suggestion adalah kandidat jawaban ephemeral, dibuat per request dan
// tidak pernah dipersist. ConfidenceScore selalu di range [0,100].
type Suggestion struct {
	SuggestedAnswer string         `json:"suggested_answer"`
	ConfidenceScore float64        `json:"confidence_score"`
	SourceType      SourceType     `json:"source_type"`
	SourceID        string         `json:"source_id,omitempty"`
	EvidenceIDs     []string       `json:"evidence_ids,omitempty"`
	Reasoning       string         `json:"reasoning"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// ClampScore memaksa skor ke [0,100]
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
