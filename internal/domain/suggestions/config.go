package suggestions

import "time"

// ScoringConfig holds every weight, threshold and cap used by the generators
// and the aggregator. Nilai default mengikuti tuning yang sudah jalan di
// production; angkanya bukan hasil kalibrasi statistik, jadi sengaja dibuat
// configurable lewat yaml.
type ScoringConfig struct {
	MaxSuggestions          int `yaml:"max_suggestions"`
	GeneratorTimeoutSeconds int `yaml:"generator_timeout_seconds"`

	LibraryKeywordWeight    float64 `yaml:"library_keyword_weight"`
	LibraryConfidenceWeight float64 `yaml:"library_confidence_weight"`
	LibraryMinScore         float64 `yaml:"library_min_score"`
	LibraryMaxCandidates    int     `yaml:"library_max_candidates"`

	EvidenceControlWeight     float64 `yaml:"evidence_control_weight"`
	EvidenceRecencyWindowDays int     `yaml:"evidence_recency_window_days"`
	EvidenceMinScore          float64 `yaml:"evidence_min_score"`
	EvidenceMaxCandidates     int     `yaml:"evidence_max_candidates"`

	PatternPolicyConfidence   float64 `yaml:"pattern_policy_confidence"`
	PatternTrainingConfidence float64 `yaml:"pattern_training_confidence"`
	PatternIncidentConfidence float64 `yaml:"pattern_incident_confidence"`

	// Yes/no polarity heuristic. Default-nya jawaban "No" di confidence 40:
	// ini policy parameter, bukan fakta empiris.
	YesNoAffirmativeConfidence float64 `yaml:"yes_no_affirmative_confidence"`
	YesNoNegativeConfidence    float64 `yaml:"yes_no_negative_confidence"`
	YesNoDefaultConfidence     float64 `yaml:"yes_no_default_confidence"`

	GenerativeTopicConfidence   float64 `yaml:"generative_topic_confidence"`
	GenerativeDefaultConfidence float64 `yaml:"generative_default_confidence"`

	UsageConfidenceIncrement float64 `yaml:"usage_confidence_increment"`
}

// DefaultScoringConfig returns the production defaults.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		MaxSuggestions:          5,
		GeneratorTimeoutSeconds: 10,

		LibraryKeywordWeight:    70,
		LibraryConfidenceWeight: 0.3,
		LibraryMinScore:         30,
		LibraryMaxCandidates:    3,

		EvidenceControlWeight:     60,
		EvidenceRecencyWindowDays: 20,
		EvidenceMinScore:          25,
		EvidenceMaxCandidates:     5,

		PatternPolicyConfidence:   75,
		PatternTrainingConfidence: 70,
		PatternIncidentConfidence: 70,

		YesNoAffirmativeConfidence: 60,
		YesNoNegativeConfidence:    70,
		YesNoDefaultConfidence:     40,

		GenerativeTopicConfidence:   60,
		GenerativeDefaultConfidence: 45,

		UsageConfidenceIncrement: 1,
	}
}

// Normalize isi field yang masih zero dengan default, supaya config yaml
// parsial tetap aman dipakai.
func (c *ScoringConfig) Normalize() {
	d := DefaultScoringConfig()
	if c.MaxSuggestions <= 0 {
		c.MaxSuggestions = d.MaxSuggestions
	}
	if c.GeneratorTimeoutSeconds <= 0 {
		c.GeneratorTimeoutSeconds = d.GeneratorTimeoutSeconds
	}
	if c.LibraryKeywordWeight <= 0 {
		c.LibraryKeywordWeight = d.LibraryKeywordWeight
	}
	if c.LibraryConfidenceWeight <= 0 {
		c.LibraryConfidenceWeight = d.LibraryConfidenceWeight
	}
	if c.LibraryMinScore <= 0 {
		c.LibraryMinScore = d.LibraryMinScore
	}
	if c.LibraryMaxCandidates <= 0 {
		c.LibraryMaxCandidates = d.LibraryMaxCandidates
	}
	if c.EvidenceControlWeight <= 0 {
		c.EvidenceControlWeight = d.EvidenceControlWeight
	}
	if c.EvidenceRecencyWindowDays <= 0 {
		c.EvidenceRecencyWindowDays = d.EvidenceRecencyWindowDays
	}
	if c.EvidenceMinScore <= 0 {
		c.EvidenceMinScore = d.EvidenceMinScore
	}
	if c.EvidenceMaxCandidates <= 0 {
		c.EvidenceMaxCandidates = d.EvidenceMaxCandidates
	}
	if c.PatternPolicyConfidence <= 0 {
		c.PatternPolicyConfidence = d.PatternPolicyConfidence
	}
	if c.PatternTrainingConfidence <= 0 {
		c.PatternTrainingConfidence = d.PatternTrainingConfidence
	}
	if c.PatternIncidentConfidence <= 0 {
		c.PatternIncidentConfidence = d.PatternIncidentConfidence
	}
	if c.YesNoAffirmativeConfidence <= 0 {
		c.YesNoAffirmativeConfidence = d.YesNoAffirmativeConfidence
	}
	if c.YesNoNegativeConfidence <= 0 {
		c.YesNoNegativeConfidence = d.YesNoNegativeConfidence
	}
	if c.YesNoDefaultConfidence <= 0 {
		c.YesNoDefaultConfidence = d.YesNoDefaultConfidence
	}
	if c.GenerativeTopicConfidence <= 0 {
		c.GenerativeTopicConfidence = d.GenerativeTopicConfidence
	}
	if c.GenerativeDefaultConfidence <= 0 {
		c.GenerativeDefaultConfidence = d.GenerativeDefaultConfidence
	}
	if c.UsageConfidenceIncrement <= 0 {
		c.UsageConfidenceIncrement = d.UsageConfidenceIncrement
	}
}

// GeneratorTimeout durasi timeout per generator
func (c ScoringConfig) GeneratorTimeout() time.Duration {
	return time.Duration(c.GeneratorTimeoutSeconds) * time.Second
}
