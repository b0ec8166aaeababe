package entities

// UrgencyLevel is a coarse triage category derived from assistant output.
// It is not a clinical determination.
type UrgencyLevel string

const (
	UrgencyLow    UrgencyLevel = "low"
	UrgencyMedium UrgencyLevel = "medium"
	UrgencyHigh   UrgencyLevel = "high"
)

// SymptomAnalysisRequest carries the patient-entered details for a
// structured symptom assessment.
type SymptomAnalysisRequest struct {
	Symptoms string `json:"symptoms"`
	Age      string `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Duration string `json:"duration,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// SymptomAnalysisResponse is the structured view derived from the
// assistant's assessment text.
type SymptomAnalysisResponse struct {
	Analysis         string       `json:"analysis"`
	Recommendations  []string     `json:"recommendations"`
	UrgencyLevel     UrgencyLevel `json:"urgency_level"`
	SuggestedActions []string     `json:"suggested_actions"`
}
