package entities

import "time"

// HealthReport is a stored medical document reference (lab result, imaging
// report, prescription scan) surfaced in the report viewer.
type HealthReport struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Summary    string    `json:"summary,omitempty"`
	FileURL    string    `json:"file_url,omitempty"`
	ReportDate time.Time `json:"report_date"`
	CreatedAt  time.Time `json:"created_at"`
}
