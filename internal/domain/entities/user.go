package entities

import "time"

// UserProfile holds the health profile shown on the profile page.
type UserProfile struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone,omitempty"`
	DateOfBirth      string    `json:"date_of_birth,omitempty"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	Allergies        []string  `json:"allergies,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
