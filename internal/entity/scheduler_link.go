package entity

import (
	"time"

	"github.com/google/uuid"
)

// SchedulerLink is a meeting-booking URL owned by exactly one contact.
// ConfidenceScore is a heuristic in [0,1] adjusted by validation events.
type SchedulerLink struct {
	ID               uuid.UUID  `json:"id"`
	ContactID        uuid.UUID  `json:"contact_id"`
	URL              string     `json:"url"`
	Platform         string     `json:"platform"`
	ConfidenceScore  float64    `json:"confidence_score"`
	ContextSnippet   *string    `json:"context_snippet,omitempty"`
	IsVerified       bool       `json:"is_verified"`
	VerificationDate *time.Time `json:"verification_date,omitempty"`
	LastChecked      *time.Time `json:"last_checked,omitempty"`
	DiscoveredAt     time.Time  `json:"discovered_at"`
}
