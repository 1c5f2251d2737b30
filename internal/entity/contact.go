package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a person tracked by a user, together with any scheduler
// links discovered for them. Dedup identity on import is (person_name,
// organization) within the owning user.
type Contact struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	PersonName     string          `json:"person_name"`
	Title          *string         `json:"title,omitempty"`
	Organization   *string         `json:"organization,omitempty"`
	Location       *string         `json:"location,omitempty"`
	Email          *string         `json:"email,omitempty"`
	LinkedInURL    *string         `json:"linkedin_url,omitempty"`
	TwitterURL     *string         `json:"twitter_url,omitempty"`
	WebsiteURL     *string         `json:"website_url,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
	Tags           []string        `json:"tags"`
	Status         string          `json:"status"`
	Source         string          `json:"source"`
	SchedulerLinks []SchedulerLink `json:"scheduler_links,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
