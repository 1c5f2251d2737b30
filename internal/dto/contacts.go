package dto

// ContactFilter contains query parameters for contact listing endpoints.
type ContactFilter struct {
	Search string
	Status string
	Tags   []string
	Page   int
	Limit  int
}

// Pagination describes the page window returned alongside a contact list.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// LinkInput is a raw scheduler link as supplied by clients or import payloads.
type LinkInput struct {
	URL             string   `json:"url"`
	Platform        string   `json:"platform"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	ContextSnippet  *string  `json:"context_snippet,omitempty"`
	IsVerified      bool     `json:"is_verified,omitempty"`
}

// ContactInput is a raw contact record as supplied by clients or import payloads.
// Only PersonName is required; everything else defaults on insert.
type ContactInput struct {
	PersonName     string      `json:"person_name"`
	Title          *string     `json:"title,omitempty"`
	Organization   *string     `json:"organization,omitempty"`
	Location       *string     `json:"location,omitempty"`
	Email          *string     `json:"email,omitempty"`
	LinkedInURL    *string     `json:"linkedin_url,omitempty"`
	TwitterURL     *string     `json:"twitter_url,omitempty"`
	WebsiteURL     *string     `json:"website_url,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	Status         string      `json:"status,omitempty"`
	Source         string      `json:"source,omitempty"`
	SchedulerLinks []LinkInput `json:"scheduler_links,omitempty"`
}

// SaveContactRequest is the payload for creating a single contact.
type SaveContactRequest struct {
	Contact        ContactInput `json:"contact"`
	SchedulerLinks []LinkInput  `json:"scheduler_links,omitempty"`
}

// ContactUpdate captures a partial update: each field is applied only when present.
type ContactUpdate struct {
	PersonName   *string   `json:"person_name,omitempty"`
	Title        *string   `json:"title,omitempty"`
	Organization *string   `json:"organization,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Email        *string   `json:"email,omitempty"`
	LinkedInURL  *string   `json:"linkedin_url,omitempty"`
	TwitterURL   *string   `json:"twitter_url,omitempty"`
	WebsiteURL   *string   `json:"website_url,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Status       *string   `json:"status,omitempty"`
}

// EnrichmentData carries optional fields merged onto an existing contact.
// Scalar fields only fill gaps, tags are unioned and notes appended.
type EnrichmentData struct {
	Title          *string     `json:"title,omitempty"`
	Location       *string     `json:"location,omitempty"`
	Email          *string     `json:"email,omitempty"`
	LinkedInURL    *string     `json:"linkedin_url,omitempty"`
	TwitterURL     *string     `json:"twitter_url,omitempty"`
	WebsiteURL     *string     `json:"website_url,omitempty"`
	Notes          *string     `json:"notes,omitempty"`
	Tags           []string    `json:"tags,omitempty"`
	SchedulerLinks []LinkInput `json:"scheduler_links,omitempty"`
}

// ImportOptions toggles import behavior.
type ImportOptions struct {
	SkipDuplicates bool `json:"skip_duplicates"`
}

// ImportRequest is the payload for batch contact import.
type ImportRequest struct {
	Contacts []ContactInput `json:"contacts"`
	Options  ImportOptions  `json:"options"`
}

// ImportError records why a single import record was rejected.
type ImportError struct {
	Contact string `json:"contact"`
	Error   string `json:"error"`
}

// ImportResult summarises the fate of every record in an import batch.
type ImportResult struct {
	Total    int           `json:"total"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}
