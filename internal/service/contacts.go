package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/idna"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/entity"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
)

const (
	defaultContactStatus = "new"
	defaultLinkPlatform  = "other"

	enrichedNotesSeparator = "\n\n--- Enriched Data ---\n"
)

// ErrPersonNameRequired rejects contact payloads without the one mandatory field.
var ErrPersonNameRequired = errors.New("person_name is required")

// ContactsService exposes read/write operations for a user's contacts and
// their scheduler links.
type ContactsService struct {
	contacts repository.ContactsRepository
	links    repository.LinksRepository
	logger   *zap.Logger
}

// NewContactsService creates a new instance of ContactsService.
func NewContactsService(contacts repository.ContactsRepository, links repository.LinksRepository, logger *zap.Logger) *ContactsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactsService{contacts: contacts, links: links, logger: logger}
}

// ListContacts returns a page of contacts plus pagination metadata.
func (s *ContactsService) ListContacts(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, dto.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	contacts, total, err := s.contacts.List(ctx, userID, filter)
	if err != nil {
		return nil, dto.Pagination{}, err
	}

	pages := total / filter.Limit
	if total%filter.Limit != 0 {
		pages++
	}

	return contacts, dto.Pagination{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

// SaveContact stores a single contact with any scheduler links supplied
// alongside it. Links start unverified.
func (s *ContactsService) SaveContact(ctx context.Context, userID uuid.UUID, req dto.SaveContactRequest) (*entity.Contact, error) {
	input := req.Contact
	input.PersonName = strings.TrimSpace(input.PersonName)
	if input.PersonName == "" {
		return nil, ErrPersonNameRequired
	}
	if input.Source == "" {
		input.Source = "extension"
	}

	saved, err := s.contacts.Insert(ctx, contactFromInput(userID, input))
	if err != nil {
		return nil, err
	}

	for _, linkInput := range req.SchedulerLinks {
		link := linkFromInput(saved.ID, linkInput)
		link.IsVerified = false
		inserted, err := s.links.Insert(ctx, link)
		if err != nil {
			s.logger.Warn("save scheduler link",
				zap.String("contact_id", saved.ID.String()),
				zap.String("url", linkInput.URL),
				zap.Error(err),
			)
			continue
		}
		saved.SchedulerLinks = append(saved.SchedulerLinks, *inserted)
	}

	return saved, nil
}

// UpdateContact applies a partial update to a contact owned by the user.
func (s *ContactsService) UpdateContact(ctx context.Context, userID, contactID uuid.UUID, update dto.ContactUpdate) (*entity.Contact, error) {
	if update.Email != nil {
		normalized := sanitizeEmail(*update.Email)
		update.Email = &normalized
	}
	return s.contacts.Update(ctx, userID, contactID, update)
}

// DeleteContact removes a contact; its scheduler links cascade.
func (s *ContactsService) DeleteContact(ctx context.Context, userID, contactID uuid.UUID) error {
	return s.contacts.Delete(ctx, userID, contactID)
}

// GetContact fetches a single contact with links.
func (s *ContactsService) GetContact(ctx context.Context, userID, contactID uuid.UUID) (*entity.Contact, error) {
	return s.contacts.FindByID(ctx, userID, contactID)
}

// EnrichContact merges supplemental data onto an existing contact. Scalar
// fields only fill gaps, tags are unioned, notes are appended. Returns the
// updated contact and the names of the fields that changed.
func (s *ContactsService) EnrichContact(ctx context.Context, userID, contactID uuid.UUID, data dto.EnrichmentData) (*entity.Contact, []string, error) {
	existing, err := s.contacts.FindByID(ctx, userID, contactID)
	if err != nil {
		return nil, nil, err
	}

	var update dto.ContactUpdate
	var enriched []string

	fillGap := func(field string, value *string, current *string, dest **string) {
		if value == nil || strings.TrimSpace(*value) == "" {
			return
		}
		if current != nil && *current != "" {
			return
		}
		*dest = value
		enriched = append(enriched, field)
	}

	fillGap("title", data.Title, existing.Title, &update.Title)
	fillGap("location", data.Location, existing.Location, &update.Location)
	fillGap("email", data.Email, existing.Email, &update.Email)
	fillGap("linkedin_url", data.LinkedInURL, existing.LinkedInURL, &update.LinkedInURL)
	fillGap("twitter_url", data.TwitterURL, existing.TwitterURL, &update.TwitterURL)
	fillGap("website_url", data.WebsiteURL, existing.WebsiteURL, &update.WebsiteURL)

	if len(data.Tags) > 0 {
		merged := unionTags(existing.Tags, data.Tags)
		update.Tags = &merged
		enriched = append(enriched, "tags")
	}

	if data.Notes != nil && *data.Notes != "" {
		notes := *data.Notes
		if existing.Notes != nil && *existing.Notes != "" {
			notes = *existing.Notes + enrichedNotesSeparator + notes
		}
		update.Notes = &notes
		enriched = append(enriched, "notes")
	}

	if len(enriched) == 0 {
		return existing, nil, nil
	}

	updated, err := s.contacts.Update(ctx, userID, contactID, update)
	if err != nil {
		return nil, nil, err
	}

	for _, linkInput := range data.SchedulerLinks {
		link := linkFromInput(contactID, linkInput)
		link.IsVerified = false
		if linkInput.ConfidenceScore == nil {
			link.ConfidenceScore = 0.5
		}
		if _, err := s.links.Insert(ctx, link); err != nil {
			s.logger.Warn("enrich scheduler link",
				zap.String("contact_id", contactID.String()),
				zap.String("url", linkInput.URL),
				zap.Error(err),
			)
		}
	}

	return updated, enriched, nil
}

func contactFromInput(userID uuid.UUID, input dto.ContactInput) *entity.Contact {
	status := input.Status
	if status == "" {
		status = defaultContactStatus
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	email := input.Email
	if email != nil {
		normalized := sanitizeEmail(*email)
		email = &normalized
	}

	return &entity.Contact{
		UserID:       userID,
		PersonName:   input.PersonName,
		Title:        input.Title,
		Organization: input.Organization,
		Location:     input.Location,
		Email:        email,
		LinkedInURL:  input.LinkedInURL,
		TwitterURL:   input.TwitterURL,
		WebsiteURL:   input.WebsiteURL,
		Notes:        input.Notes,
		Tags:         tags,
		Status:       status,
		Source:       input.Source,
	}
}

func linkFromInput(contactID uuid.UUID, input dto.LinkInput) *entity.SchedulerLink {
	platform := input.Platform
	if platform == "" {
		platform = defaultLinkPlatform
	}
	var confidence float64
	if input.ConfidenceScore != nil {
		confidence = *input.ConfidenceScore
	}

	return &entity.SchedulerLink{
		ContactID:       contactID,
		URL:             input.URL,
		Platform:        platform,
		ConfidenceScore: confidence,
		ContextSnippet:  input.ContextSnippet,
		IsVerified:      input.IsVerified,
	}
}

func unionTags(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extra))
	merged := make([]string, 0, len(existing)+len(extra))
	for _, tag := range existing {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	for _, tag := range extra {
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}
	return merged
}

// sanitizeEmail lowercases the address and ASCII-normalizes the domain.
// Addresses that do not normalize cleanly are stored trimmed as given.
func sanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	domain, err := idna.Lookup.ToASCII(email[at+1:])
	if err != nil || domain == "" {
		return email
	}
	return email[:at+1] + domain
}
