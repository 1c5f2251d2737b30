package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linkscout/scheduler-finder/api/internal/entity"
)

var exportCSVHeaders = []string{
	"Name",
	"Title",
	"Organization",
	"Location",
	"Email",
	"LinkedIn",
	"Twitter",
	"Website",
	"Status",
	"Tags",
	"Notes",
	"Created At",
}

// ExportContacts returns every contact owned by the user, newest first, for
// JSON export.
func (s *ContactsService) ExportContacts(ctx context.Context, userID uuid.UUID) ([]entity.Contact, error) {
	return s.contacts.ListAll(ctx, userID)
}

// ExportContactsCSV renders the user's contacts as CSV. When includeLinks is
// set, scheduler link URLs, platforms and confidence scores are appended as
// "; "-separated columns.
func (s *ContactsService) ExportContactsCSV(ctx context.Context, userID uuid.UUID, includeLinks bool) ([]byte, error) {
	contacts, err := s.contacts.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := exportCSVHeaders
	if includeLinks {
		headers = append(append([]string{}, headers...), "Scheduler Links", "Link Platforms", "Link Confidence")
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, contact := range contacts {
		row := []string{
			contact.PersonName,
			derefOrEmpty(contact.Title),
			derefOrEmpty(contact.Organization),
			derefOrEmpty(contact.Location),
			derefOrEmpty(contact.Email),
			derefOrEmpty(contact.LinkedInURL),
			derefOrEmpty(contact.TwitterURL),
			derefOrEmpty(contact.WebsiteURL),
			contact.Status,
			strings.Join(contact.Tags, "; "),
			derefOrEmpty(contact.Notes),
			contact.CreatedAt.Format(time.RFC3339),
		}

		if includeLinks {
			urls := make([]string, 0, len(contact.SchedulerLinks))
			platforms := make([]string, 0, len(contact.SchedulerLinks))
			scores := make([]string, 0, len(contact.SchedulerLinks))
			for _, link := range contact.SchedulerLinks {
				urls = append(urls, link.URL)
				platforms = append(platforms, link.Platform)
				scores = append(scores, strconv.FormatFloat(link.ConfidenceScore, 'f', -1, 64))
			}
			row = append(row, strings.Join(urls, "; "), strings.Join(platforms, "; "), strings.Join(scores, "; "))
		}

		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func derefOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
