package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/repository"
)

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// ImportContacts ingests a batch of raw contact records in input order.
// Duplicates are detected by (person_name, organization) within the user when
// SkipDuplicates is set. No per-record failure aborts the batch; the result
// accounts for every record as imported, skipped, or errored.
func (s *ContactsService) ImportContacts(ctx context.Context, userID uuid.UUID, req dto.ImportRequest) dto.ImportResult {
	result := dto.ImportResult{
		Total:  len(req.Contacts),
		Errors: []dto.ImportError{},
	}

	for _, input := range req.Contacts {
		input.PersonName = strings.TrimSpace(input.PersonName)
		if input.PersonName == "" {
			result.Errors = append(result.Errors, dto.ImportError{
				Contact: "Unknown",
				Error:   ErrPersonNameRequired.Error(),
			})
			continue
		}

		if req.Options.SkipDuplicates {
			organization := ""
			if input.Organization != nil {
				organization = *input.Organization
			}

			_, err := s.contacts.FindByNameAndOrg(ctx, userID, input.PersonName, organization)
			if err == nil {
				result.Skipped++
				continue
			}
			if !errors.Is(err, repository.ErrContactNotFound) {
				result.Errors = append(result.Errors, dto.ImportError{Contact: input.PersonName, Error: err.Error()})
				continue
			}
		}

		if input.Source == "" {
			input.Source = "import"
		}

		saved, err := s.contacts.Insert(ctx, contactFromInput(userID, input))
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportError{Contact: input.PersonName, Error: err.Error()})
			continue
		}

		for _, linkInput := range input.SchedulerLinks {
			if _, err := s.links.Insert(ctx, linkFromInput(saved.ID, linkInput)); err != nil {
				s.logger.Warn("import scheduler link",
					zap.String("contact_id", saved.ID.String()),
					zap.String("url", linkInput.URL),
					zap.Error(err),
				)
				result.Errors = append(result.Errors, dto.ImportError{
					Contact: input.PersonName,
					Error:   fmt.Sprintf("scheduler link %s: %v", linkInput.URL, err),
				})
			}
		}

		result.Imported++
	}

	return result
}

// ParseContactsCSV reads an uploaded CSV into raw contact records suitable for
// ImportContacts. Only the person_name column is mandatory.
func ParseContactsCSV(r io.Reader) ([]dto.ContactInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, CSVValidationError{Message: "csv file is empty"}
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	if _, ok := index["person_name"]; !ok {
		return nil, CSVValidationError{Message: "missing required column: person_name"}
	}

	var contacts []dto.ContactInput
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		cell := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		input := dto.ContactInput{
			PersonName:   cell("person_name"),
			Title:        optionalCell(cell("title")),
			Organization: optionalCell(cell("organization")),
			Location:     optionalCell(cell("location")),
			Email:        optionalCell(cell("email")),
			LinkedInURL:  optionalCell(cell("linkedin_url")),
			TwitterURL:   optionalCell(cell("twitter_url")),
			WebsiteURL:   optionalCell(cell("website_url")),
			Notes:        optionalCell(cell("notes")),
			Status:       cell("status"),
			Source:       cell("source"),
		}

		if tags := cell("tags"); tags != "" {
			for _, tag := range strings.Split(tags, ";") {
				if trimmed := strings.TrimSpace(tag); trimmed != "" {
					input.Tags = append(input.Tags, trimmed)
				}
			}
		}

		if confidence := cell("confidence_score"); confidence != "" {
			if score, parseErr := strconv.ParseFloat(confidence, 64); parseErr == nil {
				if url := cell("scheduler_url"); url != "" {
					input.SchedulerLinks = append(input.SchedulerLinks, dto.LinkInput{URL: url, ConfidenceScore: &score})
				}
			}
		} else if url := cell("scheduler_url"); url != "" {
			input.SchedulerLinks = append(input.SchedulerLinks, dto.LinkInput{URL: url})
		}

		contacts = append(contacts, input)
	}

	return contacts, nil
}

func optionalCell(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
