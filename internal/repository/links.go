package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkscout/scheduler-finder/api/internal/entity"
)

// ErrLinkNotFound indicates the link does not exist or its contact is owned by
// another user.
var ErrLinkNotFound = errors.New("scheduler link not found")

// ValidationUpdate carries the fields persisted after a validation attempt.
// Verification and last-checked timestamps are stamped by the database.
type ValidationUpdate struct {
	IsVerified      bool
	Platform        string
	ConfidenceScore float64
}

// LinksRepository describes persistence operations for scheduler links.
type LinksRepository interface {
	Insert(ctx context.Context, link *entity.SchedulerLink) (*entity.SchedulerLink, error)
	FindOwnedByID(ctx context.Context, userID, linkID uuid.UUID) (*entity.SchedulerLink, error)
	UpdateValidation(ctx context.Context, linkID uuid.UUID, update ValidationUpdate) error
}

const linkColumns = `id, contact_id, url, platform, confidence_score, context_snippet, is_verified, verification_date, last_checked, discovered_at`

// PGXLinksRepository implements LinksRepository using pgx.
type PGXLinksRepository struct {
	pool pgxPool
}

// NewPGXLinksRepository wires a pgx backed repository.
func NewPGXLinksRepository(pool *pgxpool.Pool) *PGXLinksRepository {
	return &PGXLinksRepository{pool: pool}
}

// Insert stores a new scheduler link for a contact.
func (r *PGXLinksRepository) Insert(ctx context.Context, link *entity.SchedulerLink) (*entity.SchedulerLink, error) {
	if link == nil {
		return nil, fmt.Errorf("link payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO scheduler_links (contact_id, url, platform, confidence_score, context_snippet, is_verified)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING `+linkColumns,
		link.ContactID,
		link.URL,
		link.Platform,
		link.ConfidenceScore,
		link.ContextSnippet,
		link.IsVerified,
	)

	saved, err := scanLink(row)
	if err != nil {
		return nil, fmt.Errorf("insert scheduler link: %w", err)
	}
	return saved, nil
}

// FindOwnedByID fetches a link whose owning contact belongs to the given user.
func (r *PGXLinksRepository) FindOwnedByID(ctx context.Context, userID, linkID uuid.UUID) (*entity.SchedulerLink, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+prefixedLinkColumns("l")+`
        FROM scheduler_links l
        JOIN contacts c ON c.id = l.contact_id
        WHERE l.id = $1 AND c.user_id = $2
    `, linkID, userID)

	link, err := scanLink(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("fetch scheduler link: %w", err)
	}
	return link, nil
}

// UpdateValidation persists the outcome of a validation attempt.
func (r *PGXLinksRepository) UpdateValidation(ctx context.Context, linkID uuid.UUID, update ValidationUpdate) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE scheduler_links
        SET is_verified = $2,
            platform = $3,
            confidence_score = $4,
            verification_date = NOW(),
            last_checked = NOW()
        WHERE id = $1
    `, linkID, update.IsVerified, update.Platform, update.ConfidenceScore)
	if err != nil {
		return fmt.Errorf("update link validation: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

func prefixedLinkColumns(alias string) string {
	return alias + ".id, " + alias + ".contact_id, " + alias + ".url, " + alias + ".platform, " +
		alias + ".confidence_score, " + alias + ".context_snippet, " + alias + ".is_verified, " +
		alias + ".verification_date, " + alias + ".last_checked, " + alias + ".discovered_at"
}

func scanLink(row rowScanner) (*entity.SchedulerLink, error) {
	var (
		link             entity.SchedulerLink
		contextSnippet   sql.NullString
		verificationDate sql.NullTime
		lastChecked      sql.NullTime
	)

	err := row.Scan(
		&link.ID,
		&link.ContactID,
		&link.URL,
		&link.Platform,
		&link.ConfidenceScore,
		&contextSnippet,
		&link.IsVerified,
		&verificationDate,
		&lastChecked,
		&link.DiscoveredAt,
	)
	if err != nil {
		return nil, err
	}

	link.ContextSnippet = nullStringToPtr(contextSnippet)
	if verificationDate.Valid {
		ts := verificationDate.Time
		link.VerificationDate = &ts
	}
	if lastChecked.Valid {
		ts := lastChecked.Time
		link.LastChecked = &ts
	}

	return &link, nil
}
