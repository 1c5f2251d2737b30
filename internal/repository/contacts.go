package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkscout/scheduler-finder/api/internal/dto"
	"github.com/linkscout/scheduler-finder/api/internal/entity"
)

// ErrContactNotFound indicates the contact does not exist or is owned by another user.
var ErrContactNotFound = errors.New("contact not found")

// ContactsRepository describes persistence operations for contacts. Every
// operation is scoped to the owning user.
type ContactsRepository interface {
	Insert(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error)
	FindByNameAndOrg(ctx context.Context, userID uuid.UUID, personName, organization string) (*entity.Contact, error)
	List(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, int, error)
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Contact, error)
	Update(ctx context.Context, userID, id uuid.UUID, update dto.ContactUpdate) (*entity.Contact, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

const contactColumns = `id, user_id, person_name, title, organization, location, email, linkedin_url, twitter_url, website_url, notes, tags, status, source, created_at, updated_at`

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

// Insert stores a new contact and returns the persisted row.
func (r *PGXContactsRepository) Insert(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	if contact == nil {
		return nil, fmt.Errorf("contact payload is nil")
	}

	tags := contact.Tags
	if tags == nil {
		tags = []string{}
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO contacts (user_id, person_name, title, organization, location, email, linkedin_url, twitter_url, website_url, notes, tags, status, source)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING `+contactColumns,
		contact.UserID,
		contact.PersonName,
		contact.Title,
		contact.Organization,
		contact.Location,
		contact.Email,
		contact.LinkedInURL,
		contact.TwitterURL,
		contact.WebsiteURL,
		contact.Notes,
		tags,
		contact.Status,
		contact.Source,
	)

	saved, err := scanContactRow(row)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return saved, nil
}

// FindByID fetches a single contact owned by the user, links included.
func (r *PGXContactsRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)

	contact, err := scanContactRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("fetch contact: %w", err)
	}

	if err := r.attachLinks(ctx, []*entity.Contact{contact}); err != nil {
		return nil, err
	}
	return contact, nil
}

// FindByNameAndOrg looks up the dedup key (person_name, organization) for a user.
// A NULL organization matches the empty string so records imported without one
// still deduplicate.
func (r *PGXContactsRepository) FindByNameAndOrg(ctx context.Context, userID uuid.UUID, personName, organization string) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT `+contactColumns+`
        FROM contacts
        WHERE user_id = $1 AND person_name = $2 AND COALESCE(organization, '') = $3
    `, userID, personName, organization)

	contact, err := scanContactRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("fetch contact by dedup key: %w", err)
	}
	return contact, nil
}

// List retrieves contacts matching the filter, newest first, with scheduler
// links attached, plus the total count for pagination.
func (r *PGXContactsRepository) List(ctx context.Context, userID uuid.UUID, filter dto.ContactFilter) ([]entity.Contact, int, error) {
	clauses := []string{"user_id = $1"}
	args := []any{userID}
	idx := 2

	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		clauses = append(clauses, fmt.Sprintf("(person_name ILIKE $%d OR organization ILIKE $%d OR title ILIKE $%d)", idx, idx+1, idx+2))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if len(filter.Tags) > 0 {
		clauses = append(clauses, fmt.Sprintf("tags && $%d", idx))
		args = append(args, filter.Tags)
		idx++
	}

	where := strings.Join(clauses, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM contacts WHERE "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := (page - 1) * limit

	query := fmt.Sprintf("SELECT %s FROM contacts WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", contactColumns, where, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, 0, err
	}

	refs := make([]*entity.Contact, len(contacts))
	for i := range contacts {
		refs[i] = &contacts[i]
	}
	if err := r.attachLinks(ctx, refs); err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

// ListAll returns every contact owned by the user, newest first, links attached.
// Used by export.
func (r *PGXContactsRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Contact, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+contactColumns+` FROM contacts WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list all contacts: %w", err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*entity.Contact, len(contacts))
	for i := range contacts {
		refs[i] = &contacts[i]
	}
	if err := r.attachLinks(ctx, refs); err != nil {
		return nil, err
	}
	return contacts, nil
}

// Update patches the provided fields on a contact owned by the user.
func (r *PGXContactsRepository) Update(ctx context.Context, userID, id uuid.UUID, update dto.ContactUpdate) (*entity.Contact, error) {
	setClauses := make([]string, 0)
	args := make([]any, 0)
	idx := 1

	addSet := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.PersonName != nil {
		addSet("person_name", *update.PersonName)
	}
	if update.Title != nil {
		addSet("title", *update.Title)
	}
	if update.Organization != nil {
		addSet("organization", *update.Organization)
	}
	if update.Location != nil {
		addSet("location", *update.Location)
	}
	if update.Email != nil {
		addSet("email", *update.Email)
	}
	if update.LinkedInURL != nil {
		addSet("linkedin_url", *update.LinkedInURL)
	}
	if update.TwitterURL != nil {
		addSet("twitter_url", *update.TwitterURL)
	}
	if update.WebsiteURL != nil {
		addSet("website_url", *update.WebsiteURL)
	}
	if update.Notes != nil {
		addSet("notes", *update.Notes)
	}
	if update.Tags != nil {
		addSet("tags", *update.Tags)
	}
	if update.Status != nil {
		addSet("status", *update.Status)
	}

	if len(setClauses) == 0 {
		return r.FindByID(ctx, userID, id)
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id, userID)

	query := fmt.Sprintf(`UPDATE contacts SET %s WHERE id = $%d AND user_id = $%d RETURNING %s`, strings.Join(setClauses, ", "), idx, idx+1, contactColumns)

	contact, err := scanContactRow(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}

	return contact, nil
}

// Delete removes a contact owned by the user. Scheduler links cascade via the
// foreign key constraint.
func (r *PGXContactsRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *PGXContactsRepository) attachLinks(ctx context.Context, contacts []*entity.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(contacts))
	byID := make(map[uuid.UUID]*entity.Contact, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
		byID[c.ID] = c
	}

	rows, err := r.pool.Query(ctx, `
        SELECT `+linkColumns+`
        FROM scheduler_links
        WHERE contact_id = ANY($1)
        ORDER BY discovered_at DESC
    `, ids)
	if err != nil {
		return fmt.Errorf("load scheduler links: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return err
		}
		if owner, ok := byID[link.ContactID]; ok {
			owner.SchedulerLinks = append(owner.SchedulerLinks, *link)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate scheduler links: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContactRow(row rowScanner) (*entity.Contact, error) {
	var (
		c            entity.Contact
		title        sql.NullString
		organization sql.NullString
		location     sql.NullString
		email        sql.NullString
		linkedinURL  sql.NullString
		twitterURL   sql.NullString
		websiteURL   sql.NullString
		notes        sql.NullString
		tags         []string
	)

	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.PersonName,
		&title,
		&organization,
		&location,
		&email,
		&linkedinURL,
		&twitterURL,
		&websiteURL,
		&notes,
		&tags,
		&c.Status,
		&c.Source,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Title = nullStringToPtr(title)
	c.Organization = nullStringToPtr(organization)
	c.Location = nullStringToPtr(location)
	c.Email = nullStringToPtr(email)
	c.LinkedInURL = nullStringToPtr(linkedinURL)
	c.TwitterURL = nullStringToPtr(twitterURL)
	c.WebsiteURL = nullStringToPtr(websiteURL)
	c.Notes = nullStringToPtr(notes)
	if tags == nil {
		tags = []string{}
	}
	c.Tags = tags

	return &c, nil
}

func scanContacts(rows pgx.Rows) ([]entity.Contact, error) {
	var contacts []entity.Contact
	for rows.Next() {
		c, err := scanContactRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
