package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/linkscout/scheduler-finder/api/internal/entity"
)

func scanStubLink(id, contactID uuid.UUID) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*uuid.UUID) = id
		*dest[1].(*uuid.UUID) = contactID
		*dest[2].(*string) = "https://calendly.com/jane"
		*dest[3].(*string) = "calendly"
		*dest[4].(*float64) = 0.8
		*dest[5].(*sql.NullString) = sql.NullString{}
		*dest[6].(*bool) = false
		*dest[7].(*sql.NullTime) = sql.NullTime{}
		*dest[8].(*sql.NullTime) = sql.NullTime{}
		*dest[9].(*time.Time) = time.Now()
		return nil
	}
}

func TestPGXLinksRepository_Insert(t *testing.T) {
	linkID := uuid.New()
	contactID := uuid.New()

	var gotArgs []any
	repo := &PGXLinksRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotArgs = args
			return &stubRow{scan: scanStubLink(linkID, contactID)}
		},
	}}

	saved, err := repo.Insert(context.Background(), &entity.SchedulerLink{
		ContactID:       contactID,
		URL:             "https://calendly.com/jane",
		Platform:        "calendly",
		ConfidenceScore: 0.8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ID != linkID || saved.Platform != "calendly" {
		t.Fatalf("unexpected link: %+v", saved)
	}
	if len(gotArgs) != 6 || gotArgs[0] != contactID {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	if _, err := repo.Insert(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil payload")
	}
}

func TestPGXLinksRepository_FindOwnedByID(t *testing.T) {
	userID := uuid.New()
	linkID := uuid.New()

	var gotQuery string
	var gotArgs []any
	repo := &PGXLinksRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotQuery = query
			gotArgs = args
			return &stubRow{scan: scanStubLink(linkID, uuid.New())}
		},
	}}

	link, err := repo.FindOwnedByID(context.Background(), userID, linkID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if link.ID != linkID {
		t.Fatalf("unexpected link: %+v", link)
	}
	if !strings.Contains(gotQuery, "JOIN contacts c ON c.id = l.contact_id") {
		t.Fatalf("expected ownership join, got query: %s", gotQuery)
	}
	if len(gotArgs) != 2 || gotArgs[0] != linkID || gotArgs[1] != userID {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.FindOwnedByID(context.Background(), userID, linkID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestPGXLinksRepository_UpdateValidation(t *testing.T) {
	linkID := uuid.New()

	var gotQuery string
	var gotArgs []any
	repo := &PGXLinksRepository{pool: &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			gotQuery = query
			gotArgs = args
			return pgconn.NewCommandTag("UPDATE 1"), nil
		},
	}}

	err := repo.UpdateValidation(context.Background(), linkID, ValidationUpdate{
		IsVerified:      true,
		Platform:        "calendly",
		ConfidenceScore: 1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"is_verified = $2", "verification_date = NOW()", "last_checked = NOW()"} {
		if !strings.Contains(gotQuery, fragment) {
			t.Fatalf("query missing %q: %s", fragment, gotQuery)
		}
	}
	if len(gotArgs) != 4 || gotArgs[0] != linkID || gotArgs[1] != true {
		t.Fatalf("unexpected args: %v", gotArgs)
	}

	repo.pool = &stubPool{
		execFunc: func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		},
	}
	if err := repo.UpdateValidation(context.Background(), linkID, ValidationUpdate{}); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}
