package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubPool struct {
	queryRowFunc func(ctx context.Context, query string, args ...any) pgx.Row
	queryFunc    func(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	execFunc     func(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

func (s *stubPool) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	if s.queryRowFunc != nil {
		return s.queryRowFunc(ctx, query, args...)
	}
	return &stubRow{scan: func(dest ...any) error { return nil }}
}

func (s *stubPool) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if s.queryFunc != nil {
		return s.queryFunc(ctx, query, args...)
	}
	return nil, errors.New("query not implemented")
}

func (s *stubPool) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	if s.execFunc != nil {
		return s.execFunc(ctx, query, args...)
	}
	return pgconn.CommandTag{}, errors.New("exec not implemented")
}

type stubRow struct {
	scan func(dest ...any) error
}

func (s *stubRow) Scan(dest ...any) error {
	if s.scan != nil {
		return s.scan(dest...)
	}
	return nil
}

type stubRows struct {
	scans []func(dest ...any) error
	idx   int
	err   error
}

func (s *stubRows) Close() {}

func (s *stubRows) Err() error { return s.err }

func (s *stubRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (s *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }

func (s *stubRows) Next() bool {
	if s.err != nil {
		return false
	}
	if s.idx < len(s.scans) {
		s.idx++
		return true
	}
	return false
}

func (s *stubRows) Scan(dest ...any) error {
	if s.idx == 0 || s.idx > len(s.scans) {
		return errors.New("scan called out of order")
	}
	return s.scans[s.idx-1](dest...)
}

func (s *stubRows) Values() ([]any, error) { return nil, nil }

func (s *stubRows) RawValues() [][]byte { return nil }

func (s *stubRows) Conn() *pgx.Conn { return nil }

func TestPGXUsersRepository_FindByEmail(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				created := time.Now()
				*dest[0].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
				*dest[1].(*string) = "jane@example.com"
				*dest[2].(*string) = "hashed"
				*dest[3].(*string) = "user"
				*dest[4].(*time.Time) = created
				*dest[5].(*time.Time) = created
				return nil
			}}
		},
	}}

	user, err := repo.FindByEmail(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "jane@example.com" || user.Role != "user" {
		t.Fatalf("unexpected user: %+v", user)
	}

	repo.pool = &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error { return pgx.ErrNoRows }}
		},
	}
	if _, err := repo.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPGXUsersRepository_Create_DuplicateEmail(t *testing.T) {
	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			return &stubRow{scan: func(dest ...any) error {
				return &pgconn.PgError{
					Code:    "23505",
					Message: `duplicate key value violates unique constraint "users_email_key"`,
				}
			}}
		},
	}}

	_, err := repo.Create(context.Background(), "jane@example.com", "hashed", "user")
	if !errors.Is(err, ErrEmailDuplicate) {
		t.Fatalf("expected ErrEmailDuplicate, got %v", err)
	}
}

func TestPGXUsersRepository_Create_PassesArguments(t *testing.T) {
	var gotQuery string
	var gotArgs []any

	repo := &PGXUsersRepository{pool: &stubPool{
		queryRowFunc: func(ctx context.Context, query string, args ...any) pgx.Row {
			gotQuery = query
			gotArgs = args
			return &stubRow{scan: func(dest ...any) error {
				*dest[0].(*uuid.UUID) = uuid.New()
				*dest[1].(*string) = args[0].(string)
				*dest[2].(*string) = args[1].(string)
				*dest[3].(*string) = args[2].(string)
				*dest[4].(*time.Time) = time.Now()
				*dest[5].(*time.Time) = time.Now()
				return nil
			}}
		},
	}}

	user, err := repo.Create(context.Background(), "jane@example.com", "hashed", "user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(gotQuery, "INSERT INTO users") {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(gotArgs) != 3 || gotArgs[0] != "jane@example.com" {
		t.Fatalf("unexpected args: %v", gotArgs)
	}
	if user.Email != "jane@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}
