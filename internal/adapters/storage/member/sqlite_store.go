package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/member"
)

const selectMember = "SELECT id, account_id, name, email, status FROM member"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new member store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Member by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Member, error) {
	return s.getOne(ctx, selectMember+" WHERE id = ?", id)
}

// GetByAccountID retrieves the Member linked to an account.
// PRE: accountID is non-empty
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByAccountID(ctx context.Context, accountID string) (domain.Member, error) {
	return s.getOne(ctx, selectMember+" WHERE account_id = ?", accountID)
}

func (s *SQLiteStore) getOne(ctx context.Context, query, arg string) (domain.Member, error) {
	var m domain.Member
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&m.ID, &m.AccountID, &m.Name, &m.Email, &m.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Member{}, fmt.Errorf("member %s: %w", arg, domain.ErrNotFound)
	}
	return m, err
}

// Save persists a Member (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, m domain.Member) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO member (id, account_id, name, email, status)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name=excluded.name, email=excluded.email, status=excluded.status`,
		m.ID, m.AccountID, m.Name, strings.ToLower(m.Email), m.Status,
	)
	if err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	return nil
}

// List retrieves Members ordered by name.
// PRE: filter.Limit > 0
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Member, error) {
	var qb strings.Builder
	var args []any
	qb.WriteString(selectMember)
	if filter.Status != "" {
		qb.WriteString(" WHERE status = ?")
		args = append(args, filter.Status)
	}
	qb.WriteString(" ORDER BY name COLLATE NOCASE LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(&m.ID, &m.AccountID, &m.Name, &m.Email, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
