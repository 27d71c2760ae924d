package qrcode

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gymportal/internal/adapters/storage"
	domain "gymportal/internal/domain/qrcode"
)

const selectCode = "SELECT id, member_id, category, token, label, created_at, expires_at, revoked_at, used_at FROM qr_code"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new QR code store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves a Code by its ID.
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Code, error) {
	return s.getOne(ctx, selectCode+" WHERE id = ?", id)
}

// GetByToken retrieves a Code by its scanned token.
// POST: Returns the entity or an error wrapping domain.ErrNotFound
func (s *SQLiteStore) GetByToken(ctx context.Context, token string) (domain.Code, error) {
	return s.getOne(ctx, selectCode+" WHERE token = ?", token)
}

func (s *SQLiteStore) getOne(ctx context.Context, query, arg string) (domain.Code, error) {
	c, err := scanCode(s.db.QueryRowContext(ctx, query, arg).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Code{}, fmt.Errorf("qr code: %w", domain.ErrNotFound)
	}
	return c, err
}

// Save persists a Code (insert or update). Token and category never change.
// PRE: entity has been validated
func (s *SQLiteStore) Save(ctx context.Context, c domain.Code) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO qr_code (id, member_id, category, token, label, created_at, expires_at, revoked_at, used_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET label=excluded.label, revoked_at=excluded.revoked_at, used_at=excluded.used_at`,
		c.ID, c.MemberID, c.Category, c.Token, c.Label,
		storage.FormatTime(c.CreatedAt), storage.NullableTime(c.ExpiresAt),
		storage.NullableTime(c.RevokedAt), storage.NullableTime(c.UsedAt),
	)
	if err != nil {
		return fmt.Errorf("save qr code: %w", err)
	}
	return nil
}

// ListByMember returns a member's codes, newest first.
func (s *SQLiteStore) ListByMember(ctx context.Context, memberID string) ([]domain.Code, error) {
	rows, err := s.db.QueryContext(ctx, selectCode+" WHERE member_id = ? ORDER BY created_at DESC", memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Code
	for rows.Next() {
		c, err := scanCode(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCode(scan func(dest ...any) error) (domain.Code, error) {
	var c domain.Code
	var createdAt string
	var expiresAt, revokedAt, usedAt sql.NullString
	if err := scan(&c.ID, &c.MemberID, &c.Category, &c.Token, &c.Label, &createdAt, &expiresAt, &revokedAt, &usedAt); err != nil {
		return domain.Code{}, err
	}
	c.CreatedAt, _ = storage.ParseTime(createdAt)
	c.ExpiresAt = storage.ParseNullTime(expiresAt)
	c.RevokedAt = storage.ParseNullTime(revokedAt)
	c.UsedAt = storage.ParseNullTime(usedAt)
	return c, nil
}
