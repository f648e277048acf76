// ABOUTME: Account and profile operations for SQL storage.
// ABOUTME: Profiles are stored as a JSON document keyed by user ID.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
)

// CreateUser stores a new account. Returns ErrDuplicate if the email is taken.
func (d *DB) CreateUser(u *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, onboarded, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.Exec(query,
		u.ID.String(),
		models.NormalizeEmail(u.Email),
		u.PasswordHash,
		boolToInt(u.Onboarded),
		formatTime(u.CreatedAt),
		formatTime(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create user %s: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves an account by ID.
func (d *DB) GetUser(id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, onboarded, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return d.scanUser(d.db.QueryRow(query, id.String()))
}

// GetUserByEmail retrieves an account by normalized email.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, onboarded, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return d.scanUser(d.db.QueryRow(query, models.NormalizeEmail(email)))
}

// ListUsers returns every account, oldest first.
func (d *DB) ListUsers() ([]*models.User, error) {
	return d.listUsers(`
		SELECT id, email, password_hash, onboarded, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`)
}

// ListOnboardedUsers returns every account that has completed onboarding.
func (d *DB) ListOnboardedUsers() ([]*models.User, error) {
	return d.listUsers(`
		SELECT id, email, password_hash, onboarded, created_at, updated_at
		FROM users
		WHERE onboarded = 1
		ORDER BY created_at ASC
	`)
}

func (d *DB) listUsers(query string) ([]*models.User, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := d.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// SaveProfile creates or replaces the profile and marks the account onboarded.
func (d *DB) SaveProfile(userID uuid.UUID, p *models.Profile) error {
	now := time.Now()
	p.UserID = userID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`UPDATE users SET onboarded = 1, updated_at = ? WHERE id = ?`,
		formatTime(now), userID.String())
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	_, err = tx.Exec(`
		INSERT INTO profiles (user_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, userID.String(), string(data), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	return tx.Commit()
}

// GetProfile retrieves the profile of an onboarded account.
func (d *DB) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	var data string
	err := d.db.QueryRow(`
		SELECT p.data
		FROM profiles p JOIN users u ON u.id = p.user_id
		WHERE p.user_id = ? AND u.onboarded = 1
	`, userID.String()).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	var p models.Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &p, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanUser scans a single row into a User struct.
func (d *DB) scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var idStr, createdAt, updatedAt string

	err := row.Scan(&idStr, &u.Email, &u.PasswordHash, &u.Onboarded, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	u.ID, _ = uuid.Parse(idStr)
	u.CreatedAt = parseTime(createdAt)
	u.UpdatedAt = parseTime(updatedAt)
	return &u, nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// boolToInt stores booleans as 0/1 integers.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime stores timestamps as UTC with nanoseconds.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime reads a timestamp written by formatTime.
func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// formatNullTime maps a nil time to SQL NULL.
func formatNullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// parseNullTime maps SQL NULL to a nil time.
func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t := parseTime(s.String)
	return &t
}
