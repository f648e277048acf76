// ABOUTME: Account and profile operations for Charm KV storage.
// ABOUTME: Emails are indexed by a separate key that points at the user ID.
package charm

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

// userRecord persists the password hash, which models.User hides from JSON.
type userRecord struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Onboarded    bool      `json:"onboarded"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toRecord(u *models.User) userRecord {
	return userRecord{
		ID:           u.ID,
		Email:        models.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Onboarded:    u.Onboarded,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *userRecord) toUser() *models.User {
	return &models.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Onboarded:    r.Onboarded,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// CreateUser stores a new account. Returns storage.ErrDuplicate if the email is taken.
func (c *Client) CreateUser(u *models.User) error {
	rec := toRecord(u)
	data, err := marshalJSON(rec)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.getLocked(emailKey(rec.Email)); err == nil {
		return fmt.Errorf("create user %s: %w", rec.Email, storage.ErrDuplicate)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("create user: %w", err)
	}

	if err := c.setLocked(userKey(rec.ID), data); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	if err := c.setLocked(emailKey(rec.Email), []byte(rec.ID.String())); err != nil {
		return fmt.Errorf("index user email: %w", err)
	}
	return nil
}

// GetUser retrieves an account by ID.
func (c *Client) GetUser(id uuid.UUID) (*models.User, error) {
	data, err := c.get(userKey(id))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	rec, err := unmarshalJSON[userRecord](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal user: %w", err)
	}
	return rec.toUser(), nil
}

// GetUserByEmail retrieves an account by normalized email.
func (c *Client) GetUserByEmail(email string) (*models.User, error) {
	idData, err := c.get(emailKey(models.NormalizeEmail(email)))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	id, err := uuid.Parse(string(idData))
	if err != nil {
		return nil, fmt.Errorf("parse user id: %w", err)
	}
	return c.GetUser(id)
}

// ListUsers returns every account, oldest first.
func (c *Client) ListUsers() ([]*models.User, error) {
	values, err := c.listByPrefix(UserPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	records := decodeAll[userRecord](values)
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	users := make([]*models.User, 0, len(records))
	for _, r := range records {
		users = append(users, r.toUser())
	}
	return users, nil
}

// ListOnboardedUsers returns every account that has completed onboarding.
func (c *Client) ListOnboardedUsers() ([]*models.User, error) {
	all, err := c.ListUsers()
	if err != nil {
		return nil, err
	}
	var users []*models.User
	for _, u := range all {
		if u.Onboarded {
			users = append(users, u)
		}
	}
	return users, nil
}

// SaveProfile creates or replaces the profile and marks the account onboarded.
func (c *Client) SaveProfile(userID uuid.UUID, p *models.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.getLocked(userKey(userID))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	rec, err := unmarshalJSON[userRecord](data)
	if err != nil {
		return fmt.Errorf("unmarshal user: %w", err)
	}

	now := time.Now()
	p.UserID = userID
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	profileData, err := marshalJSON(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	if err := c.setLocked(profileKey(userID), profileData); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	rec.Onboarded = true
	rec.UpdatedAt = now
	userData, err := marshalJSON(rec)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return c.setLocked(userKey(userID), userData)
}

// GetProfile retrieves the profile of an onboarded account.
func (c *Client) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	u, err := c.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if !u.Onboarded {
		return nil, fmt.Errorf("profile %s: %w", userID, storage.ErrNotFound)
	}

	data, err := c.get(profileKey(userID))
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p, err := unmarshalJSON[models.Profile](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return p, nil
}
