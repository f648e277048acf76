// ABOUTME: Check-in operations and export hooks for Charm KV storage.
// ABOUTME: Check-ins are append-only and sorted newest first on read.
package charm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
)

// CreateCheckIn stores a new check-in. Returns storage.ErrDuplicate for a reused ID.
func (c *Client) CreateCheckIn(ci *models.CheckIn) error {
	data, err := marshalJSON(ci)
	if err != nil {
		return fmt.Errorf("marshal check-in: %w", err)
	}

	key := checkInKey(ci.UserID, ci.ID)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.getLocked(key); err == nil {
		return fmt.Errorf("check-in %s: %w", ci.ID, storage.ErrDuplicate)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("create check-in: %w", err)
	}
	return c.setLocked(key, data)
}

// ListCheckIns retrieves the most recent check-ins, sorted by date descending.
func (c *Client) ListCheckIns(userID uuid.UUID, limit int) ([]*models.CheckIn, error) {
	values, err := c.listByPrefix(checkInUserPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}

	checkIns := decodeAll[models.CheckIn](values)
	sortCheckIns(checkIns)
	return limitList(checkIns, limit), nil
}

// sortCheckIns orders by date, then submission time, newest first.
func sortCheckIns(checkIns []*models.CheckIn) {
	sort.Slice(checkIns, func(i, j int) bool {
		if checkIns[i].Date != checkIns[j].Date {
			return checkIns[i].Date > checkIns[j].Date
		}
		return checkIns[i].SubmittedAt.After(checkIns[j].SubmittedAt)
	})
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData(userID uuid.UUID) (*storage.ExportData, error) {
	return storage.CollectExport(c, userID)
}

// ImportData imports data from an export file.
func (c *Client) ImportData(userID uuid.UUID, data *storage.ExportData) error {
	return storage.ApplyImport(c, userID, data)
}
