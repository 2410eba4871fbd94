package models

import (
	"time"
)

// File statuses. Removed rows stay in the database as tombstones and are
// excluded from every listing.
const (
	StatusActive   = 1
	StatusDisabled = 2
	StatusRemoved  = -1
)

type FileRecord struct {
	ID          string    `json:"id"`
	OwnerType   string    `json:"owner_type"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Extension   string    `json:"extension"`
	Fingerprint string    `json:"fingerprint"`
	SizeBytes   int64     `json:"size_bytes"`
	Reference   string    `json:"reference"`
	Status      int       `json:"status"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}
