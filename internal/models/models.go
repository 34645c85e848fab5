package models

import (
	"time"

	"github.com/lib/pq"
)

// Preset is a named starting layout stored in Postgres. Balls holds the
// JSON-encoded ball array.
type Preset struct {
	ID          int            `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Balls       []byte         `db:"balls" json:"-"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}
