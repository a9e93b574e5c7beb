// Package sqlite implements the article repository over a local sqlite
// database.
package sqlite

import (
	"github.com/jmoiron/sqlx"

	"github.com/mwhitley/campusfeed/internal/campusfeed"
)

// Ensure Repo implements the Repository interface
var _ campusfeed.Repository = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}
