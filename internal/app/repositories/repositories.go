package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Repositories holds all the repository instances
type Repositories struct {
	GraduateRepository *PgGraduateRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool, lgr zerolog.Logger) *Repositories {
	return &Repositories{
		GraduateRepository: NewGraduateRepository(db, lgr.With().Str("component", "graduate_repository").Logger()),
	}
}
