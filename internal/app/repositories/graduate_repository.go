package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/pkg/apperrors"
	"github.com/yigit/gradtracker/internal/pkg/dberrors"
)

const graduatesTable = "graduates"

var summaryColumns = []string{"id", "name", "highschool", "graduation_year", "class_name", "security_question"}

var recordColumns = []string{
	"id", "name", "highschool", "graduation_year", "class_name", "destination_type",
	"destination", "description", "security_question", "security_answer", "created_at",
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GraduateRepository persists graduate records
type GraduateRepository interface {
	// Create inserts rec and fills in its ID and CreatedAt
	Create(ctx context.Context, rec *models.GraduateRecord) (int64, error)
	// CreateUniqueName inserts rec unless a record with the same name exists
	CreateUniqueName(ctx context.Context, rec *models.GraduateRecord) (int64, error)
	// Search returns records matching every non-empty filter, newest class first
	Search(ctx context.Context, filter models.GraduateFilter) ([]models.GraduateSummary, error)
	// GetByID returns the full stored record
	GetByID(ctx context.Context, id int64) (*models.GraduateRecord, error)
	// Count returns the number of stored records
	Count(ctx context.Context) (int64, error)
}

// PgGraduateRepository handles graduate database operations
type PgGraduateRepository struct {
	db  *pgxpool.Pool
	sb  squirrel.StatementBuilderType
	log zerolog.Logger
}

// NewGraduateRepository creates a new PgGraduateRepository
func NewGraduateRepository(db *pgxpool.Pool, lgr zerolog.Logger) *PgGraduateRepository {
	return &PgGraduateRepository{
		db:  db,
		sb:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		log: lgr,
	}
}

// queryRower is satisfied by both the pool and a transaction
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Create inserts a graduate record
func (r *PgGraduateRepository) Create(ctx context.Context, rec *models.GraduateRecord) (int64, error) {
	return r.insert(ctx, r.db, rec)
}

// CreateUniqueName inserts a graduate record if no record with the same
// (case-insensitive, trimmed) name exists. Concurrent registrations of one
// name are serialized by a transaction-scoped advisory lock.
func (r *PgGraduateRepository) CreateUniqueName(ctx context.Context, rec *models.GraduateRecord) (int64, error) {
	var id int64
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		key := strings.ToLower(strings.TrimSpace(rec.Name))
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
			return fmt.Errorf("failed to lock graduate name: %w", err)
		}

		sql, args, err := r.sb.Select("1").
			From(graduatesTable).
			Where(squirrel.Expr("LOWER(name) = ?", key)).
			Prefix("SELECT EXISTS (").
			Suffix(")").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build name exists query: %w", err)
		}

		var exists bool
		if err := tx.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
			return fmt.Errorf("error checking graduate name: %w", err)
		}
		if exists {
			return apperrors.ErrGraduateNameExists
		}

		id, err = r.insert(ctx, tx, rec)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PgGraduateRepository) insert(ctx context.Context, q queryRower, rec *models.GraduateRecord) (int64, error) {
	sql, args, err := r.sb.Insert(graduatesTable).
		Columns("name", "highschool", "graduation_year", "class_name", "destination_type",
			"destination", "description", "security_question", "security_answer").
		Values(rec.Name, rec.Highschool, rec.GraduationYear, rec.ClassName, rec.DestinationType,
			rec.Destination, rec.Description, rec.SecurityQuestion, rec.SecurityAnswer).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		r.log.Error().Err(err).Msg("Error building create graduate SQL")
		return 0, fmt.Errorf("failed to build create graduate query: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		if column, ok := dberrors.NotNullColumn(err); ok {
			return 0, apperrors.NewFieldError(column, column+" is required")
		}
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrGraduateNameExists
		}
		r.log.Error().Err(err).Msg("Error executing create graduate query")
		return 0, fmt.Errorf("error creating graduate: %w", err)
	}

	return rec.ID, nil
}

// Search finds graduates whose name and/or highschool contain the filter
// values, case-insensitively. An empty filter returns an empty list without
// touching the database.
func (r *PgGraduateRepository) Search(ctx context.Context, filter models.GraduateFilter) ([]models.GraduateSummary, error) {
	filter = filter.Normalize()
	if filter.IsEmpty() {
		return []models.GraduateSummary{}, nil
	}

	sql, args, err := buildSearchQuery(r.sb, filter)
	if err != nil {
		r.log.Error().Err(err).Msg("Error building search graduates SQL")
		return nil, fmt.Errorf("failed to build search graduates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		r.log.Error().Err(err).Msg("Error executing search graduates query")
		return nil, fmt.Errorf("error searching graduates: %w", err)
	}
	defer rows.Close()

	results := []models.GraduateSummary{}
	for rows.Next() {
		var g models.GraduateSummary
		if err := rows.Scan(&g.ID, &g.Name, &g.Highschool, &g.GraduationYear, &g.ClassName, &g.SecurityQuestion); err != nil {
			r.log.Error().Err(err).Msg("Error scanning graduate row")
			return nil, fmt.Errorf("error scanning graduate row: %w", err)
		}
		results = append(results, g)
	}

	if err := rows.Err(); err != nil {
		r.log.Error().Err(err).Msg("Error iterating graduate rows")
		return nil, fmt.Errorf("error iterating graduate rows: %w", err)
	}

	return results, nil
}

// GetByID retrieves a graduate record by ID
func (r *PgGraduateRepository) GetByID(ctx context.Context, id int64) (*models.GraduateRecord, error) {
	sql, args, err := r.sb.Select(recordColumns...).
		From(graduatesTable).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		r.log.Error().Err(err).Msg("Error building get graduate by ID SQL")
		return nil, fmt.Errorf("failed to build get graduate query: %w", err)
	}

	rec := &models.GraduateRecord{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rec.ID, &rec.Name, &rec.Highschool, &rec.GraduationYear, &rec.ClassName, &rec.DestinationType,
		&rec.Destination, &rec.Description, &rec.SecurityQuestion, &rec.SecurityAnswer, &rec.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGraduateNotFound
		}
		r.log.Error().Err(err).Int64("graduateID", id).Msg("Error scanning graduate row")
		return nil, fmt.Errorf("error getting graduate by ID: %w", err)
	}

	return rec, nil
}

// Count returns the number of stored graduate records
func (r *PgGraduateRepository) Count(ctx context.Context) (int64, error) {
	sql, args, err := r.sb.Select("COUNT(*)").From(graduatesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count graduates query: %w", err)
	}

	var n int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		r.log.Error().Err(err).Msg("Error counting graduates")
		return 0, fmt.Errorf("error counting graduates: %w", err)
	}
	return n, nil
}

// buildSearchQuery builds the parameterized search statement for a
// normalized, non-empty filter.
func buildSearchQuery(sb squirrel.StatementBuilderType, filter models.GraduateFilter) (string, []interface{}, error) {
	conditions := squirrel.And{}
	if filter.Name != "" {
		conditions = append(conditions, squirrel.ILike{"name": containsPattern(filter.Name)})
	}
	if filter.Highschool != "" {
		conditions = append(conditions, squirrel.ILike{"highschool": containsPattern(filter.Highschool)})
	}

	return sb.Select(summaryColumns...).
		From(graduatesTable).
		Where(conditions).
		OrderBy("graduation_year DESC", "id ASC").
		ToSql()
}

// containsPattern wraps s for a substring LIKE match
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
