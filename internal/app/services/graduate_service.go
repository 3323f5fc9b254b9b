package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/yigit/gradtracker/internal/app/models"
	"github.com/yigit/gradtracker/internal/app/repositories"
	"github.com/yigit/gradtracker/internal/pkg/apperrors"
	"github.com/yigit/gradtracker/internal/pkg/cache"
	"github.com/yigit/gradtracker/internal/pkg/validation"
)

// Verify outcomes recorded in metrics
const (
	verifyCorrect       = "correct"
	verifyIncorrect     = "incorrect"
	verifyUndecryptable = "undecryptable"
)

var (
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gradtracker_search_duration_seconds",
		Help:    "Duration of graduate searches by result source.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
	verifyAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gradtracker_verify_attempts_total",
		Help: "Security answer verification attempts by outcome.",
	}, []string{"outcome"})
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gradtracker_registrations_total",
		Help: "Number of successfully registered graduate records.",
	})
)

// FieldCipher encrypts and decrypts individual record fields
type FieldCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// VerifyResult is the outcome of a security answer check.
// Details is only set when IsCorrect is true.
type VerifyResult struct {
	IsCorrect bool
	Details   *models.GraduateDetails
}

// GraduateService defines the interface for graduate record operations
type GraduateService interface {
	Register(ctx context.Context, sub models.GraduateSubmission) (int64, error)
	Search(ctx context.Context, filter models.GraduateFilter) ([]models.GraduateSummary, error)
	Verify(ctx context.Context, id int64, answer string) (*VerifyResult, error)
}

// GraduateServiceConfig holds behaviour switches of the graduate service
type GraduateServiceConfig struct {
	// UniqueNames rejects a registration whose name is already stored
	UniqueNames bool
}

// graduateServiceImpl implements the GraduateService interface
type graduateServiceImpl struct {
	repo   repositories.GraduateRepository
	cipher FieldCipher
	cache  cache.Cache
	cfg    GraduateServiceConfig
	logger zerolog.Logger
}

// NewGraduateService creates a new graduate service instance
func NewGraduateService(
	repo repositories.GraduateRepository,
	cipher FieldCipher,
	responseCache cache.Cache,
	cfg GraduateServiceConfig,
	logger zerolog.Logger,
) GraduateService {
	if responseCache == nil {
		responseCache = cache.NewNoop()
	}
	return &graduateServiceImpl{
		repo:   repo,
		cipher: cipher,
		cache:  responseCache,
		cfg:    cfg,
		logger: logger,
	}
}

// Register validates a submission, encrypts its sensitive fields and stores it
func (s *graduateServiceImpl) Register(ctx context.Context, sub models.GraduateSubmission) (int64, error) {
	if err := validation.Struct(&sub); err != nil {
		return 0, err
	}

	rec, err := s.sealSubmission(sub)
	if err != nil {
		return 0, err
	}

	var id int64
	if s.cfg.UniqueNames {
		id, err = s.repo.CreateUniqueName(ctx, rec)
	} else {
		id, err = s.repo.Create(ctx, rec)
	}
	if err != nil {
		if apperrors.Is(err, apperrors.ErrGraduateNameExists, apperrors.ErrValidationFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("error registering graduate: %w", err)
	}

	registrationsTotal.Inc()
	s.logger.Info().Int64("graduateID", id).Str("graduationYear", rec.GraduationYear).Msg("Graduate registered")
	return id, nil
}

// sealSubmission builds the stored record: identifying fields trimmed,
// sensitive fields encrypted.
func (s *graduateServiceImpl) sealSubmission(sub models.GraduateSubmission) (*models.GraduateRecord, error) {
	rec := &models.GraduateRecord{
		Name:            strings.TrimSpace(sub.Name),
		Highschool:      strings.TrimSpace(sub.Highschool),
		GraduationYear:  strings.TrimSpace(sub.GraduationYear),
		ClassName:       models.OptionalString(sub.ClassName),
		DestinationType: strings.TrimSpace(sub.DestinationType),
	}

	var err error
	if rec.Destination, err = s.cipher.Encrypt(sub.Destination); err != nil {
		return nil, fmt.Errorf("failed to encrypt destination: %w", err)
	}
	if rec.SecurityQuestion, err = s.cipher.Encrypt(sub.SecurityQuestion); err != nil {
		return nil, fmt.Errorf("failed to encrypt security question: %w", err)
	}
	if rec.SecurityAnswer, err = s.cipher.Encrypt(sub.SecurityAnswer); err != nil {
		return nil, fmt.Errorf("failed to encrypt security answer: %w", err)
	}
	if desc := models.OptionalString(sub.Description); desc != nil {
		sealed, err := s.cipher.Encrypt(*desc)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt description: %w", err)
		}
		rec.Description = &sealed
	}

	return rec, nil
}

// Search returns records matching the filter. Results are served from the
// response cache when an equivalent search ran within the cache TTL.
func (s *graduateServiceImpl) Search(ctx context.Context, filter models.GraduateFilter) ([]models.GraduateSummary, error) {
	filter = filter.Normalize()
	if filter.IsEmpty() {
		return []models.GraduateSummary{}, nil
	}

	start := time.Now()
	key := filter.CacheKey()

	if raw, ok := s.cache.Get(ctx, key); ok {
		var cached []models.GraduateSummary
		if err := json.Unmarshal(raw, &cached); err == nil {
			searchDuration.WithLabelValues("cache").Observe(time.Since(start).Seconds())
			return cached, nil
		}
		s.logger.Warn().Str("key", key).Msg("Dropping unreadable cached search result")
		s.cache.Delete(ctx, key)
	}

	results, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error searching graduates: %w", err)
	}

	if raw, err := json.Marshal(results); err == nil {
		s.cache.Set(ctx, key, raw)
	}

	searchDuration.WithLabelValues("db").Observe(time.Since(start).Seconds())
	s.logger.Debug().Int("count", len(results)).Msg("Graduate search served from database")
	return results, nil
}

// Verify checks a candidate answer against the stored security answer.
// Comparison ignores case and surrounding whitespace. A stored answer that
// cannot be decrypted counts as a wrong answer. Only a missing answer is
// rejected; a whitespace-only one is compared and simply fails.
func (s *graduateServiceImpl) Verify(ctx context.Context, id int64, answer string) (*VerifyResult, error) {
	if id <= 0 {
		return nil, apperrors.NewFieldError("id", "id is required")
	}
	if answer == "" {
		return nil, apperrors.NewFieldError("answer", "answer is required")
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrGraduateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving graduate: %w", err)
	}

	stored, err := s.cipher.Decrypt(rec.SecurityAnswer)
	if err != nil {
		verifyAttemptsTotal.WithLabelValues(verifyUndecryptable).Inc()
		s.logger.Warn().Err(err).Int64("graduateID", id).Msg("Stored security answer cannot be decrypted")
		return &VerifyResult{IsCorrect: false}, nil
	}

	if !answersMatch(stored, answer) {
		verifyAttemptsTotal.WithLabelValues(verifyIncorrect).Inc()
		return &VerifyResult{IsCorrect: false}, nil
	}
	verifyAttemptsTotal.WithLabelValues(verifyCorrect).Inc()

	details, err := s.reveal(rec)
	if err != nil {
		s.logger.Error().Err(err).Int64("graduateID", id).Msg("Failed to decrypt graduate details")
		return nil, err
	}
	return &VerifyResult{IsCorrect: true, Details: details}, nil
}

// reveal decrypts the destination fields of a verified record
func (s *graduateServiceImpl) reveal(rec *models.GraduateRecord) (*models.GraduateDetails, error) {
	destination, err := s.cipher.Decrypt(rec.Destination)
	if err != nil {
		return nil, fmt.Errorf("%w: destination of graduate %d", apperrors.ErrUndecryptable, rec.ID)
	}

	details := &models.GraduateDetails{
		Name:            rec.Name,
		Highschool:      rec.Highschool,
		GraduationYear:  rec.GraduationYear,
		ClassName:       rec.ClassName,
		DestinationType: rec.DestinationType,
		Destination:     destination,
	}

	if rec.Description != nil {
		desc, err := s.cipher.Decrypt(*rec.Description)
		if err != nil {
			return nil, fmt.Errorf("%w: description of graduate %d", apperrors.ErrUndecryptable, rec.ID)
		}
		details.Description = &desc
	}

	return details, nil
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func answersMatch(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(normalizeAnswer(stored)), []byte(normalizeAnswer(candidate))) == 1
}
