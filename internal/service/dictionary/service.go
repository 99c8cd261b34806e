// Package dictionary is the entry point for dictionary, wordlist and
// wordlist row operations. It validates input, dispatches to the configured
// Store and logs backend failures. Referential integrity on delete belongs
// to the Store: relational stores cascade through foreign keys and the
// document store runs the steps in internal/cascade.
package dictionary

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/cascade"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// Store is the storage contract every backend implements.
//
// Deletes return false, not an error, when the id does not exist. Single
// reads return domain.ErrNotFound. List reads return an empty slice for an
// unknown parent.
type Store interface {
	CreateDictionary(ctx context.Context, name string) (domain.ID, error)
	GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error)
	ListDictionaries(ctx context.Context) ([]domain.Dictionary, error)
	DeleteDictionary(ctx context.Context, id domain.ID) (bool, error)

	CreateWordlist(ctx context.Context, name string, dictID domain.ID) (domain.ID, error)
	GetWordlistsByDict(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error)
	DeleteWordlist(ctx context.Context, id domain.ID) (bool, error)

	CreateWordlistRow(ctx context.Context, phrase, meaning string, wordlistID domain.ID) (domain.ID, error)
	GetRowsByWordlist(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error)
	DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error)

	Ping(ctx context.Context) error
}

// Service implements the dictionary operations.
type Service struct {
	store Store
	log   *slog.Logger
}

// NewService creates a new Service. backend names the store in logs.
func NewService(log *slog.Logger, store Store, backend string) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "dictionary", "backend", backend),
	}
}

// Ping checks that the backing store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// logFailure records a store error. Integrity violations come from user
// input and go to warn. A cascade that stopped midway carries the step it
// stopped at; earlier steps stay applied.
func (s *Service) logFailure(ctx context.Context, op string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	if domain.IsIntegrityViolation(err) {
		level = slog.LevelWarn
	}

	attrs = append(attrs, slog.String("op", op), slog.String("error", err.Error()))

	var stepErr *cascade.StepError
	if errors.As(err, &stepErr) {
		attrs = append(attrs, slog.String("cascade_step", stepErr.Step))
	}

	s.log.LogAttrs(ctx, level, "store operation failed", attrs...)
}
