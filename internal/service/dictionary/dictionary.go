package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateDictionary creates a dictionary and returns its id.
func (s *Service) CreateDictionary(ctx context.Context, in CreateDictionaryInput) (domain.ID, error) {
	if err := in.Validate(); err != nil {
		return "", err
	}

	name := strings.TrimSpace(in.Name)
	id, err := s.store.CreateDictionary(ctx, name)
	if err != nil {
		s.logFailure(ctx, "create_dictionary", err, slog.String("name", name))
		return "", fmt.Errorf("create dictionary: %w", err)
	}

	s.log.InfoContext(ctx, "dictionary created", slog.String("dict_id", id.String()))
	return id, nil
}

// GetDictionary returns a dictionary by id.
func (s *Service) GetDictionary(ctx context.Context, id domain.ID) (*domain.Dictionary, error) {
	d, err := s.store.GetDictionary(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			s.logFailure(ctx, "get_dictionary", err, slog.String("dict_id", id.String()))
		}
		return nil, fmt.Errorf("get dictionary: %w", err)
	}
	return d, nil
}

// ListDictionaries returns every dictionary.
func (s *Service) ListDictionaries(ctx context.Context) ([]domain.Dictionary, error) {
	dicts, err := s.store.ListDictionaries(ctx)
	if err != nil {
		s.logFailure(ctx, "list_dictionaries", err)
		return nil, fmt.Errorf("list dictionaries: %w", err)
	}
	return dicts, nil
}

// DeleteDictionary removes a dictionary together with its wordlists and
// their rows. Deleting an unknown id is a no-op and reports false.
func (s *Service) DeleteDictionary(ctx context.Context, id domain.ID) (bool, error) {
	deleted, err := s.store.DeleteDictionary(ctx, id)
	if err != nil {
		s.logFailure(ctx, "delete_dictionary", err, slog.String("dict_id", id.String()))
		return false, fmt.Errorf("delete dictionary: %w", err)
	}

	if deleted {
		s.log.InfoContext(ctx, "dictionary deleted", slog.String("dict_id", id.String()))
	}
	return deleted, nil
}
