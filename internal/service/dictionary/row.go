package dictionary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlistRow adds a phrase and its meaning to a wordlist.
func (s *Service) CreateWordlistRow(ctx context.Context, in CreateWordlistRowInput) (domain.ID, error) {
	in.WordlistID = trimID(in.WordlistID)
	if err := in.Validate(); err != nil {
		return "", err
	}

	phrase := strings.TrimSpace(in.Phrase)
	meaning := strings.TrimSpace(in.Meaning)

	id, err := s.store.CreateWordlistRow(ctx, phrase, meaning, in.WordlistID)
	if err != nil {
		s.logFailure(ctx, "create_wordlist_row", err, slog.String("wordlist_id", in.WordlistID.String()))
		return "", fmt.Errorf("create wordlist row: %w", err)
	}

	s.log.DebugContext(ctx, "wordlist row created",
		slog.String("row_id", id.String()),
		slog.String("wordlist_id", in.WordlistID.String()),
	)
	return id, nil
}

// ListRows returns the rows of a wordlist. An unknown wordlist yields an
// empty list.
func (s *Service) ListRows(ctx context.Context, wordlistID domain.ID) ([]domain.WordlistRow, error) {
	rows, err := s.store.GetRowsByWordlist(ctx, wordlistID)
	if err != nil {
		s.logFailure(ctx, "list_rows", err, slog.String("wordlist_id", wordlistID.String()))
		return nil, fmt.Errorf("list wordlist rows: %w", err)
	}
	return rows, nil
}

// DeleteWordlistRow removes a single row.
func (s *Service) DeleteWordlistRow(ctx context.Context, id domain.ID) (bool, error) {
	deleted, err := s.store.DeleteWordlistRow(ctx, id)
	if err != nil {
		s.logFailure(ctx, "delete_wordlist_row", err, slog.String("row_id", id.String()))
		return false, fmt.Errorf("delete wordlist row: %w", err)
	}
	return deleted, nil
}

func trimID(id domain.ID) domain.ID {
	return domain.ID(strings.TrimSpace(id.String()))
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
