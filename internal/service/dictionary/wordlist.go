package dictionary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// CreateWordlist creates a wordlist inside a dictionary.
func (s *Service) CreateWordlist(ctx context.Context, in CreateWordlistInput) (domain.ID, error) {
	in.DictID = trimID(in.DictID)
	if err := in.Validate(); err != nil {
		return "", err
	}

	name := strings.TrimSpace(in.Name)
	id, err := s.store.CreateWordlist(ctx, name, in.DictID)
	if err != nil {
		s.logFailure(ctx, "create_wordlist", err,
			slog.String("name", name),
			slog.String("dict_id", in.DictID.String()),
		)
		return "", fmt.Errorf("create wordlist: %w", err)
	}

	s.log.InfoContext(ctx, "wordlist created",
		slog.String("wordlist_id", id.String()),
		slog.String("dict_id", in.DictID.String()),
	)
	return id, nil
}

// ListWordlists returns the wordlists of a dictionary. An unknown
// dictionary yields an empty list.
func (s *Service) ListWordlists(ctx context.Context, dictID domain.ID) ([]domain.Wordlist, error) {
	lists, err := s.store.GetWordlistsByDict(ctx, dictID)
	if err != nil {
		s.logFailure(ctx, "list_wordlists", err, slog.String("dict_id", dictID.String()))
		return nil, fmt.Errorf("list wordlists: %w", err)
	}
	return lists, nil
}

// DeleteWordlist removes a wordlist and its rows.
func (s *Service) DeleteWordlist(ctx context.Context, id domain.ID) (bool, error) {
	deleted, err := s.store.DeleteWordlist(ctx, id)
	if err != nil {
		s.logFailure(ctx, "delete_wordlist", err, slog.String("wordlist_id", id.String()))
		return false, fmt.Errorf("delete wordlist: %w", err)
	}

	if deleted {
		s.log.InfoContext(ctx, "wordlist deleted", slog.String("wordlist_id", id.String()))
	}
	return deleted, nil
}
