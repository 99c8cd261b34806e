package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/domain"
)

// mapError converts mongo-driver errors to domain errors.
// Context errors pass through wrapped.
func mapError(err error, entity string, id domain.ID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("%s %s: %w: %w", entity, id, domain.ErrUnavailable, err)
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
