package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	"go.uber.org/zap"
)

// ProfileEvents publishes profile-changed notifications after a committed
// write. Delivery failures are logged; the write itself already succeeded.
type ProfileEvents struct {
	streamRepo repository.StreamRepository
	logger     *zap.Logger
}

func NewProfileEvents(streamRepo repository.StreamRepository, logger *zap.Logger) *ProfileEvents {
	return &ProfileEvents{streamRepo: streamRepo, logger: logger}
}

func (e *ProfileEvents) Publish(ctx context.Context, userID uuid.UUID, reason string) {
	if e == nil || e.streamRepo == nil {
		return
	}

	event := domain.ProfileChangedEvent{
		UserID:     userID,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if err := e.streamRepo.PublishToStream(ctx, domain.StreamProfileChanged, event); err != nil {
		e.logger.Warn("Failed to publish profile changed event",
			zap.String("user_id", userID.String()),
			zap.String("reason", reason),
			zap.Error(err))
	}
}
