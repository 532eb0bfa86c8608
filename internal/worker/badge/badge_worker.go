package badge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spot-discovery/internal/domain"
	"github.com/spot-discovery/internal/domain/repository"
	apperrors "github.com/spot-discovery/internal/pkg/errors"
	"github.com/spot-discovery/internal/worker"
)

const (
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
	// сообщения без ACK дольше claimIdle забираются повторно
	claimIdle = 30 * time.Second
)

// ProfileScorer пересчитывает trust score и бейджи пользователя
type ProfileScorer interface {
	CalculateTrustScore(ctx context.Context, userID uuid.UUID) (int, error)
	EvaluateBadges(ctx context.Context, userID uuid.UUID) ([]*domain.Badge, error)
}

// BadgeWorker читает события изменения профиля и выдает заслуженные бейджи
type BadgeWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	scorer       ProfileScorer
	consumerName string
	batchSize    int
}

// NewBadgeWorker создает новый BadgeWorker
func NewBadgeWorker(
	streamRepo repository.StreamRepository,
	scorer ProfileScorer,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *BadgeWorker {
	hostname, _ := os.Hostname()

	return &BadgeWorker{
		BaseWorker:   worker.NewBaseWorker("badge-evaluation", consumerGroup, logger),
		streamRepo:   streamRepo,
		scorer:       scorer,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *BadgeWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BadgeWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamProfileChanged, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}

	for {
		if w.IsStopped() || ctx.Err() != nil {
			logger.Info("BadgeWorker stopped")
			return nil
		}

		processed, err := w.processBatch(ctx)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
		case processed == 0:
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// processBatch возвращает число прочитанных сообщений. Зависшие сообщения
// обрабатываются раньше новых.
func (w *BadgeWorker) processBatch(ctx context.Context) (int, error) {
	messages, err := w.streamRepo.ClaimStale(ctx, domain.StreamProfileChanged, w.ConsumerGroup(), w.consumerName, claimIdle, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("claim stale: %w", err)
	}
	if len(messages) == 0 {
		messages, err = w.streamRepo.ConsumeBatch(ctx, domain.StreamProfileChanged, w.ConsumerGroup(), w.consumerName, w.batchSize)
		if err != nil {
			return 0, fmt.Errorf("consume batch: %w", err)
		}
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger := w.Logger()

	// Несколько событий одного пользователя в батче дают один пересчёт
	byUser := make(map[uuid.UUID][]string)
	order := make([]uuid.UUID, 0, len(messages))

	for _, msg := range messages {
		var event domain.ProfileChangedEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.UserID == uuid.Nil {
			// Битое сообщение не станет валидным при повторе
			logger.Warn("Dropping malformed event", zap.String("message_id", msg.ID), zap.Error(err))
			w.ack(ctx, msg.ID)
			continue
		}

		if _, seen := byUser[event.UserID]; !seen {
			order = append(order, event.UserID)
		}
		byUser[event.UserID] = append(byUser[event.UserID], msg.ID)
	}

	for _, userID := range order {
		if err := w.evaluate(ctx, userID); err != nil {
			if apperrors.KindOf(err) != apperrors.CodeNotFound {
				logger.Error("Failed to evaluate profile, leaving events pending",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				continue
			}
			logger.Debug("Profile is gone, dropping events", zap.String("user_id", userID.String()))
		}

		for _, id := range byUser[userID] {
			w.ack(ctx, id)
		}
	}

	return len(messages), nil
}

func (w *BadgeWorker) evaluate(ctx context.Context, userID uuid.UUID) error {
	score, err := w.scorer.CalculateTrustScore(ctx, userID)
	if err != nil {
		return fmt.Errorf("trust score: %w", err)
	}

	awarded, err := w.scorer.EvaluateBadges(ctx, userID)
	if err != nil {
		return fmt.Errorf("evaluate badges: %w", err)
	}

	if len(awarded) > 0 {
		w.Logger().Info("Badges awarded",
			zap.String("user_id", userID.String()),
			zap.Int("trust_score", score),
			zap.Int("count", len(awarded)))
	}
	return nil
}

func (w *BadgeWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamProfileChanged, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Warn("Failed to ACK message", zap.String("message_id", messageID), zap.Error(err))
	}
}
