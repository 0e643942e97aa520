package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-elra/internal/events"
	"go-elra/internal/notification"
	"go-elra/internal/shared/apperror"
	"go-elra/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// NotificationStore persists a notification under the id chosen by the producer,
// so a redelivered message does not create a second row.
type NotificationStore interface {
	Store(ctx context.Context, id string, req notification.CreateNotificationRequest) error
}

// alertEvery is how many consecutive store failures pass between error logs.
const alertEvery = 3

var (
	retryBackoff    = 500 * time.Millisecond
	maxRetryBackoff = 30 * time.Second
)

// ConsumeLeaveNotifications turns leave notification events into stored
// notifications. Messages that can never be stored are committed and
// skipped. A store failure blocks the consumer and is retried until it
// succeeds or ctx is cancelled. No offset is committed past a message that
// was not stored.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader MessageReader,
	store NotificationStore,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave_notifications")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch leave notification message failed", zap.Error(err))
			continue
		}

		if err := storeWithRetry(ctx, msg, store, log); err != nil {
			log.Info("leave notification consumer stopped with message uncommitted",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit leave notification message failed", zap.Error(err))
		}
	}
}

// storeWithRetry only returns an error once ctx is done.
func storeWithRetry(ctx context.Context, msg kafkago.Message, store NotificationStore, log *zap.Logger) error {
	for attempt := 1; ; attempt++ {
		err := handleLeaveNotification(ctx, msg, store, log)
		if err == nil {
			return nil
		}

		fields := []zap.Field{
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Error(err),
		}
		if attempt%alertEvery == 0 {
			log.Error("store leave notification still failing", fields...)
		} else {
			log.Warn("store leave notification failed, retrying", fields...)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff(attempt)):
		}
	}
}

func backoff(attempt int) time.Duration {
	d := retryBackoff * time.Duration(attempt)
	if d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

// handleLeaveNotification returns an error only for failures worth retrying.
func handleLeaveNotification(ctx context.Context, msg kafkago.Message, store NotificationStore, log *zap.Logger) error {
	var event events.LeaveNotificationRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave notification event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}
	if event.EventType != "" && event.EventType != events.LeaveNotificationRequestedType {
		log.Warn("unexpected event type, skipping", zap.String("event_type", event.EventType))
		return nil
	}

	if event.RequestID != "" {
		ctx = contextutil.WithRequestID(ctx, event.RequestID)
	}
	err := store.Store(ctx, event.NotificationID, notification.CreateNotificationRequest{
		RecipientID: event.RecipientID,
		Type:        event.Type,
		Title:       event.Title,
		Message:     event.Message,
		Data:        event.Data,
	})
	if err == nil {
		log.Debug("leave notification stored",
			zap.String("notification_id", event.NotificationID),
			zap.String("recipient_id", event.RecipientID),
		)
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus < 500 {
		log.Warn("leave notification rejected, skipping",
			zap.String("notification_id", event.NotificationID),
			zap.String("code", appErr.Code),
		)
		return nil
	}
	return err
}
