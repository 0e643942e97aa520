package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-elra/internal/events"
	"go-elra/internal/messaging/kafka"
	notificationerrors "go-elra/internal/notification/errors"
	"go-elra/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	// Create delivers a notification: queued on the outbox when one is configured, stored directly otherwise.
	Create(ctx context.Context, req CreateNotificationRequest) error
	// Store writes the notification row under a caller-chosen id.
	Store(ctx context.Context, id string, req CreateNotificationRequest) error
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, recipientID, id string) (NotificationResponse, error)
}

type service struct {
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(repo, nil, logger...)
}

func NewServiceWithOutbox(repo Repository, outboxRepo kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{
		repo:   repo,
		outbox: outboxRepo,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateNotificationRequest) error {
	if _, err := uuid.Parse(req.RecipientID); err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}

	id := uuid.NewString()
	if s.outbox == nil {
		return s.Store(ctx, id, req)
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveNotificationRequestedEvent{
		EventType:      events.LeaveNotificationRequestedType,
		RequestID:      rid,
		NotificationID: id,
		RecipientID:    req.RecipientID,
		Type:           req.Type,
		Title:          req.Title,
		Message:        req.Message,
		Data:           req.Data,
		OccurredAt:     s.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal notification event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "notification",
		AggregateID:   req.RecipientID,
		EventType:     event.EventType,
		Topic:         events.LeaveNotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}
	if err := kafka.ValidateOutboxEvent(outboxEvent); err != nil {
		return err
	}
	if err := s.outbox.Create(ctx, outboxEvent); err != nil {
		s.logger.Error("notification outbox persist failed",
			zap.String("request_id", rid),
			zap.String("recipient_id", req.RecipientID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification queued",
		zap.String("notification_id", id),
		zap.String("recipient_id", req.RecipientID),
		zap.String("type", req.Type),
	)
	return nil
}

func (s *service) Store(ctx context.Context, id string, req CreateNotificationRequest) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		return notificationerrors.ErrInvalidRecipientID
	}

	n := &Notification{
		ID:          notificationID,
		RecipientID: recipientID,
		Type:        req.Type,
		Title:       req.Title,
		Message:     req.Message,
		Data:        req.Data,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Error("store notification failed",
			zap.String("notification_id", id),
			zap.String("recipient_id", req.RecipientID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Debug("notification stored",
		zap.String("notification_id", id),
		zap.String("recipient_id", req.RecipientID),
		zap.String("type", req.Type),
	)
	return nil
}

func (s *service) List(ctx context.Context, recipientID string, unreadOnly bool) ([]NotificationResponse, error) {
	rid, err := uuid.Parse(recipientID)
	if err != nil {
		return nil, notificationerrors.ErrInvalidRecipientID
	}

	items, err := s.repo.ListByRecipient(ctx, rid, unreadOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) MarkRead(ctx context.Context, recipientID, id string) (NotificationResponse, error) {
	rid, err := uuid.Parse(recipientID)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidRecipientID
	}
	nid, err := uuid.Parse(id)
	if err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.MarkRead(ctx, rid, nid, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}
	return mapToResponse(*n), nil
}
