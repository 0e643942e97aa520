package leave

import (
	"context"

	"go-elra/internal/notification"
	"go-elra/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Effect is a side effect produced by a workflow transition. Effects run after
// the transition is committed and never undo it.
type Effect interface {
	effectKind() string
}

type NotifyEffect struct {
	RecipientID uuid.UUID
	Type        string
	Title       string
	Message     string
	Data        map[string]any
}

func (NotifyEffect) effectKind() string { return "notify" }

type AuditEffect struct {
	UserID    uuid.UUID
	Action    string
	RequestID uuid.UUID
	Details   map[string]any
}

func (AuditEffect) effectKind() string { return "audit" }

type Notifier interface {
	Create(ctx context.Context, req notification.CreateNotificationRequest) error
}

type Auditor interface {
	LogLeaveAction(ctx context.Context, userID uuid.UUID, action string, requestID uuid.UUID, details map[string]any) error
}

// Dispatcher executes effects in order. Failures are logged and swallowed.
type Dispatcher struct {
	notifier Notifier
	auditor  Auditor
	logger   *zap.Logger
}

func NewDispatcher(notifier Notifier, auditor Auditor, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("leave.effects")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.effects")
	}
	return &Dispatcher{notifier: notifier, auditor: auditor, logger: l}
}

func (d *Dispatcher) Dispatch(ctx context.Context, effects []Effect) {
	log := contextutil.ScopedLogger(ctx, d.logger)
	for _, effect := range effects {
		switch e := effect.(type) {
		case NotifyEffect:
			if d.notifier == nil {
				continue
			}
			err := d.notifier.Create(ctx, notification.CreateNotificationRequest{
				RecipientID: e.RecipientID.String(),
				Type:        e.Type,
				Title:       e.Title,
				Message:     e.Message,
				Data:        e.Data,
			})
			if err != nil {
				log.Error("leave notification failed",
					zap.String("recipient_id", e.RecipientID.String()),
					zap.String("type", e.Type),
					zap.Error(err),
				)
			}
		case AuditEffect:
			if d.auditor == nil {
				continue
			}
			if err := d.auditor.LogLeaveAction(ctx, e.UserID, e.Action, e.RequestID, e.Details); err != nil {
				log.Error("leave audit failed",
					zap.String("action", e.Action),
					zap.String("leave_id", e.RequestID.String()),
					zap.Error(err),
				)
			}
		}
	}
}
