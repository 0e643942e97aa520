package audit

import (
	"context"
	"time"

	auditerrors "go-elra/internal/audit/errors"
	"go-elra/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	LogLeaveAction(ctx context.Context, userID uuid.UUID, action string, requestID uuid.UUID, details map[string]any) error
	History(ctx context.Context, resourceType, resourceID string) ([]EntryResponse, error)
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }, logger: l}
}

func (s *service) LogLeaveAction(ctx context.Context, userID uuid.UUID, action string, requestID uuid.UUID, details map[string]any) error {
	if action == "" {
		return auditerrors.ErrActionRequired
	}

	rid := contextutil.GetRequestID(ctx)
	if rid != "" {
		if details == nil {
			details = map[string]any{}
		}
		details["request_id"] = rid
	}

	e := &Entry{
		ID:           uuid.New(),
		UserID:       userID,
		Action:       action,
		ResourceType: ResourceLeaveRequest,
		ResourceID:   requestID.String(),
		Details:      details,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("write audit entry failed",
			zap.String("action", action),
			zap.String("resource_id", e.ResourceID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("audit entry written",
		zap.String("action", action),
		zap.String("user_id", userID.String()),
		zap.String("resource_id", e.ResourceID),
	)
	return nil
}

func (s *service) History(ctx context.Context, resourceType, resourceID string) ([]EntryResponse, error) {
	if _, err := uuid.Parse(resourceID); err != nil {
		return nil, auditerrors.ErrInvalidResourceID
	}

	entries, err := s.repo.ListByResource(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}

	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}
