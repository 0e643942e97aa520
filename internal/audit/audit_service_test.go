package audit_test

import (
	"context"
	"errors"
	"testing"

	"go-elra/internal/audit"
	auditerrors "go-elra/internal/audit/errors"
	"go-elra/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	entries   []audit.Entry
	createErr error
}

func (f *fakeAuditRepository) Create(ctx context.Context, e *audit.Entry) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]audit.Entry, error) {
	var out []audit.Entry
	for _, e := range f.entries {
		if e.ResourceType == resourceType && e.ResourceID == resourceID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestAuditService_LogLeaveAction(t *testing.T) {
	userID := uuid.New()
	requestID := uuid.New()

	t.Run("writes entry with request id", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		svc := audit.NewService(repo)
		ctx := contextutil.WithRequestID(context.Background(), "rid-1")

		err := svc.LogLeaveAction(ctx, userID, audit.ActionLeaveCreated, requestID, map[string]any{"leave_type": "Annual"})
		assert.NoError(t, err)
		assert.Len(t, repo.entries, 1)

		e := repo.entries[0]
		assert.Equal(t, audit.ResourceLeaveRequest, e.ResourceType)
		assert.Equal(t, requestID.String(), e.ResourceID)
		assert.Equal(t, "Annual", e.Details["leave_type"])
		assert.Equal(t, "rid-1", e.Details["request_id"])
	})

	t.Run("action is required", func(t *testing.T) {
		svc := audit.NewService(&fakeAuditRepository{})
		err := svc.LogLeaveAction(context.Background(), userID, "", requestID, nil)
		assert.ErrorIs(t, err, auditerrors.ErrActionRequired)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		svc := audit.NewService(&fakeAuditRepository{createErr: errors.New("mongo down")})
		err := svc.LogLeaveAction(context.Background(), userID, audit.ActionLeaveApproved, requestID, nil)
		assert.EqualError(t, err, "mongo down")
	})
}

func TestAuditService_History(t *testing.T) {
	repo := &fakeAuditRepository{}
	svc := audit.NewService(repo)
	ctx := context.Background()
	userID := uuid.New()
	requestID := uuid.New()

	assert.NoError(t, svc.LogLeaveAction(ctx, userID, audit.ActionLeaveCreated, requestID, nil))
	assert.NoError(t, svc.LogLeaveAction(ctx, userID, audit.ActionLeaveApproved, requestID, map[string]any{"escalated": true}))
	assert.NoError(t, svc.LogLeaveAction(ctx, userID, audit.ActionLeaveCreated, uuid.New(), nil))

	trail, err := svc.History(ctx, audit.ResourceLeaveRequest, requestID.String())
	assert.NoError(t, err)
	assert.Len(t, trail, 2)
	assert.Equal(t, audit.ActionLeaveCreated, trail[0].Action)
	assert.Equal(t, true, trail[1].Details["escalated"])

	_, err = svc.History(ctx, audit.ResourceLeaveRequest, "nope")
	assert.ErrorIs(t, err, auditerrors.ErrInvalidResourceID)
}
