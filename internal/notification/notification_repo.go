package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID, id uuid.UUID, at time.Time) (*Notification, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create ignores a duplicate id so redelivered events do not fail.
func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(n).Error
}

func (r *repository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool) ([]Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}

	var items []Notification
	err := q.Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) MarkRead(ctx context.Context, recipientID, id uuid.UUID, at time.Time) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		First(&n, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if n.IsRead {
		return &n, nil
	}

	n.IsRead = true
	n.ReadAt = &at
	if err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_read": true, "read_at": at}).Error; err != nil {
		return nil, err
	}
	return &n, nil
}
