package repository

import (
	"context"
	"time"

	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/dto"
	"github.com/Muthu-Raja-M/pharmacy-management-system/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	List(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error)

	// ExistsSince reports whether an alert of (alertType, medicineID) was
	// created at or after the cutoff, the recency window check that makes
	// repeated generator runs idempotent inside the window.
	ExistsSince(ctx context.Context, alertType string, medicineID uuid.UUID, cutoff time.Time) (bool, error)

	CountUnread(ctx context.Context) (int64, error)
	CountUnreadBy(ctx context.Context, column, value string) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteRead(ctx context.Context) (int64, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) List(ctx context.Context, filter dto.NotificationFilter) ([]model.Notification, error) {
	var notifs []model.Notification
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if filter.Read != nil {
		q = q.Where("read = ?", *filter.Read)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}
	err := q.Find(&notifs).Error
	return notifs, err
}

func (r *notificationRepo) ExistsSince(ctx context.Context, alertType string, medicineID uuid.UUID, cutoff time.Time) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("type = ? AND medicine_id = ? AND created_at >= ?", alertType, medicineID, cutoff).
		Count(&n).Error
	return n > 0, err
}

func (r *notificationRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).Where("read = false").Count(&n).Error
	return n, err
}

func (r *notificationRepo) CountUnreadBy(ctx context.Context, column, value string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("read = false").
		Where(column+" = ?", value).
		Count(&n).Error
	return n, err
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).
		Updates(map[string]interface{}{"read": true, "read_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("read = false").
		Updates(map[string]interface{}{"read": true, "read_at": now})
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *notificationRepo) DeleteRead(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Notification{}, "read = true")
	return res.RowsAffected, res.Error
}
