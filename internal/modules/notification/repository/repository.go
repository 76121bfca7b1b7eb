package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/entity"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	// Create inserts the notification model and one fan-out row per
	// recipient inside a single transaction. Partial fan-out never
	// persists: a zero-rows insert at either step aborts the whole
	// creation.
	Create(ctx context.Context, n *entity.Notification, recipientIDs []string) error

	GetTemplate(ctx context.Context, templateID uint) (*entity.NotificationTemplate, error)

	ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]entity.NotificationRecipient, error)
	CountByRecipient(ctx context.Context, recipientID string) (int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)

	// The mark/delete operations return the number of rows affected;
	// zero means "nothing owned by this recipient matched".
	MarkOneRead(ctx context.Context, notificationID uuid.UUID, recipientID string) (int64, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	DeleteRecipientRow(ctx context.Context, notificationID uuid.UUID, recipientID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification, recipientIDs []string) error {
	if len(recipientIDs) == 0 {
		return fmt.Errorf("notification requires at least one recipient")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Create(n)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("notification model insert affected no rows")
		}

		rows := make([]entity.NotificationRecipient, 0, len(recipientIDs))
		for _, recipientID := range recipientIDs {
			rows = append(rows, entity.NotificationRecipient{
				NotificationID: n.ID,
				RecipientID:    recipientID,
			})
		}

		res = tx.Create(&rows)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(rows)) {
			return fmt.Errorf("fan-out insert affected %d of %d rows", res.RowsAffected, len(rows))
		}

		return nil
	})
}

func (r *notificationRepository) GetTemplate(ctx context.Context, templateID uint) (*entity.NotificationTemplate, error) {
	var tpl entity.NotificationTemplate
	err := r.db.WithContext(ctx).
		Preload("Type").
		First(&tpl, "id = ?", templateID).Error
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID string, limit, offset int) ([]entity.NotificationRecipient, error) {
	var rows []entity.NotificationRecipient
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Preload("Notification.Template.Type").
		Find(&rows).Error
	return rows, err
}

func (r *notificationRepository) CountByRecipient(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.NotificationRecipient{}).
		Where("recipient_id = ?", recipientID).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.NotificationRecipient{}).
		Where("recipient_id = ? AND checked = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkOneRead(ctx context.Context, notificationID uuid.UUID, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.NotificationRecipient{}).
		Where("notification_id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("checked", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.NotificationRecipient{}).
		Where("recipient_id = ? AND checked = ?", recipientID, false).
		Update("checked", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepository) DeleteRecipientRow(ctx context.Context, notificationID uuid.UUID, recipientID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("notification_id = ? AND recipient_id = ?", notificationID, recipientID).
		Delete(&entity.NotificationRecipient{})
	return res.RowsAffected, res.Error
}
