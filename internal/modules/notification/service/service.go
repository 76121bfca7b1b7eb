package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/reelog/reelog-backend/internal/entity"
	notifDto "github.com/reelog/reelog-backend/internal/modules/notification/dto"
	notifRepo "github.com/reelog/reelog-backend/internal/modules/notification/repository"
	"github.com/reelog/reelog-backend/internal/modules/notification/template"
	"github.com/reelog/reelog-backend/pkg/apperror"
)

type NotificationService interface {
	// Notify creates the notification model plus one fan-out row per
	// recipient, atomically, and publishes the rendered row for live
	// delivery.
	Notify(ctx context.Context, payload Payload, recipientIDs []string) error

	List(ctx context.Context, recipientID string, page, quantity int) (*notifDto.ListResponse, error)
	MarkOneRead(ctx context.Context, notificationID uuid.UUID, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	Delete(ctx context.Context, notificationID uuid.UUID, recipientID string) error
}

type notificationService struct {
	repo        notifRepo.NotificationRepository
	redisClient *redis.Client

	mu        sync.RWMutex
	templates map[uint]*entity.NotificationTemplate
}

func NewNotificationService(repo notifRepo.NotificationRepository, redisClient *redis.Client) NotificationService {
	return &notificationService{
		repo:        repo,
		redisClient: redisClient,
		templates:   make(map[uint]*entity.NotificationTemplate),
	}
}

// templateByID serves templates from an in-process cache; the catalog is
// seeded at startup and immutable at runtime.
func (s *notificationService) templateByID(ctx context.Context, id uint) (*entity.NotificationTemplate, error) {
	s.mu.RLock()
	tpl, ok := s.templates[id]
	s.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.templates[id] = tpl
	s.mu.Unlock()
	return tpl, nil
}

func (s *notificationService) Notify(ctx context.Context, payload Payload, recipientIDs []string) error {
	if len(recipientIDs) == 0 {
		return fmt.Errorf("notification requires at least one recipient: %w", apperror.ErrInvalidInput)
	}

	raw, err := encodePayload(payload)
	if err != nil {
		return err
	}

	n := &entity.Notification{
		TemplateID: payload.TemplateID(),
		Payload:    raw,
	}

	if err := s.repo.Create(ctx, n, recipientIDs); err != nil {
		return err
	}

	s.publish(ctx, n, recipientIDs)
	return nil
}

// publish pushes the rendered row to each recipient's channel so open
// websocket sessions see it immediately. Pub/sub is delivery-only; a
// publish failure never affects the stored notification.
func (s *notificationService) publish(ctx context.Context, n *entity.Notification, recipientIDs []string) {
	if s.redisClient == nil {
		return
	}

	tpl, err := s.templateByID(ctx, n.TemplateID)
	if err != nil {
		return
	}

	row := s.renderRow(n, tpl, false)
	msg, err := json.Marshal(row)
	if err != nil {
		return
	}

	for _, recipientID := range recipientIDs {
		channel := fmt.Sprintf("user_notifications:%s", recipientID)
		s.redisClient.Publish(ctx, channel, msg)
	}
}

func (s *notificationService) renderRow(n *entity.Notification, tpl *entity.NotificationTemplate, checked bool) notifDto.Row {
	rendered := template.Render(tpl.MessageTemplate, tpl.URLTemplate, decodeFields(n.Payload))
	return notifDto.Row{
		ID:        n.ID,
		TypeName:  tpl.Type.Name,
		Parts:     rendered.Parts,
		Message:   rendered.Message,
		URL:       rendered.URL,
		Icon:      rendered.Icon,
		Checked:   checked,
		CreatedAt: n.CreatedAt,
	}
}

func (s *notificationService) List(ctx context.Context, recipientID string, page, quantity int) (*notifDto.ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if quantity < 1 {
		quantity = 20
	}

	total, err := s.repo.CountByRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		// "no notifications yet" is a distinct signal, not an empty page
		return nil, apperror.ErrNotFound
	}

	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * quantity
	recipients, err := s.repo.ListByRecipient(ctx, recipientID, quantity, offset)
	if err != nil {
		return nil, err
	}

	rows := make([]notifDto.Row, 0, len(recipients))
	for _, rec := range recipients {
		if rec.Notification == nil || rec.Notification.Template == nil {
			continue
		}
		rows = append(rows, s.renderRow(rec.Notification, rec.Notification.Template, rec.Checked))
	}

	totalPage := int((total + int64(quantity) - 1) / int64(quantity))

	return &notifDto.ListResponse{
		UnreadCount: unread,
		Rows:        rows,
		CurrentPage: page,
		TotalPage:   totalPage,
	}, nil
}

func (s *notificationService) MarkOneRead(ctx context.Context, notificationID uuid.UUID, recipientID string) error {
	affected, err := s.repo.MarkOneRead(ctx, notificationID, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, recipientID string) error {
	affected, err := s.repo.MarkAllRead(ctx, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (s *notificationService) Delete(ctx context.Context, notificationID uuid.UUID, recipientID string) error {
	affected, err := s.repo.DeleteRecipientRow(ctx, notificationID, recipientID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
