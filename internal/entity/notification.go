package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The template catalog is seeded at startup and never written by the
// application afterwards.
type NotificationType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

func (t *NotificationType) TableName() string {
	return "notification_types"
}

type NotificationTemplate struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	TypeID          uint             `gorm:"not null" json:"type_id"`
	Type            NotificationType `gorm:"foreignKey:TypeID" json:"type"`
	MessageTemplate string           `gorm:"size:255;not null" json:"message_template"`
	URLTemplate     *string          `gorm:"size:255" json:"url_template,omitempty"`
}

func (t *NotificationTemplate) TableName() string {
	return "notification_templates"
}

// Seeded template ids (one per social event kind).
const (
	TemplateLogin         uint = 1
	TemplateReviewComment uint = 2
	TemplateReviewLike    uint = 3
)

// Notification is one materialized event: a template reference plus the
// payload that fills its placeholders. Immutable after creation.
type Notification struct {
	ID         uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	TemplateID uint                  `gorm:"not null" json:"template_id"`
	Template   *NotificationTemplate `gorm:"foreignKey:TemplateID" json:"-"`
	Payload    datatypes.JSON        `gorm:"type:jsonb" json:"payload"`
	CreatedAt  time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}

// NotificationRecipient is the fan-out row: one per (notification,
// recipient). Checked is the only mutable state in the whole feed and
// only ever transitions false -> true.
type NotificationRecipient struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	NotificationID uuid.UUID     `gorm:"type:uuid;not null;index" json:"notification_id"`
	Notification   *Notification `gorm:"foreignKey:NotificationID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientID    string        `gorm:"size:120;not null;index" json:"recipient_id"`
	Checked        bool          `gorm:"not null;default:false" json:"checked"`
	CreatedAt      time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (r *NotificationRecipient) TableName() string {
	return "notification_recipients"
}

func (r *NotificationRecipient) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
