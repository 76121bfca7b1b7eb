package entity

import (
	"time"
)

// User is keyed by the canonical actor id ("{provider}_{providerUserId}")
// derived by the identity package; there is no secondary integer id.
type User struct {
	ActorID        string    `gorm:"size:120;primaryKey" json:"actor_id"`
	Provider       string    `gorm:"size:20;not null" json:"provider"`
	ProviderUserID string    `gorm:"size:100;not null" json:"-"`
	Username       string    `gorm:"size:100;not null" json:"username"`
	IconURL        *string   `gorm:"type:text" json:"icon_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) TableName() string {
	return "users"
}
