package dto

import "time"

type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        UserInfo  `json:"user"`
}

type UserInfo struct {
	ActorID  string `json:"actorId"`
	Provider string `json:"provider"`
	Username string `json:"username"`
	IconURL  string `json:"iconUrl,omitempty"`
}
