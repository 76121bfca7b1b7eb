package identity

import (
	"fmt"

	"github.com/reelog/reelog-backend/pkg/apperror"
)

// Provider is the closed set of sign-in providers. Anything outside this
// set never resolves to an actor id.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderKakao  Provider = "kakao"
	ProviderGoogle Provider = "google"
)

func (p Provider) Valid() bool {
	switch p {
	case ProviderGitHub, ProviderKakao, ProviderGoogle:
		return true
	}
	return false
}

// ActorID derives the canonical actor identifier for a provider account:
// "{provider}_{providerUserID}". Callers must treat an error as
// "unauthenticated" and reject the request; there is no empty-identity
// fallback.
func ActorID(provider Provider, providerUserID string) (string, error) {
	if !provider.Valid() {
		return "", fmt.Errorf("unknown provider %q: %w", provider, apperror.ErrUnauthorized)
	}
	if providerUserID == "" {
		return "", fmt.Errorf("empty provider user id: %w", apperror.ErrUnauthorized)
	}
	return fmt.Sprintf("%s_%s", provider, providerUserID), nil
}
