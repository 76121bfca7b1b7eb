package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reelog/reelog-backend/internal/config"
	"github.com/reelog/reelog-backend/internal/entity"
	"github.com/reelog/reelog-backend/internal/identity"
	authDto "github.com/reelog/reelog-backend/internal/modules/auth/dto"
	notifService "github.com/reelog/reelog-backend/internal/modules/notification/service"
	userRepo "github.com/reelog/reelog-backend/internal/modules/user/repository"
	"github.com/reelog/reelog-backend/pkg/apperror"
	"github.com/reelog/reelog-backend/pkg/storage"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/kakao"
)

// providerProfile is the normalized identity a provider hands back after
// the code exchange.
type providerProfile struct {
	UID      string
	Username string
	IconURL  string
}

type profileFetcher func(ctx context.Context, client *http.Client) (*providerProfile, error)

type providerAuth struct {
	config *oauth2.Config
	fetch  profileFetcher
}

type AuthService interface {
	// LoginURL returns the provider's consent page URL for a redirect.
	LoginURL(provider identity.Provider, state string) (string, error)

	// Callback finishes the OAuth dance: exchange the code, resolve the
	// canonical actor id, upsert the user and hand back a signed token.
	// Every sign-in also drops a login notification for the user.
	Callback(ctx context.Context, provider identity.Provider, code string) (*authDto.AuthResponse, error)
}

type authService struct {
	providers map[identity.Provider]providerAuth
	users     userRepo.UserRepository
	icons     storage.IconStorage
	notifSvc  notifService.NotificationService
	secret    string
	tokenTTL  time.Duration
}

func NewAuthService(
	cfg *config.Config,
	users userRepo.UserRepository,
	icons storage.IconStorage,
	notifSvc notifService.NotificationService,
) AuthService {
	providers := map[identity.Provider]providerAuth{
		identity.ProviderGitHub: {
			config: &oauth2.Config{
				ClientID:     cfg.GitHubClientID,
				ClientSecret: cfg.GitHubClientSecret,
				RedirectURL:  cfg.GitHubRedirectURL,
				Scopes:       []string{"read:user"},
				Endpoint:     github.Endpoint,
			},
			fetch: fetchGitHubProfile,
		},
		identity.ProviderKakao: {
			config: &oauth2.Config{
				ClientID:     cfg.KakaoClientID,
				ClientSecret: cfg.KakaoClientSecret,
				RedirectURL:  cfg.KakaoRedirectURL,
				Scopes:       []string{"profile_nickname", "profile_image"},
				Endpoint:     kakao.Endpoint,
			},
			fetch: fetchKakaoProfile,
		},
		identity.ProviderGoogle: {
			config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				RedirectURL:  cfg.GoogleRedirectURL,
				Scopes: []string{
					"https://www.googleapis.com/auth/userinfo.profile",
				},
				Endpoint: google.Endpoint,
			},
			fetch: fetchGoogleProfile,
		},
	}

	return &authService{
		providers: providers,
		users:     users,
		icons:     icons,
		notifSvc:  notifSvc,
		secret:    cfg.JWTSecret,
		tokenTTL:  cfg.JWTTTL,
	}
}

func (s *authService) LoginURL(provider identity.Provider, state string) (string, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider %q: %w", provider, apperror.ErrInvalidInput)
	}
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *authService) Callback(ctx context.Context, provider identity.Provider, code string) (*authDto.AuthResponse, error) {
	p, ok := s.providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", provider, apperror.ErrInvalidInput)
	}

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", apperror.ErrUnauthorized)
	}

	profile, err := p.fetch(ctx, p.config.Client(ctx, token))
	if err != nil {
		return nil, fmt.Errorf("fetch %s profile: %w", provider, err)
	}

	actorID, err := identity.ActorID(provider, profile.UID)
	if err != nil {
		return nil, err
	}

	iconURL := s.persistIcon(ctx, actorID, profile.IconURL)

	user := &entity.User{
		ActorID:        actorID,
		Provider:       string(provider),
		ProviderUserID: profile.UID,
		Username:       profile.Username,
	}
	if iconURL != "" {
		user.IconURL = &iconURL
	}
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	signed, expiresAt, err := s.generateToken(actorID)
	if err != nil {
		return nil, err
	}

	if err := s.notifSvc.Notify(ctx, notifService.LoginPayload{}, []string{actorID}); err != nil {
		log.Printf("Failed to create login notification for %s: %v", actorID, err)
	}

	return &authDto.AuthResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User: authDto.UserInfo{
			ActorID:  actorID,
			Provider: string(provider),
			Username: profile.Username,
			IconURL:  iconURL,
		},
	}, nil
}

// persistIcon copies the provider avatar into our own storage; provider
// URLs can expire. Any failure falls back to the original URL.
func (s *authService) persistIcon(ctx context.Context, actorID, providerURL string) string {
	if providerURL == "" {
		return ""
	}
	if s.icons == nil {
		return providerURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, providerURL, nil)
	if err != nil {
		return providerURL
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("Failed to download provider icon for %s: %v", actorID, err)
		return providerURL
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return providerURL
	}

	uploaded, err := s.icons.UploadIcon(ctx, resp.Body, actorID)
	if err != nil {
		log.Printf("Failed to upload icon for %s: %v", actorID, err)
		return providerURL
	}
	return uploaded
}

func (s *authService) generateToken(actorID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   actorID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

func fetchGitHubProfile(ctx context.Context, client *http.Client) (*providerProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.github.com/user", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ghUser struct {
		ID        int64  `json:"id"`
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ghUser); err != nil {
		return nil, err
	}
	if ghUser.ID == 0 {
		return nil, fmt.Errorf("github returned no user id: %w", apperror.ErrUnauthorized)
	}

	return &providerProfile{
		UID:      strconv.FormatInt(ghUser.ID, 10),
		Username: ghUser.Login,
		IconURL:  ghUser.AvatarURL,
	}, nil
}

func fetchKakaoProfile(ctx context.Context, client *http.Client) (*providerProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://kapi.kakao.com/v2/user/me", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var kakaoUser struct {
		ID         int64 `json:"id"`
		Properties struct {
			Nickname     string `json:"nickname"`
			ProfileImage string `json:"profile_image"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&kakaoUser); err != nil {
		return nil, err
	}
	if kakaoUser.ID == 0 {
		return nil, fmt.Errorf("kakao returned no user id: %w", apperror.ErrUnauthorized)
	}

	return &providerProfile{
		UID:      strconv.FormatInt(kakaoUser.ID, 10),
		Username: kakaoUser.Properties.Nickname,
		IconURL:  kakaoUser.Properties.ProfileImage,
	}, nil
}

func fetchGoogleProfile(ctx context.Context, client *http.Client) (*providerProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var googleUser struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		return nil, err
	}
	if googleUser.ID == "" {
		return nil, fmt.Errorf("google returned no user id: %w", apperror.ErrUnauthorized)
	}

	return &providerProfile{
		UID:      googleUser.ID,
		Username: googleUser.Name,
		IconURL:  googleUser.Picture,
	}, nil
}
