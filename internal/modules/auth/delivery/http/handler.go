package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/reelog/reelog-backend/internal/identity"
	authService "github.com/reelog/reelog-backend/internal/modules/auth/service"
	"github.com/reelog/reelog-backend/pkg/response"
)

const stateCookie = "oauth_state"

type AuthHandler struct {
	svc authService.AuthService
}

func NewAuthHandler(svc authService.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles GET /auth/:provider/login and redirects to the
// provider's consent page.
func (h *AuthHandler) Login(c *gin.Context) {
	provider := identity.Provider(c.Param("provider"))

	state := uuid.NewString()
	url, err := h.svc.LoginURL(provider, state)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.SetCookie(stateCookie, state, 300, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// Callback handles GET /auth/:provider/callback.
func (h *AuthHandler) Callback(c *gin.Context) {
	provider := identity.Provider(c.Param("provider"))

	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "state mismatch"})
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}

	resp, err := h.svc.Callback(c.Request.Context(), provider, code)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
