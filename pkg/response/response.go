package response

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/reelog/reelog-backend/pkg/apperror"
)

// GetActorID retrieves the authenticated actor id from the context.
// The auth middleware stores it under "actor_id"; an empty value means
// the caller is unauthenticated and no mutation may be attempted.
func GetActorID(c *gin.Context) (string, error) {
	actorID := c.GetString("actor_id")
	if actorID == "" {
		return "", apperror.ErrUnauthorized
	}
	return actorID, nil
}

// OptionalActorID returns the actor id or "" for anonymous callers.
func OptionalActorID(c *gin.Context) string {
	return c.GetString("actor_id")
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Internal errors are logged in full but never echoed to the caller.
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
		c.JSON(code, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
