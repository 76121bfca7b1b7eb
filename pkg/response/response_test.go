package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/reelog/reelog-backend/pkg/apperror"
)

func serve(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		ResponseError(c, err)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestResponseErrorHidesInternalDetail(t *testing.T) {
	w := serve(t, fmt.Errorf("create review: pq: connection refused on 10.0.0.7"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "connection refused") || strings.Contains(body, "10.0.0.7") {
		t.Fatalf("internal detail leaked: %s", body)
	}
	if !strings.Contains(body, "internal server error") {
		t.Fatalf("body = %s, want generic message", body)
	}
}

func TestResponseErrorKeepsClientErrorDetail(t *testing.T) {
	w := serve(t, fmt.Errorf("only the author can edit this review: %w", apperror.ErrForbidden))

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if !strings.Contains(w.Body.String(), "only the author can edit this review") {
		t.Fatalf("body = %s, want the client-facing message", w.Body.String())
	}
}
