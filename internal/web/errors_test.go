package web_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/warit-s/user-account-backend/internal/user"
	"github.com/warit-s/user-account-backend/internal/web"
)

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: web.NewErrorHandler(zap.NewNop())})
	app.Get("/boom", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandlerMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &user.ValidationError{Field: "email", Message: "email is required"}, http.StatusBadRequest},
		{"conflict", user.ErrDuplicate, http.StatusConflict},
		{"not found", user.ErrNotFound, http.StatusNotFound},
		{"invalid credentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"storage failure", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := appReturning(tt.err)
			res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer res.Body.Close()

			if res.StatusCode != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, res.StatusCode)
			}

			raw, _ := io.ReadAll(res.Body)
			var env struct {
				Status  int             `json:"status"`
				Message string          `json:"message"`
				Data    json.RawMessage `json:"data"`
			}
			if err := json.Unmarshal(raw, &env); err != nil {
				t.Fatalf("response is not an envelope: %s", raw)
			}
			if env.Status != tt.wantStatus || string(env.Data) != "null" {
				t.Fatalf("malformed envelope: %s", raw)
			}
		})
	}
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	app := appReturning(errors.New("pq: SSLv3 alert handshake failure"))
	res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer res.Body.Close()

	raw, _ := io.ReadAll(res.Body)
	body := string(raw)
	if body == "" || body[0] != '{' {
		t.Fatalf("expected JSON envelope, got %s", body)
	}
	if want := "Something went wrong."; !strings.Contains(body, want) {
		t.Fatalf("expected fixed message %q, got %s", want, body)
	}
	if strings.Contains(body, "handshake") {
		t.Fatalf("internal error detail leaked to client: %s", body)
	}
}
