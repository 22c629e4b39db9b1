package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/saeid-a/JudoNutritionBack/internal/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandlerHidesInternalErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.New(core))})
	app.Get("/boom", func(c *fiber.Ctx) error {
		c.Locals("user_id", "42")
		return errors.New("pq: connection reset")
	})

	resp, body := doJSON(t, app, http.MethodGet, "/boom", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
	if body["error"] != "Internal server error" {
		t.Fatalf("expected generic message, got %v", body)
	}

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["user_id"] != "42" || fields["path"] != "/boom" {
		t.Fatalf("unexpected log fields: %v", fields)
	}
}

func TestErrorHandlerKeepsFiberErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(nil)})

	resp, body := doJSON(t, app, http.MethodGet, "/missing", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body["error"] == "Internal server error" {
		t.Fatalf("fiber errors should keep their message, got %v", body)
	}
}

func TestWriteServiceErrorPassesUnknownErrors(t *testing.T) {
	app := fiber.New()
	sentinel := errors.New("unexpected")
	var returned error
	app.Get("/", func(c *fiber.Ctx) error {
		returned = writeServiceError(c, sentinel)
		return nil
	})

	if _, err := app.Test(httptestRequest(http.MethodGet, "/", nil)); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if !errors.Is(returned, sentinel) {
		t.Fatalf("expected unknown error returned, got %v", returned)
	}
}

func TestWriteServiceErrorConflictIsNeutral(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeServiceError(c, services.ErrConflict)
	})

	resp, body := doJSON(t, app, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
	if body["error"] != "Resource already exists" {
		t.Fatalf("unexpected conflict message %v", body)
	}
}
