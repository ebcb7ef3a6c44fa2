package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestReadiness(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name       string
		checks     map[string]Check
		wantStatus int
		wantBody   string
	}{
		{name: "all healthy", checks: map[string]Check{"mongodb": ok, "redis": ok}, wantStatus: http.StatusOK, wantBody: "ok"},
		{name: "one down", checks: map[string]Check{"mongodb": ok, "redis": down}, wantStatus: http.StatusServiceUnavailable, wantBody: "degraded"},
		{name: "no checks", checks: nil, wantStatus: http.StatusOK, wantBody: "ok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := NewReadinessHandler(tc.checks).Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tc.wantBody {
				t.Fatalf("expected status %q, got %q", tc.wantBody, resp.Status)
			}
			if len(resp.Dependencies) != len(tc.checks) {
				t.Fatalf("expected %d dependencies, got %d", len(tc.checks), len(resp.Dependencies))
			}
			if dep, found := resp.Dependencies["redis"]; found && dep.Status == "unhealthy" && dep.Error == "" {
				t.Fatalf("unhealthy dependency must carry its error")
			}
		})
	}
}
