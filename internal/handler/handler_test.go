package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/blog-api/internal/config"
	"github.com/deppfellow/blog-api/internal/errs"
	"github.com/deppfellow/blog-api/internal/model/post"
	"github.com/deppfellow/blog-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{Primary: config.Primary{Env: "test"}},
		Logger: &logger,
	}
}

func TestNewPayloadIsFresh(t *testing.T) {
	prototype := &post.UpdatePostPayload{}
	prototype.Title.Set = true

	fresh := newPayload(prototype)
	if fresh == prototype {
		t.Fatalf("newPayload returned the prototype")
	}
	if fresh.Title.Set {
		t.Fatalf("fresh payload inherited state")
	}
}

func TestHandleDoesNotLeakOptionalState(t *testing.T) {
	h := NewHandler(newTestServer())
	e := echo.New()

	var seen []bool
	handle := Handle(h, func(c echo.Context, req *post.UpdatePostPayload) (map[string]bool, error) {
		seen = append(seen, req.Categories.Set)
		return map[string]bool{"ok": true}, nil
	}, http.StatusOK, &post.UpdatePostPayload{})

	for _, body := range []string{`{"categories":[]}`, `{}`} {
		req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
		rec := httptest.NewRecorder()
		if err := handle(e.NewContext(req, rec)); err != nil {
			t.Fatalf("handle %s: %v", body, err)
		}
	}

	if len(seen) != 2 || !seen[0] || seen[1] {
		t.Fatalf("categories presence per request = %v, want [true false]", seen)
	}
}

func TestHandleResolvedRunsBeforeBinding(t *testing.T) {
	h := NewHandler(newTestServer())
	e := echo.New()
	missing := errs.NewNotFoundError("Post not found", true, nil)

	called := false
	handle := HandleResolved(h, func(echo.Context) error { return missing },
		func(c echo.Context, req *post.CreatePostPayload) (map[string]bool, error) {
			called = true
			return nil, nil
		}, http.StatusOK, &post.CreatePostPayload{})

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"title":`))
	err := handle(e.NewContext(req, httptest.NewRecorder()))

	if err != error(missing) {
		t.Fatalf("err = %v, want the resolve error", err)
	}
	if called {
		t.Fatalf("handler ran after a failed resolve")
	}
}

func TestPathID(t *testing.T) {
	e := echo.New()

	tests := []struct {
		param string
		want  int64
		ok    bool
	}{
		{"12", 12, true},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tt.param)

		id, err := pathID(c, "Post")
		if tt.ok {
			if err != nil || id != tt.want {
				t.Fatalf("pathID(%q) = %d, %v", tt.param, id, err)
			}
			continue
		}

		var httpErr *errs.HTTPError
		if !errors.As(err, &httpErr) || httpErr.Status != http.StatusNotFound || httpErr.Message != "Post not found" {
			t.Fatalf("pathID(%q) err = %v", tt.param, err)
		}
	}
}

func TestCheckHealth(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name   string
		checks []HealthCheck
		status int
	}{
		{
			name: "all healthy",
			checks: []HealthCheck{
				{Name: "database", Required: true, Probe: func(context.Context) error { return nil }},
				{Name: "redis", Probe: func(context.Context) error { return nil }},
			},
			status: http.StatusOK,
		},
		{
			name: "optional check failing",
			checks: []HealthCheck{
				{Name: "database", Required: true, Probe: func(context.Context) error { return nil }},
				{Name: "redis", Probe: func(context.Context) error { return down }},
			},
			status: http.StatusOK,
		},
		{
			name: "required check failing",
			checks: []HealthCheck{
				{Name: "database", Required: true, Probe: func(context.Context) error { return down }},
			},
			status: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer())
			h.checks = tt.checks

			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
			if err := h.CheckHealth(c); err != nil {
				t.Fatalf("check health: %v", err)
			}
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			var body struct {
				Status string                    `json:"status"`
				Checks map[string]map[string]any `json:"checks"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(body.Checks) != len(tt.checks) {
				t.Fatalf("checks = %v", body.Checks)
			}
		})
	}
}
