package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/dropboxauth/pkg/logger"
	"github.com/dmitrymomot/dropboxauth/pkg/oauth"
)

// user is what the demo keeps of a signed-in account.
type user struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func newRouter(h *oauth.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Get("/auth/dropbox", h.Authenticate)
	r.Get("/auth/dropbox/callback", h.Callback)

	return r
}

// verifyProfile accepts any account Dropbox identifies.
func verifyProfile(_ context.Context, _, _ string, p *oauth.Profile) (any, error) {
	if p.ID == "" {
		return nil, nil
	}
	u := user{ID: p.ID, Name: p.DisplayName}
	if len(p.Emails) > 0 {
		u.Email = p.Emails[0].Value
	}
	return u, nil
}

func writeUser(w http.ResponseWriter, _ *http.Request, u any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(u)
}

func requestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := middleware.GetReqID(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
