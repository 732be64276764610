package api

import (
	"context"
	"html/template"
	"net/http"

	"github.com/vytor/bengalibuddy/internal/images"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/services"
	"github.com/vytor/bengalibuddy/internal/speech"
	"golang.org/x/text/language"
)

// HealthCheck reports whether a backing dependency can serve traffic.
type HealthCheck func(ctx context.Context) error

type Server struct {
	Learner      services.LearnerService
	Templates    *template.Template
	Images       *images.Resolver
	ImageFetcher images.Fetcher
	Speaker      *speech.Speaker
	SpeechLocale language.Tag
	RoundSize    int
	CORSOrigins  []string
	Ready        HealthCheck
	Static       http.FileSystem
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["prefs"]; !ok {
		data["prefs"] = s.Learner.Preferences(r.Context(), deviceFromContext(r.Context()))
	}

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}
