package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/models"
)

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())
	s.render(w, r, "pages/progress.html", pageData{
		"topics": s.Learner.Progress(r.Context(), device),
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "pages/settings.html", pageData{
		"names": []string{models.PrefTranslit, models.PrefPhotos},
	})
}

func (s *Server) handleTogglePreference(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	log := logger.FromContext(r.Context()).WithField("preference", name)
	device := deviceFromContext(r.Context())

	p, err := s.Learner.TogglePreference(r.Context(), device, name)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Info("preference toggled: translit=%t photos=%t", p.Translit, p.Photos)
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
