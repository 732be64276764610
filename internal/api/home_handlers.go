package api

import (
	"net/http"

	"github.com/vytor/bengalibuddy/internal/logger"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")
	device := deviceFromContext(r.Context())

	s.render(w, r, "pages/home.html", pageData{
		"topics": s.Learner.Topics(r.Context()),
		"streak": s.Learner.Streak(r.Context(), device),
	})
}
