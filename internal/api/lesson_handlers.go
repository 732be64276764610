package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bengalibuddy/internal/errors"
	"github.com/vytor/bengalibuddy/internal/logger"
)

func (s *Server) handleStartLesson(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	log := logger.FromContext(r.Context()).WithField("topic", topic)
	device := deviceFromContext(r.Context())

	view, err := s.Learner.StartLesson(r.Context(), device, topic, s.RoundSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if view == nil {
		log.Warn("topic produced an empty round")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/lesson", http.StatusSeeOther)
}

func (s *Server) handleLesson(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	device := deviceFromContext(r.Context())

	view, err := s.Learner.CurrentQuestion(r.Context(), device)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if view == nil {
		log.Debug("no lesson in progress, redirecting home")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, "pages/lesson.html", pageData{
		"view":   view,
		"prefs":  view.Preferences,
		"locale": s.SpeechLocale.String(),
		"speak":  s.Speaker.Enabled(),
	})
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	option := strings.TrimSpace(r.FormValue("option"))
	if option == "" {
		handleError(w, r, errors.NewBadRequestError("option is required"))
		return
	}
	log := logger.FromContext(r.Context()).WithField("option", option)
	device := deviceFromContext(r.Context())

	res, err := s.Learner.Answer(r.Context(), device, option)
	if err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("answer submitted: correct=%t", res.Correct)

	if !res.Completed {
		http.Redirect(w, r, "/lesson", http.StatusSeeOther)
		return
	}
	s.render(w, r, "pages/complete.html", pageData{
		"result": res,
	})
}
