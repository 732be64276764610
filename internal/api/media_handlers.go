package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/speech"
)

// handleImage proxies the item's photo. Every failure is a bare 404 so the
// page's onerror handler hides the element.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := logger.FromContext(r.Context()).WithField("item", id)

	item, err := s.Learner.Item(r.Context(), id)
	if err != nil || !item.HasImage() || s.Images == nil || s.ImageFetcher == nil {
		http.NotFound(w, r)
		return
	}

	img, err := s.ImageFetcher.Fetch(r.Context(), s.Images.URL(item.ImageQuery))
	if err != nil {
		log.Debug("image unavailable: %v", err)
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Body)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Body)
}

// handleSpeak plays the item's Bengali text on the server's speaker. It is
// best effort and always answers 204 for a known item.
func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	item, err := s.Learner.Item(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if s.Speaker.Enabled() {
		s.Speaker.Speak(speech.Request{Text: item.Bengali, Locale: s.SpeechLocale})
	} else {
		logger.FromContext(r.Context()).Debug("server speech disabled, ignoring %s", id)
	}
	w.WriteHeader(http.StatusNoContent)
}
