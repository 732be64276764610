package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/bengalibuddy/internal/logger"
	"github.com/vytor/bengalibuddy/internal/models"
)

type recordAnswerRequest struct {
	Correct *bool `json:"correct" validate:"required"`
}

type preferencesRequest struct {
	Translit *bool `json:"translit" validate:"required"`
	Photos   *bool `json:"photos" validate:"required"`
}

type accuracyResponse struct {
	ItemID   string `json:"item_id"`
	Accuracy *int   `json:"accuracy"`
	HasData  bool   `json:"has_data"`
}

type streakResponse struct {
	Streak int `json:"streak"`
}

func (s *Server) handleAPITopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Learner.Topics(r.Context()))
}

func (s *Server) handleAPIItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.Learner.Items(r.Context(), r.URL.Query().Get("topic"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleAPIRound(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size")
	if err != nil {
		handleError(w, r, err)
		return
	}
	round, err := s.Learner.NewRound(r.Context(), r.URL.Query().Get("topic"), size)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, round)
}

func (s *Server) accuracy(r *http.Request, id string) accuracyResponse {
	pct, ok := s.Learner.Accuracy(r.Context(), deviceFromContext(r.Context()), id)
	resp := accuracyResponse{ItemID: id, HasData: ok}
	if ok {
		resp.Accuracy = &pct
	}
	return resp
}

func (s *Server) handleAPIAccuracy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.accuracy(r, chi.URLParam(r, "id")))
}

func (s *Server) handleAPIRecordAnswer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req recordAnswerRequest
	if err := decodeRequest(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.Learner.RecordAnswer(r.Context(), deviceFromContext(r.Context()), id, *req.Correct); err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("recorded answer for %s: correct=%t", id, *req.Correct)
	writeJSON(w, http.StatusOK, s.accuracy(r, id))
}

func (s *Server) handleAPIPreferences(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Learner.Preferences(r.Context(), deviceFromContext(r.Context())))
}

func (s *Server) handleAPISavePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesRequest
	if err := decodeRequest(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	p := models.Preferences{Translit: *req.Translit, Photos: *req.Photos}
	if err := s.Learner.SavePreferences(r.Context(), deviceFromContext(r.Context()), p); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleAPIStreak(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, streakResponse{Streak: s.Learner.Streak(r.Context(), deviceFromContext(r.Context()))})
}

func (s *Server) handleAPIIncrementStreak(w http.ResponseWriter, r *http.Request) {
	n, err := s.Learner.IncrementStreak(r.Context(), deviceFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, streakResponse{Streak: n})
}
