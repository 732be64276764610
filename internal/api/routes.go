package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	if s.Static != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(s.Static)))
	}

	r.Group(func(r chi.Router) {
		r.Use(deviceMiddleware)

		r.Get("/", s.handleHome)
		r.Post("/lessons/{topic}", s.handleStartLesson)
		r.Get("/lesson", s.handleLesson)
		r.Post("/lesson/answer", s.handleAnswer)
		r.Get("/progress", s.handleProgress)
		r.Get("/settings", s.handleSettings)
		r.Post("/settings/{name}/toggle", s.handleTogglePreference)
		r.Get("/images/{id}", s.handleImage)
		r.Post("/speak/{id}", s.handleSpeak)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(s.corsMiddleware())
		r.Use(deviceMiddleware)

		r.Get("/topics", s.handleAPITopics)
		r.Get("/items", s.handleAPIItems)
		r.Get("/rounds", s.handleAPIRound)
		r.Get("/mastery/{id}", s.handleAPIAccuracy)
		r.Post("/mastery/{id}", s.handleAPIRecordAnswer)
		r.Get("/preferences", s.handleAPIPreferences)
		r.Put("/preferences", s.handleAPISavePreferences)
		r.Get("/streak", s.handleAPIStreak)
		r.Post("/streak", s.handleAPIIncrementStreak)
	})
	return r
}

func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	origins := s.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", deviceHeader},
		ExposedHeaders: []string{deviceHeader, requestIDHeader},
		MaxAge:         86400,
	}).Handler
}
