package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/metrics"
)

// RouterDeps groups what NewRouter needs. Metrics and Checks may be nil.
type RouterDeps struct {
	Service *app.QuizService
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Checks  map[string]Checker
}

func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	quiz := NewQuizHandler(deps.Service, logger)
	ws := NewWSHandler(deps.Service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	if deps.Metrics != nil {
		r.Use(requestMetrics(deps.Metrics))
	}
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handleHealth(logger, deps.Checks))
	r.Get("/openapi.json", handleOpenAPI())
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/quiz", func(r chi.Router) {
		r.Get("/questions", quiz.ListQuestions)
		r.Post("/verify-team", quiz.VerifyTeam)
		r.Post("/submit", quiz.SubmitQuiz)
		r.Get("/leaderboard", quiz.Leaderboard)
	})

	r.Get("/ws/leaderboard", ws.ServeWS)

	return r
}
