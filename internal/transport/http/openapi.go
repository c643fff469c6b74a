package http

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"society-quiz-service/internal/domain"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Society Quiz API"
	r.Spec.Info.Version = "1.0.0"
	r.Spec.Info.WithDescription("Quiz scoring and leaderboard service.")

	getQuestions, _ := r.NewOperationContext(http.MethodGet, "/api/quiz/questions")
	getQuestions.SetSummary("List questions")
	getQuestions.SetDescription("Returns the question bank in order. The answer key is never included.")
	getQuestions.AddRespStructure(QuestionsResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getQuestions)

	verifyTeam, _ := r.NewOperationContext(http.MethodPost, "/api/quiz/verify-team")
	verifyTeam.SetSummary("Verify team")
	verifyTeam.SetDescription("Checks that a team exists and has not submitted yet.")
	verifyTeam.AddReqStructure(VerifyTeamRequest{})
	verifyTeam.AddRespStructure(VerifyTeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	verifyTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	verifyTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	verifyTeam.AddRespStructure(VerifyTeamResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(verifyTeam)

	submit, _ := r.NewOperationContext(http.MethodPost, "/api/quiz/submit")
	submit.SetSummary("Submit answers")
	submit.SetDescription("Scores the answer sheet and stores the team's only submission.")
	submit.AddReqStructure(SubmitQuizRequest{})
	submit.AddRespStructure(domain.SubmitResult{}, openapi.WithHTTPStatus(http.StatusCreated))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(submit)

	leaderboard, _ := r.NewOperationContext(http.MethodGet, "/api/quiz/leaderboard")
	leaderboard.SetSummary("Leaderboard")
	leaderboard.SetDescription("Best submission per team ranked by points, then elapsed time.")
	leaderboard.AddReqStructure(LeaderboardQuery{})
	leaderboard.AddRespStructure(LeaderboardResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	leaderboard.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(leaderboard)

	feed, _ := r.NewOperationContext(http.MethodGet, "/ws/leaderboard")
	feed.SetSummary("Live leaderboard")
	feed.SetDescription("Upgrades to a WebSocket that pushes the leaderboard after every accepted submission.")
	feed.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(feed)

	health, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	health.SetSummary("Health check")
	health.AddRespStructure(map[string]HealthResult{}, openapi.WithHTTPStatus(http.StatusOK))
	health.AddRespStructure(map[string]HealthResult{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(health)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	data, _ := json.MarshalIndent(newOpenAPISpec(), "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
