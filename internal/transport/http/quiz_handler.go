package http

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"society-quiz-service/internal/app"
	"society-quiz-service/internal/domain"
)

type QuestionsResponse struct {
	Questions []domain.PublicQuestion `json:"questions"`
}

type VerifyTeamRequest struct {
	TeamID string `json:"teamId" validate:"required"`
}

type VerifyTeamResponse struct {
	TeamID           string `json:"teamId"`
	TeamName         string `json:"teamName"`
	TeamLead         string `json:"teamLead"`
	AlreadySubmitted bool   `json:"alreadySubmitted"`
	Error            string `json:"error,omitempty"`
}

type SubmitQuizRequest struct {
	TeamID  string `json:"teamId" validate:"required"`
	Answers []*int `json:"answers" validate:"required"`
	// Fractional milliseconds are accepted and truncated.
	ElapsedMs *float64 `json:"elapsedMs" validate:"required,gte=0,lte=9007199254740991"`
}

type LeaderboardQuery struct {
	Limit int `query:"limit" minimum:"0"`
}

type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// QuizHandler serves the quiz REST API.
type QuizHandler struct {
	service  *app.QuizService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewQuizHandler(service *app.QuizService, logger *zap.Logger) *QuizHandler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &QuizHandler{service: service, validate: v, logger: logger}
}

func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.ListQuestions(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QuestionsResponse{Questions: questions})
}

func (h *QuizHandler) VerifyTeam(w http.ResponseWriter, r *http.Request) {
	var req VerifyTeamRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	team, err := h.service.VerifyTeam(r.Context(), req.TeamID)
	if errors.Is(err, domain.ErrAlreadySubmitted) {
		writeJSON(w, http.StatusConflict, VerifyTeamResponse{
			TeamID:           team.TeamID,
			TeamName:         team.TeamName,
			TeamLead:         team.TeamLead,
			AlreadySubmitted: true,
			Error:            err.Error(),
		})
		return
	}
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyTeamResponse{
		TeamID:   team.TeamID,
		TeamName: team.TeamName,
		TeamLead: team.TeamLead,
	})
}

func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuizRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	result, err := h.service.SubmitQuiz(r.Context(), domain.SubmitRequest{
		TeamID:    req.TeamID,
		Answers:   domain.AnswerSet(req.Answers),
		ElapsedMs: int64(*req.ElapsedMs),
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *QuizHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	entries, err := h.service.GetLeaderboard(r.Context(), limit)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LeaderboardResponse{Entries: entries})
}

// fail maps domain errors to status codes; anything unknown is logged and hidden.
func (h *QuizHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "team not found")
	case errors.Is(err, domain.ErrDuplicateSubmission), errors.Is(err, domain.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrStorageUnavailable):
		h.logger.Error("storage unavailable", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "storage unavailable, try again")
	default:
		h.logger.Error("request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
