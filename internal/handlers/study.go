package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"eduorb-backend/internal/models"
	"eduorb-backend/internal/study"

	"github.com/rs/zerolog/log"
)

// StudyService is the set of AI study tools the feature routes expose.
type StudyService interface {
	GenerateExam(ctx context.Context, req study.ExamRequest) (*models.Exam, error)
	GenerateMindMap(ctx context.Context, req study.MindMapRequest) (*models.MindMap, error)
	AdviseCareer(ctx context.Context, req study.CareerRequest) (*models.CareerAdvice, error)
	Simplify(ctx context.Context, req study.SimplifyRequest) (string, error)
	InterviewQuestions(ctx context.Context, req study.QuestionsRequest) ([]string, error)
	ScoreAnswer(ctx context.Context, req study.ScoreRequest) (*models.InterviewEvaluation, error)
	StreamChat(ctx context.Context, tutor study.Tutor, req study.ChatRequest, onDelta func(string) error) error
}

type StudyHandler struct {
	svc StudyService
}

func NewStudyHandler(svc StudyService) *StudyHandler {
	return &StudyHandler{svc: svc}
}

// --- POST /api/exam-generator ---

func (h *StudyHandler) GenerateExam(w http.ResponseWriter, r *http.Request) {
	var req study.ExamRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	exam, err := h.svc.GenerateExam(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate exam")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

// --- POST /api/exam-generator/export ---

func (h *StudyHandler) ExportExam(w http.ResponseWriter, r *http.Request) {
	var exam models.Exam
	if err := decodeJSON(w, r, &exam); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(exam.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "Exam has no questions")
		return
	}
	if err := study.CheckExam(&exam, len(exam.Questions)); err != nil {
		writeError(w, http.StatusBadRequest, "Exam questions need 4 options and a correct answer between 0 and 3")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", study.ExamFilename(&exam)))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, study.ExamText(&exam))
}

// --- POST /api/mind-map ---

func (h *StudyHandler) GenerateMindMap(w http.ResponseWriter, r *http.Request) {
	var req study.MindMapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mindMap, err := h.svc.GenerateMindMap(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate mind map")
		return
	}
	writeJSON(w, http.StatusOK, mindMap)
}

// --- POST /api/career-advisor ---

func (h *StudyHandler) AdviseCareer(w http.ResponseWriter, r *http.Request) {
	var req study.CareerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	advice, err := h.svc.AdviseCareer(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate career advice")
		return
	}
	writeJSON(w, http.StatusOK, advice)
}

// --- POST /api/reading-simplifier ---

func (h *StudyHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req study.SimplifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text, err := h.svc.Simplify(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to simplify text")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"simplifiedText": text})
}

// --- POST /api/mock-interview/questions ---

func (h *StudyHandler) InterviewQuestions(w http.ResponseWriter, r *http.Request) {
	var req study.QuestionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	questions, err := h.svc.InterviewQuestions(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to generate questions")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"questions": questions})
}

// --- POST /api/mock-interview/score ---

func (h *StudyHandler) ScoreAnswer(w http.ResponseWriter, r *http.Request) {
	var req study.ScoreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	evaluation, err := h.svc.ScoreAnswer(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, "Failed to evaluate answer")
		return
	}
	writeJSON(w, http.StatusOK, evaluation)
}

// --- POST /api/doubt-solver, POST /api/mock-interview ---

// Chat streams a tutor's reply as plain text, flushing every token.
func (h *StudyHandler) Chat(tutor study.Tutor) http.HandlerFunc {
	failMsg := "Failed to process chat"
	if tutor == study.MockInterview {
		failMsg = "Failed to process interview"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req study.ChatRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := req.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		logger := log.Ctx(r.Context()).With().Str("tutor", string(tutor)).Logger()
		rc := http.NewResponseController(w)
		started := false
		begin := func() {
			if started {
				return
			}
			started = true
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			w.Header().Set("X-Accel-Buffering", "no")
			w.WriteHeader(http.StatusOK)
		}

		err := h.svc.StreamChat(r.Context(), tutor, req, func(delta string) error {
			begin()
			if _, err := io.WriteString(w, delta); err != nil {
				return err
			}
			if err := rc.Flush(); err != nil && !errors.Is(err, http.ErrNotSupported) {
				return err
			}
			return nil
		})

		switch {
		case err == nil:
			begin()
		case errors.Is(err, study.ErrMaxDuration):
			logger.Info().Msg("chat stream cut at max duration")
			begin()
		case r.Context().Err() != nil:
			logger.Debug().Err(err).Msg("client left chat stream")
		case !started:
			h.fail(w, r, err, failMsg)
		default:
			logger.Error().Err(err).Msg("chat stream broke off")
		}
	}
}

// fail writes a 400 for bad input and a generic 500 for everything else.
func (h *StudyHandler) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if study.IsValidation(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg(strings.ToLower(msg))
	writeError(w, http.StatusInternalServerError, msg)
}
