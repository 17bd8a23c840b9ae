// Package grade реализует HTTP-обработчик проверки сдачи преподавателем.
//
// Handler принимает ID студента и баллы, проверяет их против максимума
// задания и переводит сдачу в статус "graded".
package grade

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/assignment"
)

// Handler управляет HTTP-запросами на проверку сдач.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики заданий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики проверки сдачи.
type Service interface {
	GradeSubmission(ctx context.Context, assignmentID, studentID, points int) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Проверить сдачу
// @Description Выставляет баллы за сдачу и переводит её в статус "graded". Доступно только преподавателям.
// @Tags Assignments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задания"
// @Param request body models.GradeSubmissionRequest true "Студент и баллы"
// @Success 200 {object} response.Response "Сдача проверена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или баллы вне границ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Сдача не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /assignments/{id}/grade [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.grade"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	assignmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.GradeSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.GradeSubmission(r.Context(), assignmentID, req.StudentID, req.Points); err != nil {
		switch {
		case errors.Is(err, services.ErrSubmissionNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("submission not found"))
		case errors.Is(err, services.ErrInvalidPoints):
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("points must be within [0, max_points]"))
		default:
			log.Error("failed to grade submission", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not grade submission"))
		}
		return
	}

	log.Info("submission graded",
		slog.Int("assignment_id", assignmentID),
		slog.Int("student_id", req.StudentID),
		slog.Int("points", req.Points),
	)
	render.JSON(w, r, response.StatusOKWithData(nil))
}
