// Package submit реализует HTTP-обработчик сдачи задания студентом.
//
// Handler принимает текст ответа, сохраняет его и переводит сдачу в статус
// "submitted". Повторная сдача обновляет ту же запись.
package submit

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

	"github.com/gritsuts/edu-platform/internal/http/middlewarectx"
	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/assignment"
)

// Handler управляет HTTP-запросами на сдачу задания.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики заданий
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики сдачи задания.
type Service interface {
	Submit(ctx context.Context, user *models.User, assignmentID int, answerText string) (*models.Submission, error)
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
// @Summary Сдать задание
// @Description Сохраняет текст ответа студента и переводит сдачу в статус "submitted".
// @Tags Assignments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задания"
// @Param request body models.SubmitRequest true "Текст ответа"
// @Success 200 {object} map[string]any "Обновленная сдача"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступно только студентам"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /assignments/{id}/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	assignmentID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	sub, err := h.service.Submit(r.Context(), user, assignmentID, req.AnswerText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentOnly):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		case errors.Is(err, services.ErrAssignmentNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
		default:
			log.Error("failed to submit assignment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not submit assignment"))
		}
		return
	}

	log.Info("assignment submitted",
		slog.Int("assignment_id", assignmentID),
		slog.Int("student_id", sub.StudentID),
	)
	render.JSON(w, r, response.StatusOKWithData(sub))
}
