// Package mysubmission реализует HTTP-обработчик сдачи текущего студента.
//
// Первое чтение материализует сдачу: отсутствующая запись создается
// со статусом "not submitted" и нулём баллов.
package mysubmission

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/middlewarectx"
	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/assignment"
)

// Handler обрабатывает запросы сдачи текущего студента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения сдачи.
type Service interface {
	MySubmission(ctx context.Context, user *models.User, assignmentID int) (*models.Submission, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сдача текущего студента
// @Description Возвращает сдачу текущего студента по заданию, создавая пустую при отсутствии.
// @Tags Assignments
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задания"
// @Success 200 {object} map[string]any "Сдача"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Доступно только студентам"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /assignments/{id}/my [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.mysubmission"

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

	sub, err := h.service.MySubmission(r.Context(), user, assignmentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStudentOnly):
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("forbidden"))
		case errors.Is(err, services.ErrAssignmentNotFound):
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
		default:
			log.Error("failed to read submission", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not read submission"))
		}
		return
	}

	render.JSON(w, r, response.StatusOKWithData(sub))
}
