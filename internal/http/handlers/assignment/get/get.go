// Package get реализует HTTP-обработчик для получения задания по ID.
package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/assignment"
)

// Handler обрабатывает запросы задания по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения задания.
type Service interface {
	Get(ctx context.Context, id int) (*models.Assignment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Задание по ID
// @Description Возвращает задание с текстом и максимумом баллов.
// @Tags Assignments
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID задания"
// @Success 200 {object} map[string]any "Задание"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Задание не найдено"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /assignments/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.get"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	assignment, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAssignmentNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("assignment not found"))
			return
		}
		log.Error("failed to read assignment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read assignment"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(assignment))
}
