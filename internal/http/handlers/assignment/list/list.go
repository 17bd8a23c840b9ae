// Package list реализует HTTP-обработчик списка заданий по дисциплине.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
)

// Handler обрабатывает запросы списка заданий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка заданий.
type Service interface {
	ListByDiscipline(ctx context.Context, disciplineID int) ([]*models.Assignment, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Задания дисциплины
// @Description Возвращает задания дисциплины.
// @Tags Assignments
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID дисциплины"
// @Success 200 {object} map[string]any "Список заданий"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /assignments/by_discipline/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assignment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	disciplineID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	assignments, err := h.service.ListByDiscipline(r.Context(), disciplineID)
	if err != nil {
		log.Error("failed to list assignments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list assignments"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"assignments": assignments,
	}))
}
