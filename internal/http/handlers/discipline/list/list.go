// Package list реализует HTTP-обработчик для получения списка дисциплин.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
)

// Handler обрабатывает запросы списка дисциплин.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики каталога дисциплин.
type Service interface {
	List(ctx context.Context) ([]*models.Discipline, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список дисциплин
// @Description Возвращает все дисциплины с именами закрепленных преподавателей.
// @Tags Disciplines
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Список дисциплин"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /disciplines [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.discipline.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	disciplines, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list disciplines", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list disciplines"))
		return
	}

	log.Info("success to list disciplines", slog.Int("count", len(disciplines)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"disciplines": disciplines,
	}))
}
