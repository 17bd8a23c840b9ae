// Package get реализует HTTP-обработчик для получения темы с содержимым.
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
	services "github.com/gritsuts/edu-platform/internal/services/discipline"
)

// Handler обрабатывает запросы страницы темы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения темы.
type Service interface {
	Topic(ctx context.Context, id int) (*models.TopicDetail, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Тема с содержимым
// @Description Возвращает тему дисциплины вместе с учебным материалом.
// @Tags Disciplines
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID темы"
// @Success 200 {object} map[string]any "Тема"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Тема не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /topics/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.topic.get"

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

	topic, err := h.service.Topic(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTopicNotFound) {
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("topic not found"))
			return
		}
		log.Error("failed to read topic", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read topic"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(topic))
}
