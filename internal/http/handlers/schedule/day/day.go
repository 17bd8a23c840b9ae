// Package day реализует HTTP-обработчик расписания на дату.
//
// Дата приходит в query-параметре day в формате 2006-01-02;
// при его отсутствии используется текущая дата.
package day

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/schedule"
)

// Handler обрабатывает запросы расписания на день.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Day(ctx context.Context, day time.Time) ([]models.ScheduleItemView, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Расписание на день
// @Description Возвращает занятия на дату, отсортированные по времени начала.
// @Tags Schedule
// @Produce  json
// @Security BearerAuth
// @Param day query string false "Дата в формате 2006-01-02, по умолчанию сегодня"
// @Success 200 {object} map[string]any "Занятия на день"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /schedule/day [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.day"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	day := time.Now()
	if raw := r.URL.Query().Get("day"); raw != "" {
		parsed, err := time.Parse(services.DayLayout, raw)
		if err != nil {
			log.Error("failed to parse day", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("day must be in format 2006-01-02"))
			return
		}
		day = parsed
	}

	items, err := h.service.Day(r.Context(), day)
	if err != nil {
		log.Error("failed to read day schedule", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read schedule"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"day":   day.Format(services.DayLayout),
		"items": items,
	}))
}
