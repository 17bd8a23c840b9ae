// Package week реализует HTTP-обработчик расписания на неделю.
//
// Начало недели приходит в query-параметре start в формате 2006-01-02;
// при его отсутствии берется понедельник текущей недели. Интервал
// всегда составляет семь дней.
package week

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

// Handler обрабатывает запросы расписания на неделю.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики расписания.
type Service interface {
	Week(ctx context.Context, start, end time.Time) (*models.WeekSchedule, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// weekStart возвращает понедельник недели, содержащей day.
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// ServeHTTP godoc
// @Summary Расписание на неделю
// @Description Возвращает занятия на неделю начиная с понедельника.
// @Tags Schedule
// @Produce  json
// @Security BearerAuth
// @Param start query string false "Начало недели в формате 2006-01-02, по умолчанию понедельник текущей недели"
// @Success 200 {object} map[string]any "Занятия на неделю"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /schedule/week [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.schedule.week"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	start := weekStart(time.Now())
	if raw := r.URL.Query().Get("start"); raw != "" {
		parsed, err := time.Parse(services.DayLayout, raw)
		if err != nil {
			log.Error("failed to parse start", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("start must be in format 2006-01-02"))
			return
		}
		start = parsed
	}
	end := start.AddDate(0, 0, 6)

	week, err := h.service.Week(r.Context(), start, end)
	if err != nil {
		log.Error("failed to read week schedule", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read schedule"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(week))
}
