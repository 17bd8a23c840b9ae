// Package attendancejournal реализует HTTP-обработчик журнала посещаемости.
//
// Handler читает query-параметры group_id, discipline_id и days (список дат
// через запятую) и возвращает таблицу: строки — студенты группы, колонки —
// дни, ячейки без записи содержат "not set".
package attendancejournal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/journal"
)

// Handler обрабатывает запросы журнала посещаемости.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики журнала посещаемости.
type Service interface {
	AttendanceJournal(ctx context.Context, groupID, disciplineID int, days []time.Time) (*models.AttendanceJournal, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал посещаемости
// @Description Возвращает журнал посещаемости группы по дисциплине на заданные дни. Доступно только преподавателям.
// @Tags Journal
// @Produce  json
// @Security BearerAuth
// @Param group_id query int true "ID группы"
// @Param discipline_id query int true "ID дисциплины"
// @Param days query string true "Даты через запятую в формате 2006-01-02"
// @Success 200 {object} map[string]any "Журнал посещаемости"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /journal/attendance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.journal.attendancejournal"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	groupID, err := strconv.Atoi(r.URL.Query().Get("group_id"))
	if err != nil {
		log.Error("failed to decode group_id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("group_id must be an integer"))
		return
	}
	disciplineID, err := strconv.Atoi(r.URL.Query().Get("discipline_id"))
	if err != nil {
		log.Error("failed to decode discipline_id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("discipline_id must be an integer"))
		return
	}
	days, err := services.ParseDays(r.URL.Query().Get("days"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDay) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("days must be dates in format 2006-01-02 separated by commas"))
			return
		}
		log.Error("failed to parse days", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid days"))
		return
	}

	journal, err := h.service.AttendanceJournal(r.Context(), groupID, disciplineID, days)
	if err != nil {
		log.Error("failed to build attendance journal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build attendance journal"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(journal))
}
