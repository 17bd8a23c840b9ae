// Package gradesjournal реализует HTTP-обработчик журнала оценок.
//
// Handler читает query-параметры group_id и discipline_id и возвращает
// таблицу: колонки — темы дисциплины в порядке изучения, строки — студенты
// группы, ячейки содержат "баллы/макс" либо "not set".
package gradesjournal

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
)

// Handler обрабатывает запросы журнала оценок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики журнала оценок.
type Service interface {
	GradesJournal(ctx context.Context, groupID, disciplineID int) (*models.GradesJournal, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Журнал оценок
// @Description Возвращает журнал оценок группы по дисциплине. Доступно только преподавателям.
// @Tags Journal
// @Produce  json
// @Security BearerAuth
// @Param group_id query int true "ID группы"
// @Param discipline_id query int true "ID дисциплины"
// @Success 200 {object} map[string]any "Журнал оценок"
// @Failure 400 {object} response.ErrorResponse "Некорректные параметры"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /journal/grades [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.journal.gradesjournal"

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

	journal, err := h.service.GradesJournal(r.Context(), groupID, disciplineID)
	if err != nil {
		log.Error("failed to build grades journal", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build grades journal"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(journal))
}
