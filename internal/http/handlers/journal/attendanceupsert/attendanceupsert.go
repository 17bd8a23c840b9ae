// Package attendanceupsert реализует HTTP-обработчик выставления посещаемости.
//
// Handler принимает JSON с ключом (студент, дисциплина, день) и статусом,
// валидирует его и вызывает бизнес-логику журнала. Повторный запрос с тем же
// ключом обновляет единственную запись.
package attendanceupsert

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/gritsuts/edu-platform/internal/http/response"
	"github.com/gritsuts/edu-platform/internal/lib/sl"
	"github.com/gritsuts/edu-platform/internal/models"
	services "github.com/gritsuts/edu-platform/internal/services/journal"
)

// Handler управляет HTTP-запросами на выставление посещаемости.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики журнала
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики выставления посещаемости.
type Service interface {
	UpsertAttendance(ctx context.Context, req models.AttendanceUpsertRequest) error
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
// @Summary Выставить посещаемость
// @Description Создает или обновляет запись посещаемости по ключу (студент, дисциплина, день). Доступно только преподавателям.
// @Tags Journal
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.AttendanceUpsertRequest true "Данные посещаемости"
// @Success 200 {object} response.Response "Запись сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /journal/attendance [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.journal.attendanceupsert"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AttendanceUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.UpsertAttendance(r.Context(), req); err != nil {
		if errors.Is(err, services.ErrInvalidDay) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("day must be in format 2006-01-02"))
			return
		}
		log.Error("failed to upsert attendance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save attendance"))
		return
	}

	log.Info("attendance saved",
		slog.Int("student_id", req.StudentID),
		slog.Int("discipline_id", req.DisciplineID),
		slog.String("day", req.Day),
	)
	render.JSON(w, r, response.StatusOKWithData(nil))
}
