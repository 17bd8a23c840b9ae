// Package gradeupsert реализует HTTP-обработчик выставления оценки по теме.
//
// Handler принимает JSON с ключом (студент, дисциплина, тема) и баллами,
// валидирует его и вызывает бизнес-логику журнала. Границы баллов проверяет
// сервис: при нарушении запись не меняется.
package gradeupsert

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

// Handler управляет HTTP-запросами на выставление оценок.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики журнала
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики выставления оценки.
type Service interface {
	UpsertGrade(ctx context.Context, req models.GradeUpsertRequest) error
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
// @Summary Выставить оценку по теме
// @Description Создает или обновляет оценку по ключу (студент, дисциплина, тема). Доступно только преподавателям.
// @Tags Journal
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.GradeUpsertRequest true "Данные оценки"
// @Success 200 {object} response.Response "Оценка сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или баллы вне границ"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /journal/grades [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.journal.gradeupsert"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.GradeUpsertRequest
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

	if err := h.service.UpsertGrade(r.Context(), req); err != nil {
		if errors.Is(err, services.ErrInvalidPoints) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("points must be within [0, max_points] and max_points must be positive"))
			return
		}
		log.Error("failed to upsert grade", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save grade"))
		return
	}

	log.Info("grade saved",
		slog.Int("student_id", req.StudentID),
		slog.Int("topic_id", req.TopicID),
		slog.Int("points", req.Points),
	)
	render.JSON(w, r, response.StatusOKWithData(nil))
}
