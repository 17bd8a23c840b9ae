// Package eduplatform предоставляет маршруты для основного приложения.
package eduplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	assignmentget "github.com/gritsuts/edu-platform/internal/http/handlers/assignment/get"
	assignmentgrade "github.com/gritsuts/edu-platform/internal/http/handlers/assignment/grade"
	assignmentlist "github.com/gritsuts/edu-platform/internal/http/handlers/assignment/list"
	"github.com/gritsuts/edu-platform/internal/http/handlers/assignment/mysubmission"
	"github.com/gritsuts/edu-platform/internal/http/handlers/assignment/submit"
	"github.com/gritsuts/edu-platform/internal/http/handlers/auth/login"
	"github.com/gritsuts/edu-platform/internal/http/handlers/auth/me"
	disciplinelist "github.com/gritsuts/edu-platform/internal/http/handlers/discipline/list"
	"github.com/gritsuts/edu-platform/internal/http/handlers/discipline/topics"
	"github.com/gritsuts/edu-platform/internal/http/handlers/journal/attendancejournal"
	"github.com/gritsuts/edu-platform/internal/http/handlers/journal/attendanceupsert"
	"github.com/gritsuts/edu-platform/internal/http/handlers/journal/gradesjournal"
	"github.com/gritsuts/edu-platform/internal/http/handlers/journal/gradeupsert"
	scheduleday "github.com/gritsuts/edu-platform/internal/http/handlers/schedule/day"
	scheduleweek "github.com/gritsuts/edu-platform/internal/http/handlers/schedule/week"
	topicget "github.com/gritsuts/edu-platform/internal/http/handlers/topic/get"
	"github.com/gritsuts/edu-platform/internal/http/middlewarectx"
	"github.com/gritsuts/edu-platform/internal/models"
	assignmentservice "github.com/gritsuts/edu-platform/internal/services/assignment"
	authservice "github.com/gritsuts/edu-platform/internal/services/auth"
	disciplineservice "github.com/gritsuts/edu-platform/internal/services/discipline"
	journalservice "github.com/gritsuts/edu-platform/internal/services/journal"
	scheduleservice "github.com/gritsuts/edu-platform/internal/services/schedule"
)

// Services — набор сервисов, которые регистрируют маршруты.
type Services struct {
	Auth       *authservice.AuthService
	Journal    *journalservice.JournalService
	Assignment *assignmentservice.AssignmentService
	Discipline *disciplineservice.DisciplineService
	Schedule   *scheduleservice.ScheduleService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/me", me.New(logger, s.Auth).ServeHTTP)

			r.Get("/disciplines", disciplinelist.New(logger, s.Discipline).ServeHTTP)
			r.Get("/disciplines/{id}/topics", topics.New(logger, s.Discipline).ServeHTTP)
			r.Get("/topics/{id}", topicget.New(logger, s.Discipline).ServeHTTP)

			r.Get("/schedule/day", scheduleday.New(logger, s.Schedule).ServeHTTP)
			r.Get("/schedule/week", scheduleweek.New(logger, s.Schedule).ServeHTTP)

			r.Get("/assignments/by_discipline/{id}", assignmentlist.New(logger, s.Assignment).ServeHTTP)
			r.Get("/assignments/{id}", assignmentget.New(logger, s.Assignment).ServeHTTP)
			r.Get("/assignments/{id}/my", mysubmission.New(logger, s.Assignment).ServeHTTP)
			r.Post("/assignments/{id}/submit", submit.New(logger, s.Assignment).ServeHTTP)

			// Конечные точки, доступные только преподавателям
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleTeacher, logger))

				r.Get("/journal/attendance", attendancejournal.New(logger, s.Journal).ServeHTTP)
				r.Post("/journal/attendance", attendanceupsert.New(logger, s.Journal).ServeHTTP)
				r.Get("/journal/grades", gradesjournal.New(logger, s.Journal).ServeHTTP)
				r.Post("/journal/grades", gradeupsert.New(logger, s.Journal).ServeHTTP)
				r.Post("/assignments/{id}/grade", assignmentgrade.New(logger, s.Assignment).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
