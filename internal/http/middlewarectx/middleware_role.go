package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/gritsuts/edu-platform/internal/http/response"
)

// RequireRole возвращает middleware, пропускающий только пользователей
// с заданной ролью. Остальные получают HTTP 403 Forbidden.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if user.Role != role {
				log.Warn("forbidden",
					slog.String("username", user.Username),
					slog.String("required_role", role),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("forbidden"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
