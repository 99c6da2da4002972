package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/Restaurant-BookingService/internal/api/handlers"
)

const msgUnauthorized = "требуется аутентификация администратора"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// BasicAuth проверяет учётные данные администратора по HTTP Basic Auth.
// Пароль сверяется с bcrypt-хешем из конфигурации, в открытом виде он
// нигде не хранится.
func BasicAuth(adminUser, adminPasswordHash string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if !ok {
				w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			// Сравнение имени константное, чтобы не подсказывать его перебором
			userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(adminUser)) == 1
			passErr := bcrypt.CompareHashAndPassword([]byte(adminPasswordHash), []byte(password))

			if !userMatch || passErr != nil {
				logger.Warn("BasicAuth: rejected admin request to %s %s", r.Method, r.URL.Path)
				w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
