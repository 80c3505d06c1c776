package middleware

import (
	"net/http"
	"runtime/debug"

	"vet-clinic/internal/platform/httpjson"
	"vet-clinic/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover atrapa panics del handler, los registra con el request id y responde 500.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil || rec == http.ErrAbortHandler {
					if rec != nil {
						panic(rec)
					}
					return
				}
				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"panic":      rec,
					"stack":      string(debug.Stack()),
				})
				httpjson.WriteJSON(w, http.StatusInternalServerError, httpjson.ErrorResponse{Error: "internal error"})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
