// Package httpjson reúne los helpers de codificación JSON que comparten los handlers
// de todos los módulos.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vet-clinic/internal/domain/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ErrorResponse es el cuerpo de toda respuesta de error.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf traduce un error de dominio a código HTTP.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrBusinessRule):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError escribe err con el código que le corresponde.
// Los errores ajenos al dominio no exponen su mensaje.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// Decode lee el body en dst y aplica las etiquetas `validate`.
// Cualquier fallo se devuelve como apperr.ErrValidation.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Validation("invalid json: %v", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return apperr.Validation("%s", describe(verrs))
		}
		return apperr.Validation("%v", err)
	}
	return nil
}

func describe(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return "campos inválidos: " + strings.Join(parts, ", ")
}

// ParseDate acepta YYYY-MM-DD en loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, apperr.Validation("fecha inválida %q, formato YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseTime acepta RFC3339.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.Validation("fecha/hora inválida %q, formato RFC3339", s)
	}
	return t, nil
}

// QueryBool: "true"/"1" → true; cualquier otro valor → false.
func QueryBool(r *http.Request, key string) bool {
	v := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key)))
	return v == "true" || v == "1"
}
