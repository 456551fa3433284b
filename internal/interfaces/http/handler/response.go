package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dreschagin/maintenance-dashboard/internal/application/usecase"
	"github.com/dreschagin/maintenance-dashboard/internal/domain/valueobject"
	"github.com/dreschagin/maintenance-dashboard/pkg/logger"
)

// maxBodyBytes ограничивает размер JSON тела запроса
const maxBodyBytes = 1 << 20

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error      string `json:"error"`
	Field      string `json:"field,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}

// NewValidator создает validator, сообщающий имена полей из json тегов
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct переводит ошибки validator в ValidationError домена
func validateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	constraint := fe.Tag()
	if fe.Param() != "" {
		constraint += "=" + fe.Param()
	}
	value := reflect.Indirect(reflect.ValueOf(fe.Value()))
	if !value.IsValid() {
		return valueobject.NewValidationError(fe.Field(), constraint, nil)
	}
	return valueobject.NewValidationError(fe.Field(), constraint, value.Interface())
}

// decodeJSON читает тело запроса, отклоняя неизвестные поля
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return valueobject.NewValidationError("body", "valid JSON", err.Error())
	}
	return nil
}

// writeJSON кодирует ответ до отправки статуса, ошибка кодирования становится 500
func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		log.Error("Failed to encode response", err, "status", status)
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Debug("Failed to write response", "error", err.Error())
	}
}

// writeError сопоставляет ошибку со статусом ответа и логирует внутренние ошибки
func writeError(w http.ResponseWriter, r *http.Request, log *logger.Logger, err error) {
	var vErr *valueobject.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, log, http.StatusBadRequest, ErrorResponse{
			Error:      vErr.Error(),
			Field:      vErr.Field,
			Constraint: vErr.Constraint,
		})
	case errors.Is(err, valueobject.ErrValidation):
		writeJSON(w, log, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrMachineNotFound):
		writeJSON(w, log, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, r.Context().Err()) && r.Context().Err() != nil:
		// Клиент ушел, отвечать некому
		log.Debug("Request cancelled", "path", r.URL.Path)
	default:
		log.Error("Request failed", err, "method", r.Method, "path", r.URL.Path)
		writeJSON(w, log, http.StatusInternalServerError, ErrorResponse{
			Error: fmt.Sprintf("failed to %s", describe(r)),
		})
	}
}

func describe(r *http.Request) string {
	return strings.ToLower(r.Method) + " " + r.URL.Path
}
