package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arsalan507/simplequran/internal/service"
)

// maxBodyBytes — верхняя граница тела JSON-запроса.
const maxBodyBytes = 64 << 10

// Handlers агрегирует зависимости REST-эндпойнтов.
type Handlers struct {
	svc     *service.Service
	support string
}

// New создаёт хендлеры; support — адрес поддержки на HTML-страницах.
func New(svc *service.Service, support string) *Handlers {
	return &Handlers{svc: svc, support: support}
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeJSON читает тело запроса. Неизвестные поля игнорируются:
// витрина присылает лишние поля (например, сумму), сервер их не использует.
func decodeJSON(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(value); err != nil {
		return errInvalidBody()
	}
	return nil
}

// errInvalidBody — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidBody() error {
	return &service.ValidationError{Message: "Invalid request body"}
}
