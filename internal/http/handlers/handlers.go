package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	apierrors "github.com/schetovod/webclient/internal/errors"
	"github.com/schetovod/webclient/internal/service"
)

// Handlers агрегирует зависимости локального UI-слоя.
type Handlers struct {
	svc     *service.Service
	session *service.Session
	ent     *service.Entitlements
}

func New(svc *service.Service, session *service.Session, ent *service.Entitlements) *Handlers {
	return &Handlers{svc: svc, session: session, ent: ent}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		return fmt.Errorf("%w: %v", apierrors.ErrInvalidArgument, err)
	}

	return nil
}
