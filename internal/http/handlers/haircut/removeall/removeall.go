// Package removeall реализует HTTP-обработчик очистки истории стрижек.
package removeall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы очистки истории стрижек.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики стрижек
}

// Service описывает интерфейс бизнес-логики очистки истории.
type Service interface {
	DeleteAll(ctx context.Context, ownerUID string) (int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Очистить историю стрижек
// @Description Удаляет все стрижки барбершопа аутентифицированного владельца. Операция необратима.
// @Security BearerAuth
// @Tags Haircuts
// @Produce  json
// @Success 200 {object} map[string]any "Количество удалённых записей"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /haircuts [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.haircut.removeall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ownerUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || ownerUID == "" {
		log.Error("missing user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	count, err := h.service.DeleteAll(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to delete haircuts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete haircuts"))
		return
	}

	log.Info("haircuts deleted", slog.Int64("count", count))
	render.JSON(w, r, response.OKWithData(map[string]any{"deleted": count}))
}
