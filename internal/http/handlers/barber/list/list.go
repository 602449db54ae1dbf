// Package list реализует HTTP-обработчик списка барберов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы списка барберов.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики барберов
}

// Service описывает интерфейс бизнес-логики списка барберов.
type Service interface {
	List(ctx context.Context, ownerUID string) ([]*models.Barber, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список барберов
// @Description Возвращает действующих барберов барбершопа аутентифицированного владельца.
// @Security BearerAuth
// @Tags Barbers
// @Produce  json
// @Success 200 {object} map[string]any "Список барберов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /barbers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.barber.list"

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

	barbers, err := h.service.List(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to list barbers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list barbers"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"barbers": barbers}))
}
