// Package list реализует HTTP-обработчик списка стрижек за текущий день.
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

// Handler обрабатывает HTTP-запросы списка стрижек.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики стрижек
}

// Service описывает интерфейс бизнес-логики списка стрижек.
type Service interface {
	List(ctx context.Context, ownerUID string) ([]*models.Haircut, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Стрижки за сегодня
// @Description Возвращает стрижки барбершопа аутентифицированного владельца за текущий день.
// @Security BearerAuth
// @Tags Haircuts
// @Produce  json
// @Success 200 {object} map[string]any "Список стрижек"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /haircuts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.haircut.list"

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

	haircuts, err := h.service.List(r.Context(), ownerUID)
	if err != nil {
		log.Error("failed to list haircuts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list haircuts"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{"haircuts": haircuts}))
}
