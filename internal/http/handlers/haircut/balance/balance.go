// Package balance реализует HTTP-обработчик агрегатов выручки.
package balance

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/services/haircut"
)

// Handler обрабатывает HTTP-запросы агрегатов выручки.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики стрижек
}

// Service описывает интерфейс бизнес-логики агрегатов выручки.
type Service interface {
	Balance(ctx context.Context, ownerUID, period string) (*models.BalanceStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Баланс барбершопа
// @Description Возвращает агрегаты выручки за период: daily — с начала дня, monthly — с начала месяца.
// @Security BearerAuth
// @Tags Haircuts
// @Produce  json
// @Param period query string false "Период: daily или monthly (по умолчанию daily)"
// @Success 200 {object} models.BalanceStats "Агрегаты выручки"
// @Failure 400 {object} response.ErrorResponse "Неизвестный период"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /haircuts/balance [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.haircut.balance"

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

	period := r.URL.Query().Get("period")
	if period == "" {
		period = haircut.PeriodDaily
	}

	stats, err := h.service.Balance(r.Context(), ownerUID, period)
	if err != nil {
		if errors.Is(err, haircut.ErrUnknownPeriod) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown balance period"))
			return
		}
		log.Error("failed to count balance", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not count balance"))
		return
	}

	render.JSON(w, r, stats)
}
