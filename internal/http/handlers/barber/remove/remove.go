// Package remove реализует HTTP-обработчик увольнения барбера.
//
// Запись барбера не удаляется: она помечается неработающей, чтобы
// история стрижек продолжала ссылаться на неё.
package remove

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы увольнения барбера.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики барберов
}

// Service описывает интерфейс бизнес-логики увольнения барбера.
type Service interface {
	Deactivate(ctx context.Context, ownerUID string, barberID int64) (int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Уволить барбера
// @Description Помечает барбера неработающим. История его стрижек сохраняется.
// @Security BearerAuth
// @Tags Barbers
// @Produce  json
// @Param id path int true "ID барбера"
// @Success 200 {object} map[string]any "Количество затронутых записей"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 404 {object} response.ErrorResponse "Барбер не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /barbers/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.barber.remove"

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

	barberID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("invalid barber id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid barber id"))
		return
	}

	count, err := h.service.Deactivate(r.Context(), ownerUID, barberID)
	if err != nil {
		log.Error("failed to deactivate barber", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not remove barber"))
		return
	}
	if count == 0 {
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("barber not found"))
		return
	}

	log.Info("barber deactivated", slog.Int64("id", barberID))
	render.JSON(w, r, response.OKWithData(map[string]any{"removed": count}))
}
