// Package report реализует HTTP-обработчик отчёта по стрижкам за период.
//
// Путь отчёта входит в список исключений лицензионного шлюза: отчёт должен
// открываться даже при истёкшей лицензии, чтобы владелец мог выгрузить данные.
// Аутентификация при этом остаётся обязательной.
package report

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/models"
)

// Handler обрабатывает HTTP-запросы отчёта по стрижкам.
type Handler struct {
	log     *slog.Logger // Логгер для записи операций и ошибок
	service Service      // Сервис бизнес-логики стрижек
}

// Service описывает интерфейс бизнес-логики отчёта.
type Service interface {
	Report(ctx context.Context, ownerUID, startDate, endDate string) ([]*models.Haircut, *models.BalanceStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отчёт по стрижкам
// @Description Возвращает стрижки и агрегаты выручки за период [start_date, end_date] включительно. Доступен и при истёкшей лицензии.
// @Security BearerAuth
// @Tags Haircuts
// @Produce  json
// @Param start_date query string true "Начало периода в формате 2006-01-02"
// @Param end_date query string true "Конец периода в формате 2006-01-02"
// @Success 200 {object} map[string]any "Стрижки и агрегаты"
// @Failure 400 {object} response.ErrorResponse "Некорректные даты"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /haircuts/report [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.haircut.report"

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

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	if !validDate(startDate) || !validDate(endDate) {
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("start_date and end_date are required in format 2006-01-02"))
		return
	}

	haircuts, stats, err := h.service.Report(r.Context(), ownerUID, startDate, endDate)
	if err != nil {
		log.Error("failed to build report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not build report"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"haircuts": haircuts,
		"stats":    stats,
	}))
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
