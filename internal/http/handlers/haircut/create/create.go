// Package create реализует HTTP-обработчик записи оплаченной стрижки.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// Handler обрабатывает HTTP-запросы записи стрижки.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики стрижек
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики записи стрижки.
type Service interface {
	Create(ctx context.Context, ownerUID string, req models.CreateHaircutRequest) (int64, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Записать стрижку
// @Description Регистрирует оплаченную стрижку в барбершопе аутентифицированного владельца. Сумма передается в центах.
// @Security BearerAuth
// @Tags Haircuts
// @Accept  json
// @Produce  json
// @Param request body models.CreateHaircutRequest true "Данные стрижки"
// @Success 200 {object} map[string]any "Стрижка записана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или барбер не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /haircuts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.haircut.create"

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

	var req models.CreateHaircutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.Create(r.Context(), ownerUID, req)
	if err != nil {
		if errors.Is(err, repository.ErrBarberNotFound) {
			log.Info("barber does not belong to shop", slog.Int64("barber_id", req.BarberID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("barber not found"))
			return
		}
		log.Error("failed to create haircut", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create haircut"))
		return
	}

	log.Info("haircut created", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{"id": id}))
}
