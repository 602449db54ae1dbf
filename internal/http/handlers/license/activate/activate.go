// Package activate реализует HTTP-обработчик активации лицензии на машине.
//
// Handler принимает JSON-запрос с ключом лицензии и идентификатором машины,
// валидирует их и делегирует привязку сервису лицензий. Каждая ветка алгоритма
// активации транслируется в свой HTTP-статус; конфликтные ответы несут
// show_support и support_message для клиента.
package activate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/models"
	"github.com/barberos/barbershop-backend/internal/services/license"
)

// Handler обрабатывает HTTP-запросы активации лицензии.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики лицензирования
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики активации лицензии.
type Service interface {
	Activate(ctx context.Context, licenseKey, machineID string) (*license.ActivationResult, error)
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
// @Summary Активировать лицензию на машине
// @Description Привязывает лицензию по ключу к машине клиента. Повторная активация той же пары идемпотентна.
// @Tags License
// @Accept  json
// @Produce  json
// @Param request body models.ActivateRequest true "Ключ лицензии и идентификатор машины"
// @Success 200 {object} map[string]any "Лицензия активирована"
// @Failure 400 {object} response.DenialResponse "Некорректный ввод, истёкшая лицензия или конфликт привязки"
// @Failure 404 {object} response.DenialResponse "Лицензия не найдена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /license/activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.license.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ActivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("license_key and machine_id are required"))
		return
	}

	res, err := h.service.Activate(r.Context(), req.LicenseKey, req.MachineID)
	if err != nil {
		h.writeActivationError(w, r, log, err)
		return
	}

	log.Info("license activation succeeded",
		slog.String("machine_id", req.MachineID),
		slog.Bool("already_activated", res.AlreadyActivated))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": res.Message,
	}))
}

func (h *Handler) writeActivationError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	log.Error("license activation failed", sl.Err(err))

	switch {
	case errors.Is(err, license.ErrLicenseNotFound):
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Denial("license not found", "", true,
			"verify your license key or contact support"))
	case errors.Is(err, license.ErrLicenseExpired):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Denial("license expired", "", true,
			"your license has expired, contact support to renew it"))
	case errors.Is(err, license.ErrLicenseInactive):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Denial("license is inactive", "", true,
			"your license has been deactivated, contact support to renew it"))
	case errors.Is(err, license.ErrLicenseInUse):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Denial("license is already activated on another machine", "", true,
			"this license is bound to another machine, contact support to transfer it"))
	case errors.Is(err, license.ErrMachineHasLicense):
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Denial("this machine already has a different active license", "", true,
			"contact support if you need to replace the license on this machine"))
	default:
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not activate license"))
	}
}
