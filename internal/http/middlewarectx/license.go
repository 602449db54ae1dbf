package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/barberos/barbershop-backend/internal/http/response"
	"github.com/barberos/barbershop-backend/internal/lib/sl"
	"github.com/barberos/barbershop-backend/internal/services/license"
)

var gatewayDenials = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "license_gateway_denials_total",
	Help: "Number of requests denied by the license gateway, by reason code.",
}, []string{"code"})

// Authorizer описывает интерфейс решения лицензионного шлюза.
type Authorizer interface {
	Authorize(ctx context.Context, path, ownerUID, machineID string) (license.Decision, error)
}

// LicenseMiddleware возвращает HTTP middleware лицензионного шлюза:
// каждый входящий запрос проходит проверку лицензии до бизнес-логики.
//
// Решение принимает сервис лицензий по пути запроса, UID владельца из контекста
// и заголовку X-Machine-ID; middleware только транслирует отказ в JSON-ответ
// с кодом причины и сообщением поддержки.
func LicenseMiddleware(authz Authorizer, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "license.LicenseMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			ownerUID, _ := r.Context().Value(UserUID).(string)
			machineID := r.Header.Get(MachineIDHeader)

			decision, err := authz.Authorize(r.Context(), r.URL.Path, ownerUID, machineID)
			if err != nil {
				log.Error("license check failed", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if !decision.Allowed {
				log.Warn("request denied by license gateway",
					slog.String("path", r.URL.Path),
					slog.String("code", decision.Code))
				gatewayDenials.WithLabelValues(decision.Code).Inc()
				render.Status(r, decision.Status)
				render.JSON(w, r, response.Denial(decision.Error, decision.Code,
					decision.ShowSupport, decision.SupportMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
