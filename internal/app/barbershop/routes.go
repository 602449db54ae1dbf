package barbershop

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/barberos/barbershop-backend/internal/http/handlers/auth/login"
	"github.com/barberos/barbershop-backend/internal/http/handlers/auth/register"
	barbercreate "github.com/barberos/barbershop-backend/internal/http/handlers/barber/create"
	barberlist "github.com/barberos/barbershop-backend/internal/http/handlers/barber/list"
	barberremove "github.com/barberos/barbershop-backend/internal/http/handlers/barber/remove"
	"github.com/barberos/barbershop-backend/internal/http/handlers/haircut/balance"
	haircutcreate "github.com/barberos/barbershop-backend/internal/http/handlers/haircut/create"
	haircutlist "github.com/barberos/barbershop-backend/internal/http/handlers/haircut/list"
	"github.com/barberos/barbershop-backend/internal/http/handlers/haircut/removeall"
	"github.com/barberos/barbershop-backend/internal/http/handlers/haircut/report"
	"github.com/barberos/barbershop-backend/internal/http/handlers/health"
	"github.com/barberos/barbershop-backend/internal/http/handlers/license/activate"
	reservationcancel "github.com/barberos/barbershop-backend/internal/http/handlers/reservation/cancel"
	reservationcreate "github.com/barberos/barbershop-backend/internal/http/handlers/reservation/create"
	reservationlist "github.com/barberos/barbershop-backend/internal/http/handlers/reservation/list"
	"github.com/barberos/barbershop-backend/internal/http/middlewarectx"
	authservice "github.com/barberos/barbershop-backend/internal/services/auth"
	barberservice "github.com/barberos/barbershop-backend/internal/services/barber"
	haircutservice "github.com/barberos/barbershop-backend/internal/services/haircut"
	licenseservice "github.com/barberos/barbershop-backend/internal/services/license"
	reservationservice "github.com/barberos/barbershop-backend/internal/services/reservation"
	"github.com/barberos/barbershop-backend/internal/storage/repository"
)

// Services объединяет сервисы, необходимые для регистрации маршрутов.
type Services struct {
	Auth        *authservice.Service
	License     *licenseservice.Service
	Barber      *barberservice.Service
	Haircut     *haircutservice.Service
	Reservation *reservationservice.Service
	Storage     *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Открытые конечные точки: регистрация, вход, активация лицензии и health.
// Отчёт по стрижкам требует JWT, но входит в исключения лицензионного шлюза:
// владелец с истёкшей лицензией всё ещё может выгрузить свои данные.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		r.Post("/license/activate", activate.New(logger, svc.License).ServeHTTP)
		r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)

		// Группа с JWT аутентификацией и лицензионным шлюзом
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.LicenseMiddleware(svc.License, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/barbers", barbercreate.New(logger, svc.Barber).ServeHTTP)
			r.Get("/barbers", barberlist.New(logger, svc.Barber).ServeHTTP)
			r.Delete("/barbers/{id}", barberremove.New(logger, svc.Barber).ServeHTTP)

			r.Post("/haircuts", haircutcreate.New(logger, svc.Haircut).ServeHTTP)
			r.Get("/haircuts", haircutlist.New(logger, svc.Haircut).ServeHTTP)
			r.Delete("/haircuts", removeall.New(logger, svc.Haircut).ServeHTTP)
			r.Get("/haircuts/balance", balance.New(logger, svc.Haircut).ServeHTTP)
			r.Get("/haircuts/report", report.New(logger, svc.Haircut).ServeHTTP)

			r.Post("/reservations", reservationcreate.New(logger, svc.Reservation).ServeHTTP)
			r.Get("/reservations", reservationlist.New(logger, svc.Reservation).ServeHTTP)
			r.Delete("/reservations/{id}", reservationcancel.New(logger, svc.Reservation).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
