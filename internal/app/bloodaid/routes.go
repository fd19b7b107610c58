// Package bloodaid предоставляет маршруты приложения.
package bloodaid

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	authlogin "github.com/bloodaid/bloodaid/internal/http/handlers/auth/login"
	authregister "github.com/bloodaid/bloodaid/internal/http/handlers/auth/register"
	blogcreate "github.com/bloodaid/bloodaid/internal/http/handlers/blog/create"
	bloglist "github.com/bloodaid/bloodaid/internal/http/handlers/blog/list"
	blogread "github.com/bloodaid/bloodaid/internal/http/handlers/blog/read"
	blogremove "github.com/bloodaid/bloodaid/internal/http/handlers/blog/remove"
	blogsetstatus "github.com/bloodaid/bloodaid/internal/http/handlers/blog/setstatus"
	blogupdate "github.com/bloodaid/bloodaid/internal/http/handlers/blog/update"
	fundcreateintent "github.com/bloodaid/bloodaid/internal/http/handlers/fund/createintent"
	fundexport "github.com/bloodaid/bloodaid/internal/http/handlers/fund/export"
	fundlist "github.com/bloodaid/bloodaid/internal/http/handlers/fund/list"
	fundsave "github.com/bloodaid/bloodaid/internal/http/handlers/fund/save"
	geohandler "github.com/bloodaid/bloodaid/internal/http/handlers/geo"
	"github.com/bloodaid/bloodaid/internal/http/handlers/health"
	requestclaim "github.com/bloodaid/bloodaid/internal/http/handlers/request/claim"
	requestcreate "github.com/bloodaid/bloodaid/internal/http/handlers/request/create"
	requestlist "github.com/bloodaid/bloodaid/internal/http/handlers/request/list"
	requestlistopen "github.com/bloodaid/bloodaid/internal/http/handlers/request/listopen"
	requestread "github.com/bloodaid/bloodaid/internal/http/handlers/request/read"
	requestremove "github.com/bloodaid/bloodaid/internal/http/handlers/request/remove"
	requestresolvedonor "github.com/bloodaid/bloodaid/internal/http/handlers/request/resolvedonor"
	requestresolvestaff "github.com/bloodaid/bloodaid/internal/http/handlers/request/resolvestaff"
	statshandler "github.com/bloodaid/bloodaid/internal/http/handlers/stats"
	requestupdate "github.com/bloodaid/bloodaid/internal/http/handlers/request/update"
	useravatar "github.com/bloodaid/bloodaid/internal/http/handlers/user/avatar"
	userlist "github.com/bloodaid/bloodaid/internal/http/handlers/user/list"
	userprofile "github.com/bloodaid/bloodaid/internal/http/handlers/user/profile"
	userrole "github.com/bloodaid/bloodaid/internal/http/handlers/user/role"
	usersearch "github.com/bloodaid/bloodaid/internal/http/handlers/user/search"
	userupdaterole "github.com/bloodaid/bloodaid/internal/http/handlers/user/updaterole"
	userupdatestatus "github.com/bloodaid/bloodaid/internal/http/handlers/user/updatestatus"
	"github.com/bloodaid/bloodaid/internal/http/middlewarectx"
	"github.com/bloodaid/bloodaid/internal/lib/geo"
	"github.com/bloodaid/bloodaid/internal/models"
	authservice "github.com/bloodaid/bloodaid/internal/services/auth"
	blogservice "github.com/bloodaid/bloodaid/internal/services/blog"
	fundservice "github.com/bloodaid/bloodaid/internal/services/fund"
	requestservice "github.com/bloodaid/bloodaid/internal/services/request"
	statsservice "github.com/bloodaid/bloodaid/internal/services/stats"
	userservice "github.com/bloodaid/bloodaid/internal/services/user"
	"github.com/bloodaid/bloodaid/internal/storage/repository"
)

// Services зависимости, которые нужны маршрутам.
type Services struct {
	Auth     *authservice.Service
	User     *userservice.Service
	Request  *requestservice.Service
	Fund     *fundservice.Service
	Blog     *blogservice.Service
	Stats    *statsservice.Service
	Uploader useravatar.Uploader
	Geo      *geo.Provider
	Storage  *repository.Storage
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, svc *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	geoHandler := geohandler.New(logger, svc.Geo)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", authregister.New(logger, svc.Auth).ServeHTTP)
		r.Post("/login", authlogin.New(logger, svc.Auth).ServeHTTP)
		r.Get("/districts", geoHandler.Districts)
		r.Get("/upazilas", geoHandler.Upazilas)
		r.Get("/donation-requests", requestlistopen.New(logger, svc.Request).ServeHTTP)
		r.Get("/donation-requests/{id}", requestread.New(logger, svc.Request).ServeHTTP)
		r.Get("/blogs", bloglist.NewPublic(logger, svc.Blog).ServeHTTP)
		r.Get("/blogs/{id}", blogread.New(logger, svc.Blog).ServeHTTP)
		r.Get("/users/search", usersearch.New(logger, svc.User).ServeHTTP)
		r.Get("/health", health.New(logger, svc.Storage).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			r.Use(middlewarectx.RoleMiddleware(svc.User, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/donation-requests", requestcreate.New(logger, svc.Request).ServeHTTP)
			r.Put("/donation-requests/{id}", requestupdate.New(logger, svc.Request).ServeHTTP)
			r.Delete("/donation-requests/{id}", requestremove.New(logger, svc.Request).ServeHTTP)
			r.Post("/donation-requests/{id}/confirm", requestclaim.New(logger, svc.Request).ServeHTTP)
			r.Patch("/donation-requests/{id}/status/donor", requestresolvedonor.New(logger, svc.Request).ServeHTTP)
			r.Get("/dashboard/donation-requests", requestlist.New(logger, svc.Request).ServeHTTP)

			r.Get("/users/{id}/role", userrole.New(logger, svc.User).ServeHTTP)
			r.Get("/users/{id}", userprofile.NewGet(logger, svc.User).ServeHTTP)
			r.Patch("/users/{id}", userprofile.NewUpdate(logger, svc.User).ServeHTTP)
			r.Post("/users/avatar", useravatar.New(logger, svc.Uploader).ServeHTTP)

			r.Post("/create-payment-intent", fundcreateintent.New(logger, svc.Fund).ServeHTTP)
			r.Post("/save-fund", fundsave.New(logger, svc.Fund).ServeHTTP)
			r.Get("/funds", fundlist.New(logger, svc.Fund).ServeHTTP)

			// Волонтёрские и административные маршруты
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleVolunteer, models.RoleAdmin))
				r.Patch("/donation-requests/{id}/status/admin", requestresolvestaff.New(logger, svc.Request).ServeHTTP)
				r.Post("/blogs", blogcreate.New(logger, svc.Blog).ServeHTTP)
				r.Put("/blogs/{id}", blogupdate.New(logger, svc.Blog).ServeHTTP)
				r.Get("/dashboard/blogs", bloglist.NewDashboard(logger, svc.Blog).ServeHTTP)
			})

			// Только администратор
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/users", userlist.New(logger, svc.User).ServeHTTP)
				r.Patch("/users/{id}/status", userupdatestatus.New(logger, svc.User).ServeHTTP)
				r.Patch("/users/{id}/role", userupdaterole.New(logger, svc.User).ServeHTTP)
				r.Delete("/blogs/{id}", blogremove.New(logger, svc.Blog).ServeHTTP)
				r.Patch("/blogs/{id}/publish", blogsetstatus.New(logger, svc.Blog, models.BlogStatusPublished).ServeHTTP)
				r.Patch("/blogs/{id}/unpublish", blogsetstatus.New(logger, svc.Blog, models.BlogStatusDraft).ServeHTTP)
				r.Get("/funds/export", fundexport.New(logger, svc.Fund).ServeHTTP)
				r.Get("/admin/stats", statshandler.New(logger, svc.Stats).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
