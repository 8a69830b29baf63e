package server

import (
	"makeupsales/internal/handler"
	"makeupsales/internal/middleware"
	"makeupsales/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Dashboard *handler.DashboardHandler
	Reminder  *handler.ReminderHandler
	AuditLog  *handler.AuditLogHandler
}

// RegisterRoutes は /auth と /metrics 以外をBearer必須にする
func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, userRepo repository.UserRepository, gatherer prometheus.Gatherer) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	h.Auth.RegisterRoutes(e)

	g := e.Group("")
	g.Use(middleware.AuthJWT(jwtSecret))
	g.Use(middleware.UserGuard(userRepo))

	h.Product.RegisterRoutes(g)
	h.Customer.RegisterRoutes(g)
	h.Order.RegisterRoutes(g)
	h.Dashboard.RegisterRoutes(g)
	h.Reminder.RegisterRoutes(g)
	h.AuditLog.RegisterRoutes(g)
}
