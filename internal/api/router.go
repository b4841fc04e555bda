package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/staffhub/staffhub-api/internal/api/handler"
	"github.com/staffhub/staffhub-api/internal/api/middleware"
	"github.com/staffhub/staffhub-api/internal/core/domain"
	"github.com/staffhub/staffhub-api/internal/core/ports"
	"github.com/staffhub/staffhub-api/internal/infrastructure/push"
)

// Deps carries everything the router needs wired in from main.
type Deps struct {
	AuthService     ports.AuthService
	EmployeeService ports.EmployeeService
	ManagerService  ports.ManagerService
	Notifier        ports.Notifier
	Hub             *push.Hub
	Mongo           *mongo.Database
	Redis           *redis.Client
	JWTSecret       string
	Log             zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("staffhub"))

	authenticated := middleware.Auth(d.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	employeeHandler := handler.NewEmployeeHandler(d.EmployeeService)
	managerHandler := handler.NewManagerHandler(d.ManagerService)
	notificationHandler := handler.NewNotificationHandler(d.Notifier, d.Hub)

	// --- Identity routes ---
	user := e.Group("/api/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/reset-password", authHandler.ResetPassword)
	user.POST("/refresh", authHandler.Refresh)
	user.GET("/check-me", authHandler.CheckSession, authenticated)

	// --- Employee routes ---
	employee := e.Group("/api/employee", authenticated)
	// Provisioning is open to accounts that have no profile yet.
	employee.POST("/profile", employeeHandler.CreateProfile,
		middleware.RBAC(domain.RoleUser, domain.RoleEmployee))

	employeeOnly := middleware.RBAC(domain.RoleEmployee)
	employee.GET("/profile", employeeHandler.GetProfile, employeeOnly)
	employee.PATCH("/profile", employeeHandler.UpdateProfile, employeeOnly)
	employee.POST("/leave", employeeHandler.ApplyLeave, employeeOnly)
	employee.POST("/sales", employeeHandler.RecordSale, employeeOnly)
	employee.PATCH("/sales/:id", employeeHandler.UpdateSale, employeeOnly)
	employee.GET("/sales", employeeHandler.ListSales, employeeOnly)

	// --- Manager routes ---
	manager := e.Group("/api/manager", authenticated)
	manager.POST("/profile", managerHandler.CreateProfile,
		middleware.RBAC(domain.RoleUser, domain.RoleManager))

	managerOnly := middleware.RBAC(domain.RoleManager)
	manager.GET("/profile", managerHandler.GetProfile, managerOnly)
	manager.PATCH("/profile", managerHandler.UpdateProfile, managerOnly)
	manager.POST("/leave/approve", managerHandler.ApproveLeave, managerOnly)
	manager.GET("/unpromoted", managerHandler.ListUnpromoted, managerOnly)
	manager.POST("/promote", managerHandler.Promote, managerOnly)
	manager.GET("/subordinate", managerHandler.GetSubordinate, managerOnly)
	manager.GET("/sales", managerHandler.ListTeamSales, managerOnly)

	// --- Notification routes (any authenticated role) ---
	notifications := e.Group("/api/notifications", authenticated)
	notifications.GET("", notificationHandler.List)
	notifications.GET("/stream", notificationHandler.Stream)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
