package http

import (
	"tasktrack/internal/config"
	"tasktrack/internal/http/handlers"
	"tasktrack/internal/http/middleware"
	"tasktrack/internal/repository"
	"tasktrack/internal/service"
	"tasktrack/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the Postgres-backed services and mounts the full
// API surface.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, cfg *config.Config, version string) {
	hub := ws.NewHub()
	tasks := service.NewTaskServiceWithNotifier(repository.NewTaskRepository(pool), hub)
	users := service.NewUserService(repository.NewUserRepository(pool), cfg.BcryptCost)
	h := handlers.NewHandler(tasks, users)

	healthHandler := handlers.NewHealthHandler(pool, version)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	RegisterAPIRoutes(r, h, hub, cfg)
}

// RegisterAPIRoutes mounts the task and auth endpoints on any handler,
// which lets tests run the same routing over an in-memory store.
func RegisterAPIRoutes(r *gin.Engine, h *handlers.Handler, hub *ws.Hub, cfg *config.Config) {
	authRL := middleware.RedisRateLimit(cfg.AuthRateLimit, cfg.AuthRateWindow)
	apiRL := middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow)

	r.POST("/register", authRL, h.Register)
	r.POST("/login", authRL, h.Login)

	t := r.Group("/tasks/:username", apiRL, middleware.OwnerGuard())
	{
		t.POST("", h.CreateTask)
		t.GET("", h.ListTasks)
		t.GET("/:id", h.GetTask)
		t.PUT("/:id", h.UpdateTask)
		t.DELETE("/:id", h.DeleteTask)
	}

	r.GET("/ws/tasks/:username", h.WS(hub))
}
