package app

import (
	"github.com/Akshay-Unavane/To-Do-App/internal/auth"
	"github.com/Akshay-Unavane/To-Do-App/internal/config"
	"github.com/Akshay-Unavane/To-Do-App/internal/handlers"
	"github.com/Akshay-Unavane/To-Do-App/internal/repo"
	"github.com/Akshay-Unavane/To-Do-App/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration())
	revoker := auth.NewRevocationStore(rdb)

	userRepo := repo.NewPGUserRepo(db)
	todoRepo := repo.NewPGTodoRepo(db)

	userSvc := service.NewUserService(userRepo)
	todoSvc := service.NewTodoService(todoRepo)
	adminSvc := service.NewAdminService(userRepo, todoRepo)

	authHandler := handlers.NewAuthHandler(tokens, revoker, userSvc)
	todoHandler := handlers.NewTodoHandler(todoSvc)
	adminHandler := handlers.NewAdminHandler(cfg.Admin.Secret, adminSvc)

	api := r.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/reset-password", authHandler.ResetPassword)

	// Everything below goes through the single identity choke point.
	protected := api.Group("", auth.RequireAuth(tokens, revoker))
	protected.GET("/me", authHandler.Me)
	protected.PUT("/me", authHandler.UpdateProfile)
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/todos", todoHandler.List)
	protected.POST("/todos", todoHandler.Create)
	protected.PUT("/todos/:id", todoHandler.Update)
	protected.DELETE("/todos/:id", todoHandler.Delete)

	r.GET("/admin/debug", adminHandler.Debug)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "To-Do App API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
