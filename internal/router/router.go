package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/vipcrm/vipcrm/internal/config"
	"github.com/vipcrm/vipcrm/internal/handlers"
	"github.com/vipcrm/vipcrm/internal/middleware"
	"github.com/vipcrm/vipcrm/internal/views"
)

func NewRouter(cfg *config.Config) (*gin.Engine, error) {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	templates, err := views.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	r.SetHTMLTemplate(templates)

	handlers.Init(cfg)

	r.GET("/healthz", handlers.HealthCheck)
	r.GET("/login/", handlers.ShowLogin)
	r.POST("/login/", handlers.Login)

	app := r.Group("/", middleware.AuthMiddleware())
	{
		app.GET("/", handlers.Dashboard)
		app.GET("/dashboard/", handlers.Dashboard)
		app.POST("/logout/", handlers.Logout)
		app.GET("/ws/dashboard", handlers.DashboardSocket)

		app.GET("/users/", handlers.ListUsers)
		app.GET("/organizations/", handlers.ListOrganizations)

		clients := app.Group("/clients")
		{
			clients.GET("/", handlers.ListClients)
			clients.GET("/add/", handlers.ShowAddClient)
			clients.POST("/add/", handlers.AddClient)
			clients.GET("/:id/", handlers.ClientDetail)
			clients.GET("/:id/edit/", handlers.ShowEditClient)
			clients.POST("/:id/edit/", handlers.EditClient)
			clients.GET("/:id/delete/", handlers.ShowDeleteClient)
			clients.POST("/:id/delete/", handlers.DeleteClient)
			clients.GET("/:id/interaction/add/", handlers.ShowAddInteraction)
			clients.POST("/:id/interaction/add/", handlers.AddInteraction)
		}
	}

	r.NoRoute(handlers.NotFound)

	return r, nil
}
