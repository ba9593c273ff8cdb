package main

import (
	"os"
	"time"

	"staffms/config"
	"staffms/database"
	routes "staffms/internal/app/http"
	"staffms/internal/domain/access"
	"staffms/internal/domain/plans"
	"staffms/internal/infra/mail"
	"staffms/internal/infra/store"
	"staffms/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	log := logger.New(config.LOG_LEVEL)

	if err := database.InitDB(config.DB_URL, log); err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}

	catalog := plans.DefaultCatalog()

	r := gin.Default()

	// CORS must be registered before the routes.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, routes.Deps{
		DB:      database.DB,
		Catalog: catalog,
		Gate:    access.NewGate(catalog, access.DefaultModules()),
		Advisor: access.NewAdvisor(catalog),
		Users:   store.NewUsers(database.DB),
		Mailer:  mail.New(config.SENDGRID_API_KEY, config.MAIL_FROM, log),
		Uploads: config.UPLOAD_DIR,
		Log:     log,
	})

	log.Info("server starting", "port", config.PORT, "plans", catalog.Keys())
	if err := r.Run(":" + config.PORT); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
