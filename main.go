package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	ginprometheus "github.com/zsais/go-gin-prometheus"

	"homekeep/db"
	"homekeep/logger"
	"homekeep/middleware"
	"homekeep/repository"
	"homekeep/routes"
	"homekeep/services"
)

func main() {
	// Missing .env is fine when the environment is set directly.
	_ = godotenv.Load()

	log := logger.New(os.Getenv("LOG_DIR"))

	if os.Getenv("JWT_SECRET_KEY") == "" {
		log.Fatal().Msg("JWT_SECRET_KEY environment variable not set")
	}

	conn, err := db.Connect(db.DSNFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	users := repository.NewUserRepository(conn)
	locations := repository.NewLocationRepository(conn)
	items := repository.NewItemRepository(conn)
	reminders := repository.NewReminderRepository(conn)

	locationService := services.NewLocationService(locations)
	itemService := services.NewItemService(items, locationService)
	reminderService := services.NewReminderService(reminders, items)
	statsService := services.NewStatsService(items, locations, reminderService)

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads/images"
	}

	routes.AuthRoutes(router, routes.NewAuthHandler(users))
	routes.UserRoutes(router, routes.NewUserHandler(users))
	routes.LocationRoutes(router, routes.NewLocationHandler(locationService))
	routes.ItemRoutes(router, routes.NewItemHandler(itemService))
	routes.ReminderRoutes(router, routes.NewReminderHandler(reminderService))
	routes.UploadRoutes(router, routes.NewUploadHandler(uploadDir))
	routes.StatsRoutes(router, routes.NewStatsHandler(statsService))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/health/db", func(c *gin.Context) {
		sqlDB, err := conn.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("starting server")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
