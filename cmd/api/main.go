package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentora/internal/config"
	"rentora/internal/database"
	"rentora/internal/middleware"
	"rentora/internal/modules/auth"
	"rentora/internal/modules/blocks"
	"rentora/internal/modules/events"
	"rentora/internal/modules/mapping"
	"rentora/internal/modules/status"
	syncmod "rentora/internal/modules/sync"
	jwtsvc "rentora/internal/pkg/jwt"
	"rentora/internal/pms"
	"rentora/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	cfg, err := config.LoadSyncRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	mappingRepo := repository.NewPropertyMappingRepository(db)
	calendarRepo := repository.NewCalendarDayRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	auditRepo := repository.NewSyncAuditRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	pmsClient := pms.NewClient(pms.Config{
		BaseURL:      cfg.PMSBaseURL,
		ClientID:     cfg.PMSClientID,
		ClientSecret: cfg.PMSClientSecret,
		Timeout:      cfg.PMSTimeout,
	})

	hub := events.NewHub()
	defer hub.Close()

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	syncService := syncmod.NewService(
		calendarRepo,
		mappingRepo,
		reservationRepo,
		auditRepo,
		pmsClient,
		hub,
		cfg.HorizonDays,
		cfg.SyncWorkers,
	)
	syncHandler := syncmod.NewHandler(syncService)

	blocksService := blocks.NewService(calendarRepo, auditRepo, hub)
	blocksHandler := blocks.NewHandler(blocksService)

	statusService := status.NewService(mappingRepo, auditRepo, calendarRepo, propertyRepo, pmsClient, cfg.RecentEventsLimit)
	statusHandler := status.NewHandler(statusService)

	mappingService := mapping.NewService(mappingRepo, propertyRepo, pmsClient)
	mappingHandler := mapping.NewHandler(mappingService)

	eventsHandler := events.NewHandler(hub, j)

	access := middleware.NewPropertyAccessChecker(propertyRepo)

	r := gin.Default()
	r.Use(middleware.CORS(), middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// websocket auth travels in the query string
		eventsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			// read-only status surface
			protected.GET("/sync/health", statusHandler.PMSHealth)
			protected.GET("/sync/organizations/:id/stats", statusHandler.GetOrganizationStats)
			protected.GET("/sync/properties/:id/status", access.CheckPropertyAccess(), statusHandler.GetSyncStatus)

			// sync and block triggers
			ops := protected.Group("/")
			ops.Use(middleware.RequireRole("manager", "admin"))
			{
				ops.POST("/sync/organizations/:id", syncHandler.SyncAll)
				ops.POST("/sync/properties/:id", access.CheckPropertyAccess(), syncHandler.SyncProperty)
				ops.POST("/properties/:id/blocks", access.CheckPropertyAccess(), blocksHandler.BlockDates)
				ops.DELETE("/properties/:id/blocks", access.CheckPropertyAccess(), blocksHandler.UnblockDates)
			}

			// mapping administration
			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				mappingHandler.RegisterRoutes(admin)
			}
		}
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
