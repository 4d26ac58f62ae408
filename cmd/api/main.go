package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pethealth/internal/config"
	"pethealth/internal/database"
	"pethealth/internal/middleware"
	"pethealth/internal/modules/admin"
	"pethealth/internal/modules/appointment"
	"pethealth/internal/modules/article"
	"pethealth/internal/modules/auth"
	"pethealth/internal/modules/notification"
	"pethealth/internal/modules/nutrition"
	"pethealth/internal/modules/pet"
	"pethealth/internal/modules/reminder"
	jwtsvc "pethealth/internal/pkg/jwt"
	"pethealth/internal/realtime"
	"pethealth/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	nutritionRepo := repository.NewNutritionRepository(db)
	applicationRepo := repository.NewVetApplicationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := realtime.NewHub()
	wsHandler := realtime.NewHandler(hub, j)

	notificationService := notification.NewService(notificationRepo, hub, userRepo)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, applicationRepo, j, notificationService)
	authHandler := auth.NewHandler(authService)

	petService := pet.NewService(petRepo, notificationService)
	petHandler := pet.NewHandler(petService)

	appointmentService := appointment.NewService(appointmentRepo, petRepo, userRepo, notificationService)
	appointmentHandler := appointment.NewHandler(appointmentService)

	articleService := article.NewService(articleRepo, notificationService)
	articleHandler := article.NewHandler(articleService)

	nutritionService := nutrition.NewService(nutritionRepo, petRepo, notificationService)
	nutritionHandler := nutrition.NewHandler(nutritionService)

	adminService := admin.NewService(applicationRepo, userRepo, reportRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	scheduler := reminder.NewScheduler(petRepo, notificationService)
	if err := scheduler.Start(cfg.ReminderSpec); err != nil {
		log.Fatal(err)
	}
	defer scheduler.Stop()

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	// event stream, authenticated via query token
	wsHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		articleHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			petHandler.RegisterRoutes(protected)
			appointmentHandler.RegisterRoutes(protected)
			nutritionHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
			adminHandler.RegisterUserRoutes(protected)

			vets := protected.Group("/")
			vets.Use(middleware.VetOnly())
			{
				petHandler.RegisterVetRoutes(vets)
				appointmentHandler.RegisterVetRoutes(vets)
				articleHandler.RegisterVetRoutes(vets)
				nutritionHandler.RegisterVetRoutes(vets)
			}

			admins := protected.Group("/")
			admins.Use(middleware.AdminOnly())
			{
				articleHandler.RegisterAdminRoutes(admins)
				nutritionHandler.RegisterAdminRoutes(admins)
				adminHandler.RegisterRoutes(admins)
			}
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
