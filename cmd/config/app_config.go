package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"

	"givehub/internal/api/handlers"
	"givehub/internal/api/routes"
	"givehub/internal/middleware"
	"givehub/internal/utils"
	"givehub/internal/utils/storage"
	"givehub/pkg/admin"
	"givehub/pkg/donation"
	"givehub/pkg/jwt"
	"givehub/pkg/notification"
	"givehub/pkg/request"
	"givehub/pkg/user"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)
	requestRepository := request.NewRequestRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	notificationService := notification.NewNotificationService(notificationRepository)
	userService := user.NewUserService(userRepository, jwtService, notificationService, s3)
	donationService := donation.NewDonationService(donationRepository, s3)
	requestService := request.NewRequestService(requestRepository, donationRepository, notificationService)
	adminService := admin.NewAdminService(userRepository, donationRepository, notificationService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)
	requestHandler := handlers.NewRequestHandler(requestService, validator)
	adminHandler := handlers.NewAdminHandler(adminService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		DonationHandler:     donationHandler,
		RequestHandler:      requestHandler,
		AdminHandler:        adminHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
