package routes

import (
	"github.com/gofiber/fiber/v2"

	"givehub/internal/api/handlers"
	"givehub/internal/middleware"
	"givehub/pkg/jwt"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	DonationHandler     handlers.DonationHandler
	RequestHandler      handlers.RequestHandler
	AdminHandler        handlers.AdminHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.Requests()
	c.Admin()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations")
	auth := c.Middleware.AuthMiddleware(c.JWTService)

	// Browsing is public; mutations require a caller identity.
	donations.Get("/categories", c.DonationHandler.GetCategories)
	donations.Get("/me/list", auth, c.DonationHandler.GetUserDonations)
	donations.Get("", c.DonationHandler.GetDonations)
	donations.Get("/:id", c.DonationHandler.GetDonationByID)

	donations.Post("", auth, c.DonationHandler.CreateDonation)
	donations.Patch("/:id", auth, c.DonationHandler.UpdateDonation)
	donations.Delete("/:id", auth, c.DonationHandler.DeleteDonation)
	donations.Get("/:id/requests", auth, c.RequestHandler.GetDonationRequests)
}

func (c *Config) Requests() {
	requests := c.App.Group("/api/v1/requests", c.Middleware.AuthMiddleware(c.JWTService))

	requests.Post("", c.RequestHandler.SubmitRequest)
	requests.Get("/me", c.RequestHandler.GetUserRequests)
	requests.Post("/:id/approve", c.RequestHandler.ApproveRequest)
	requests.Post("/:id/reject", c.RequestHandler.RejectRequest)
	requests.Post("/:id/confirm", c.RequestHandler.ConfirmReceipt)
}

func (c *Config) Admin() {
	// The middleware only establishes the caller identity; each admin
	// operation re-checks the stored role itself.
	admin := c.App.Group("/api/v1/admin", c.Middleware.AuthMiddleware(c.JWTService))

	admin.Post("/donations/:id/force-complete", c.AdminHandler.ForceComplete)
	admin.Delete("/donations/:id", c.AdminHandler.DeleteDonation)
	admin.Post("/accounts", c.AdminHandler.ProvisionAccount)
	admin.Delete("/accounts/:id", c.AdminHandler.DeprovisionAccount)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))

	notifications.Get("", c.NotificationHandler.GetUserNotifications)
	notifications.Get("/unread-count", c.NotificationHandler.CountUnread)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkAsRead)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
