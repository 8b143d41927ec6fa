package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/salesapp/internal/config"
	"github.com/example/salesapp/internal/handlers"
	"github.com/example/salesapp/internal/middleware"
	customerrepo "github.com/example/salesapp/internal/repository/customer"
	orderrepo "github.com/example/salesapp/internal/repository/order"
	otprepo "github.com/example/salesapp/internal/repository/otp"
	productrepo "github.com/example/salesapp/internal/repository/product"
	userrepo "github.com/example/salesapp/internal/repository/user"
	"github.com/example/salesapp/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.OtpService {
	users := userrepo.NewPostgres(db)
	codes := otprepo.NewPostgres(db)
	customers := customerrepo.NewPostgres(db)
	products := productrepo.NewPostgres(db)
	orders := orderrepo.NewPostgres(db)

	mailer := services.NewEmailService(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.SMTPFrom, cfg.SMTPFromName,
	)
	gateway := newGateway(cfg)

	otpService := services.NewOtpService(users, codes, mailer, cfg.JWTSecret, cfg.TokenExpires)
	orderService := services.NewOrderService(orders, products, customers)

	authHandler := handlers.NewAuthHandler(users, cfg)
	customerAuthHandler := handlers.NewCustomerAuthHandler(users, customers, otpService)
	customerHandler := handlers.NewCustomerHandler(customers)
	adminHandler := handlers.NewAdminHandler(users)
	productHandler := handlers.NewProductHandler(products)
	orderHandler := handlers.NewOrderHandler(orderService, customers, gateway, cfg)

	api := app.Group("/api")

	// Password auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", middleware.AuthMiddleware(cfg), authHandler.Logout)

	// Passwordless customer auth
	customerAuth := api.Group("/customer-auth")
	customerAuth.Post("/register", customerAuthHandler.Register)
	customerAuth.Post("/request-otp", customerAuthHandler.RequestOtp)
	customerAuth.Post("/verify-otp", customerAuthHandler.VerifyOtp)

	// Catalog: public reads, admin writes
	productsGroup := api.Group("/products")
	productsGroup.Get("/", productHandler.List)
	productsGroup.Get("/:id", productHandler.Get)

	adminProducts := productsGroup.Group("", middleware.AuthMiddleware(cfg), middleware.RequireRoles("Admin", "SuperAdmin"))
	adminProducts.Post("/", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	// Customer profiles
	customersGroup := api.Group("/customers", middleware.AuthMiddleware(cfg))
	customersGroup.Get("/me", middleware.RequireRoles("Customer"), customerHandler.Me)
	customersGroup.Put("/me", middleware.RequireRoles("Customer"), customerHandler.UpdateMe)
	customersGroup.Get("/", middleware.RequireRoles("Admin", "SuperAdmin"), customerHandler.List)
	customersGroup.Delete("/:id", middleware.RequireRoles("Admin", "SuperAdmin"), customerHandler.Delete)

	// SuperAdmin account management
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireRoles("SuperAdmin"))
	admin.Get("/admins", adminHandler.ListAdmins)
	admin.Put("/:id/approve", adminHandler.Approve)
	admin.Put("/:id/block", adminHandler.Block)
	admin.Put("/:id/unblock", adminHandler.Unblock)

	// Orders and payments
	ordersGroup := api.Group("/orders", middleware.AuthMiddleware(cfg))
	ordersGroup.Post("/", middleware.RequireRoles("Customer"), orderHandler.Create)
	ordersGroup.Get("/my-orders", middleware.RequireRoles("Customer"), orderHandler.ListMine)
	ordersGroup.Get("/", middleware.RequireRoles("Admin", "SuperAdmin"), orderHandler.ListAll)
	ordersGroup.Get("/:id", orderHandler.Get)
	ordersGroup.Post("/:id/payment", middleware.RequireRoles("Customer"), orderHandler.CreatePayment)
	ordersGroup.Put("/:id/payment-status", middleware.RequireRoles("Customer"), orderHandler.UpdatePaymentStatus)
	ordersGroup.Delete("/:id", orderHandler.Cancel)

	return otpService
}

func newGateway(cfg *config.Config) services.PaymentGateway {
	switch cfg.PaymentProvider {
	case "paymongo":
		return services.NewPayMongoGateway(cfg.PayMongoBaseURL, cfg.PayMongoSecretKey)
	default:
		log.Printf("[Payments] using mock gateway (PAYMENT_PROVIDER=%s)", cfg.PaymentProvider)
		return services.NewMockGateway()
	}
}
