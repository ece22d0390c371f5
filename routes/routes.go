package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	controller "leadforge/controllers"
	"leadforge/middleware"
	"leadforge/store"
	"leadforge/utils"
	"leadforge/worker"
)

func SetupAuthRoutes(app *fiber.App, st *store.Store) {
	authController := controller.NewAuthController(st)

	// Auth routes group with logging middleware
	auth := app.Group("/auth", logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Public auth endpoints (no authentication required)
	auth.Post("/login", authController.Login)
	auth.Post("/refresh", authController.RefreshToken)

	// Protected auth endpoints (require valid JWT)
	protectedAuth := auth.Group("", middleware.Protected())
	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Get("/me", authController.GetCurrentUser)

	log.Println("Authentication routes initialized successfully")
}

func SetupAPIRoutes(app *fiber.App, st *store.Store, generator utils.ContentGenerator, mailer utils.Mailer, simWorker *worker.SimulationWorker) {
	navigationController := controller.NewNavigationController(st)
	dashboardController := controller.NewDashboardController(st, log.New(os.Stdout, "DASHBOARD: ", log.LstdFlags))
	campaignController := controller.NewCampaignController(st, log.New(os.Stdout, "CAMPAIGN: ", log.LstdFlags))
	leadController := controller.NewLeadController(st, generator, log.New(os.Stdout, "LEAD: ", log.LstdFlags))
	inboxController := controller.NewInboxController(st, mailer, log.New(os.Stdout, "INBOX: ", log.LstdFlags))
	analyticsController := controller.NewAnalyticsController(st, generator, log.New(os.Stdout, "ANALYTICS: ", log.LstdFlags))
	billingController := controller.NewBillingController(st, log.New(os.Stdout, "BILLING: ", log.LstdFlags))
	settingsController := controller.NewSettingsController(st, log.New(os.Stdout, "SETTINGS: ", log.LstdFlags))
	notificationController := controller.NewNotificationController(st, log.New(os.Stdout, "NOTIFY: ", log.LstdFlags))
	simulationController := controller.NewSimulationController(simWorker, log.New(os.Stdout, "SIM: ", log.LstdFlags))

	// API group with versioning and protection
	api := app.Group("/api/v1", middleware.Protected(), logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// View resolution for fragment-based navigation
	api.Get("/navigation/resolve", navigationController.ResolveView)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.Get("/stats", dashboardController.GetDashboardStats)
	dashboard.Get("/recent-campaigns", dashboardController.GetRecentCampaigns)

	// Campaign routes
	campaign := api.Group("/campaigns")
	campaign.Post("/", campaignController.CreateCampaign)
	campaign.Get("/", campaignController.GetCampaigns)
	campaign.Delete("/selection", campaignController.ClearSelection)
	campaign.Get("/:id", campaignController.GetCampaign)
	campaign.Put("/:id", campaignController.UpdateCampaign)
	campaign.Post("/:id/pause", campaignController.PauseCampaign)
	campaign.Post("/:id/resume", campaignController.ResumeCampaign)
	campaign.Post("/:id/schedule", campaignController.ScheduleCampaign)
	campaign.Post("/:id/select", campaignController.SelectCampaign)

	// Lead routes; draft generation is rate limited
	lead := api.Group("/leads")
	lead.Get("/", leadController.GetLeads)
	lead.Get("/export", leadController.ExportLeads)
	lead.Get("/:id", leadController.GetLead)
	lead.Post("/:id/tags", leadController.ToggleTag)
	lead.Post("/:id/draft", middleware.DraftRateLimiter(), leadController.GenerateDraft)
	lead.Post("/:id/draft/apply", leadController.ApplyDraft)

	// Inbox routes
	inbox := api.Group("/inbox")
	inbox.Get("/conversations", inboxController.GetConversations)
	inbox.Get("/conversations/:leadId", inboxController.GetConversation)
	inbox.Post("/conversations/:leadId/reply", inboxController.SendReply)

	// Analytics routes
	analytics := api.Group("/analytics")
	analytics.Get("/", analyticsController.GetAnalytics)
	analytics.Get("/insights", analyticsController.GetInsights)
	analytics.Post("/strategy", analyticsController.GenerateStrategy)
	analytics.Post("/strategy/use", analyticsController.UseStrategy)

	// Billing routes
	billing := api.Group("/billing")
	billing.Get("/plans", billingController.GetPlans)
	billing.Post("/checkout", billingController.Checkout)

	// Settings routes
	settings := api.Group("/settings")
	settings.Get("/", settingsController.GetSettings)
	settings.Put("/", settingsController.UpdateSettings)
	settings.Post("/api-key/regenerate", settingsController.RegenerateAPIKey)
	settings.Post("/integration/connect", settingsController.ConnectIntegration)
	settings.Delete("/integration", settingsController.DisconnectIntegration)

	// OAuth callback stays outside the protected group; Google calls it
	// without a bearer token.
	app.Get("/settings/integration/callback", settingsController.IntegrationCallback)

	// Notifications
	api.Get("/notifications", notificationController.GetNotifications)

	// Simulation control and progress stream
	api.Post("/simulation/tick", simulationController.ForceTick)
	app.Get("/api/v1/simulation/progress", websocket.New(func(c *websocket.Conn) {
		simulationController.HandleSimulationWS(c)
	}))

	log.Println("API routes initialized successfully")
}

func SetupRoutes(app *fiber.App, st *store.Store, generator utils.ContentGenerator, mailer utils.Mailer, simWorker *worker.SimulationWorker) {
	// Initialize Stripe
	controller.InitStripe()

	// Setup health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, st)
	SetupAPIRoutes(app, st, generator, mailer, simWorker)

	// Setup 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":   "Not Found",
			"message": "The requested resource was not found",
		})
	})
}
