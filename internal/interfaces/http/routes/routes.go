package routes

import (
	"os"

	"github.com/dooza/social-signups-api/internal/application/usecases"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/dooza/social-signups-api/internal/infrastructure/cache"
	"github.com/dooza/social-signups-api/internal/interfaces/http/handlers"
	"github.com/dooza/social-signups-api/internal/interfaces/http/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// SetupRoutes wires the store into the use cases and handlers. The
// store is injected rather than constructed here so either backend
// (Postgres or Supabase REST) can serve, and tests can pass a double.
func SetupRoutes(app *fiber.App, signupRepo repositories.ISignupRepository, producer usecases.ProducerHandler) {
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	// The admin dashboard polls; ETags keep the repeat payloads cheap
	app.Use(etag.New())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	statsCache := cache.New()

	// Use Cases
	signupUseCase := usecases.NewSignupUseCase(signupRepo, producer, statsCache)
	statsUseCase := usecases.NewStatsUseCase(signupRepo, statsCache)

	// Handlers
	signupHandler := handlers.NewSignupHandler(signupUseCase)
	statsHandler := handlers.NewStatsHandler(statsUseCase)

	adminAuth := middleware.AdminAuth(os.Getenv("ADMIN_JWT_SECRET"))

	// Signup routes
	app.Post("/signups", signupHandler.CreateSignup)
	app.Get("/signups", signupHandler.GetSignups)
	app.Get("/signups/stats", statsHandler.GetStats)

	// Admin routes
	app.Delete("/signups", adminAuth, signupHandler.ClearSignups)
	app.Patch("/signups/:id/status", adminAuth, signupHandler.UpdateStatus)
}
