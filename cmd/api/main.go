package main

import (
	"log"
	"os"
	"time"

	"github.com/dooza/social-signups-api/internal/application/usecases"
	"github.com/dooza/social-signups-api/internal/domain/repositories"
	"github.com/dooza/social-signups-api/internal/infrastructure/database"
	"github.com/dooza/social-signups-api/internal/infrastructure/queue"
	"github.com/dooza/social-signups-api/internal/infrastructure/store"
	"github.com/dooza/social-signups-api/internal/interfaces/http/middleware"
	"github.com/dooza/social-signups-api/internal/interfaces/http/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, using system environment variables")
	}

	signupRepo, err := setupStore()
	if err != nil {
		log.Fatalf("❌ Error setting up signup store: %v", err)
	}

	producer := setupProducer()

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024, // 1MB, payloads are a single form
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	})

	middleware.SetupMiddlewares(app)
	routes.SetupRoutes(app, signupRepo, producer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server is running on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// setupStore picks the signup store backend: the Supabase REST API when
// its credentials are present, direct Postgres otherwise.
func setupStore() (repositories.ISignupRepository, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_ANON_KEY")
	if supabaseURL != "" && supabaseKey != "" {
		log.Println("📦 Using Supabase REST store")
		return store.NewSupabaseStore(supabaseURL, supabaseKey)
	}

	log.Println("📦 Using Postgres store")
	db, err := database.SetupDatabase()
	if err != nil {
		return nil, err
	}
	return repositories.NewSignupRepository(db), nil
}

// setupProducer returns nil when no broker is configured; ingestion
// then skips event publishing entirely.
func setupProducer() usecases.ProducerHandler {
	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "signup.created"
	}

	log.Printf("📨 Publishing signup events to %s (%s)", topic, broker)
	return queue.NewProducer(broker, topic)
}
