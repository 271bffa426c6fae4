package main

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/handlers"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/locale"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/middleware"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/repositories"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
	"github.com/nicolesuntn-stack/willsun-garment-site/pkg/rabbitmq"
)

//go:embed data/products.json
var seedData []byte

// loadSeed parses the bundled catalog. It backs the in-memory store and the
// empty-backend fallback in the catalog service.
func loadSeed() ([]models.ProductRecord, error) {
	var doc struct {
		Items []models.ProductRecord `json:"items"`
	}
	if err := json.Unmarshal(seedData, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse bundled product data: %w", err)
	}
	return doc.Items, nil
}

// setDefaults registers every configuration key the service reads.
func setDefaults() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("PRODUCTS_FILE", "")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_TRANSLATE_MODEL", "gpt-4o-mini")
	viper.SetDefault("TRANSLATE_TIMEOUT", "20s")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 0)
	viper.SetDefault("SMTP_USER", "")
	viper.SetDefault("SMTP_PASS", "")
	viper.SetDefault("INQUIRY_TO_EMAIL", "nicolesuntn@gmail.com")
	viper.SetDefault("INQUIRY_FROM_EMAIL", "no-reply@willsun-garment.com")
	viper.SetDefault("INQUIRY_WEBHOOK_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()
}

// newProductRepository chooses the persistence backend once, from
// configuration, and injects it downstream. Order of preference: relational
// database, flat JSON file, seeded in-memory store.
func newProductRepository(seed []models.ProductRecord) (repositories.ProductRepository, error) {
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		driver := viper.GetString("DATABASE_DRIVER")
		var dialector gorm.Dialector
		switch driver {
		case "postgres":
			dialector = postgres.Open(dsn)
		case "sqlite":
			dialector = sqlite.Open(dsn)
		default:
			return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", driver)
		}

		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.AutoMigrate(&models.ProductRecord{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Printf("Using %s product store", driver)
		return repositories.NewGORMProductRepository(db), nil
	}

	if path := viper.GetString("PRODUCTS_FILE"); path != "" {
		log.Printf("Using file product store at %s", path)
		return repositories.NewFileProductRepository(path), nil
	}

	log.Println("No database or product file configured, using seeded in-memory store")
	return repositories.NewMemoryProductRepository(seed), nil
}

// NewApp builds the Fiber application with all routes wired. mqClient may
// be nil when no message broker is configured.
func NewApp(mqClient *rabbitmq.Client) (*fiber.App, error) {
	seed, err := loadSeed()
	if err != nil {
		return nil, err
	}

	productRepo, err := newProductRepository(seed)
	if err != nil {
		return nil, err
	}

	catalogService := services.NewCatalogService(productRepo, seed)
	translateService := services.NewTranslateService(services.TranslateConfig{
		APIKey:  viper.GetString("OPENAI_API_KEY"),
		Model:   viper.GetString("OPENAI_TRANSLATE_MODEL"),
		Timeout: viper.GetDuration("TRANSLATE_TIMEOUT"),
	})
	inquiryService := services.NewInquiryService(
		services.SMTPConfig{
			Host: viper.GetString("SMTP_HOST"),
			Port: viper.GetInt("SMTP_PORT"),
			User: viper.GetString("SMTP_USER"),
			Pass: viper.GetString("SMTP_PASS"),
			To:   viper.GetString("INQUIRY_TO_EMAIL"),
			From: viper.GetString("INQUIRY_FROM_EMAIL"),
		},
		viper.GetString("INQUIRY_WEBHOOK_URL"),
		mqClient,
	)

	adminHandler := handlers.NewAdminHandler(catalogService, translateService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	inquiryHandler := handlers.NewInquiryHandler(inquiryService)

	app := fiber.New()
	app.Use(logger.New())
	app.Use(locale.Redirect())

	api := app.Group("/api")
	catalogHandler.RegisterRoutes(api)
	inquiryHandler.RegisterRoutes(api)

	adminRoutes := api.Group("/admin", middleware.AdminAuth(viper.GetString("ADMIN_PASSWORD")))
	adminHandler.RegisterRoutes(adminRoutes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

func main() {
	setDefaults()

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// The broker is optional: without it, inquiry events are simply not
	// published and delivery falls back to the other channels.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	}

	app, err := NewApp(mqClient)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for inquiries...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received Inquiry Event (Tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil
			}
			if consumerErr := mqClient.ConsumeInquiryEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
