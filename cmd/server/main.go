package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/approvals-api/configs"
	"github.com/maheshrc27/approvals-api/internal/api/handlers"
	"github.com/maheshrc27/approvals-api/internal/api/middleware"
	"github.com/maheshrc27/approvals-api/internal/bridge"
	job "github.com/maheshrc27/approvals-api/internal/jobs"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/queue"
	"github.com/maheshrc27/approvals-api/internal/repository"
	"github.com/maheshrc27/approvals-api/internal/service"
	"github.com/maheshrc27/approvals-api/internal/transfer"
	"github.com/maheshrc27/approvals-api/pkg/utils"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()
	loc := cfg.Location()

	var db *sql.DB
	var historyRepo repository.ActionHistoryRepository
	if cfg.PostgresURI != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("Database is unreachable: %v", err)
		}

		historyRepo = repository.NewActionHistoryRepository(db)
		if err := historyRepo.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare action history table: %v", err)
		}
	} else {
		log.Println("Warning: POSTGRES_URI is not set, action history is disabled")
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: cfg.FrontendURL != "*",
		MaxAge:           3600,
	}))

	bridgeClient := bridge.NewClient(cfg.BridgeURL, cfg.BridgeToken, &http.Client{})
	normalizer := transfer.NewNormalizer(loc)
	payloads := transfer.NewPayloadBuilder(loc, time.Now)

	ideaStore := repository.NewEntityStore(func(i models.Idea) string { return i.ID })
	publicationStore := repository.NewEntityStore(func(p models.Publication) string { return p.ID })

	storageService, err := service.NewStorageService(context.Background(), cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to configure storage: %v", err)
	}

	historyService := service.NewHistoryService(historyRepo)
	ideaService := service.NewIdeaService(bridgeClient, normalizer, payloads, ideaStore, publicationStore, historyService)
	publicationService := service.NewPublicationService(bridgeClient, normalizer, payloads, publicationStore, storageService, queue.NewScheduler(client), historyService)
	summaryService := service.NewSummaryService(bridgeClient, time.Now)

	authMiddleware := middleware.NewAuthMiddleware(*cfg)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	ideas := handlers.NewIdeaHandler(ideaService, normalizer)
	api.Get("/ideas", ideas.ListIdeas)
	api.Post("/ideas", ideas.CreateIdea)
	api.Put("/ideas/:id", ideas.UpdateIdea)
	api.Delete("/ideas/:id", ideas.DeleteIdea)
	api.Post("/ideas/:id/submit", ideas.SubmitIdea)
	api.Post("/ideas/:id/approve", ideas.ApproveIdea)
	api.Post("/ideas/:id/adjust", ideas.AdjustIdea)
	api.Post("/ideas/:id/reject", ideas.RejectIdea)
	api.Post("/ideas/:id/publication", ideas.CreatePublication)

	publications := handlers.NewPublicationHandler(publicationService, normalizer)
	api.Get("/publications", publications.ListPublications)
	api.Put("/publications/:id", publications.UpdatePublication)
	api.Delete("/publications/:id", publications.DeletePublication)
	api.Post("/publications/:id/submit", publications.SubmitPublication)
	api.Post("/publications/:id/approve", publications.ApprovePublication)
	api.Post("/publications/:id/reject", publications.RejectPublication)
	api.Post("/publications/:id/schedule", publications.SchedulePublication)
	api.Post("/publications/:id/publish", publications.PublishPublication)
	api.Post("/publications/:id/media", publications.UploadMedia)
	api.Delete("/publications/:id/media", publications.RemoveMedia)

	summary := handlers.NewSummaryHandler(summaryService)
	api.Get("/summary", summary.GetSummary)

	history := handlers.NewHistoryHandler(historyService)
	api.Get("/history", history.ListHistory)

	media := handlers.NewMediaHandler(utils.PublicURLOptions{BaseURL: cfg.Storage.BaseURL, Bucket: cfg.Storage.Bucket})
	api.Get("/media/url", media.PublicURL)

	// cron jobs
	refreshJob := job.NewSummaryRefreshJob(summaryService, publicationService, ideaService)

	c := cron.New()
	if err := refreshJob.Schedule(c, cfg.SummaryRefresh); err != nil {
		log.Fatalf("Invalid SUMMARY_REFRESH spec %q: %v", cfg.SummaryRefresh, err)
	}
	c.Start()
	defer c.Stop()

	//queue
	queueW := queue.NewQueue(publicationService)

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypePublicationDue, queueW.HandlePublicationDueTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	if db == nil {
		return
	}
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
