package main

import (
	"context"
	"log"

	api "consultant-backend/cmd/api"
	authDelivery "consultant-backend/internal/auth/delivery"
	authdomain "consultant-backend/internal/auth/domain"
	authRepo "consultant-backend/internal/auth/repository"
	authUsecase "consultant-backend/internal/auth/usecase"
	briefingDelivery "consultant-backend/internal/briefing/delivery"
	briefingdomain "consultant-backend/internal/briefing/domain"
	briefingRepo "consultant-backend/internal/briefing/repository"
	"consultant-backend/internal/briefing/scheduler"
	briefingUsecase "consultant-backend/internal/briefing/usecase"
	clientDelivery "consultant-backend/internal/client/delivery"
	clientdomain "consultant-backend/internal/client/domain"
	clientRepo "consultant-backend/internal/client/repository"
	clientUsecase "consultant-backend/internal/client/usecase"
	integrationDelivery "consultant-backend/internal/integration/delivery"
	integrationdomain "consultant-backend/internal/integration/domain"
	integrationRepo "consultant-backend/internal/integration/repository"
	integrationUsecase "consultant-backend/internal/integration/usecase"
	noteDelivery "consultant-backend/internal/note/delivery"
	notedomain "consultant-backend/internal/note/domain"
	noteRepo "consultant-backend/internal/note/repository"
	noteUsecase "consultant-backend/internal/note/usecase"
	"consultant-backend/internal/notification"
	notificationDelivery "consultant-backend/internal/notification/delivery"
	notificationdomain "consultant-backend/internal/notification/domain"
	notificationRepo "consultant-backend/internal/notification/repository"
	"consultant-backend/pkg/ai"
	"consultant-backend/pkg/calendar"
	"consultant-backend/pkg/chroma"
	"consultant-backend/pkg/config"
	"consultant-backend/pkg/database"
	"consultant-backend/pkg/fcm"
	"consultant-backend/pkg/search"
)

// tavilyAdapter adapts the Tavily client to the pipeline's
// SearchProvider interface.
type tavilyAdapter struct {
	client *search.TavilyClient
}

func (a *tavilyAdapter) Search(ctx context.Context, query string) ([]briefingdomain.ResearchItem, error) {
	results, err := a.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]briefingdomain.ResearchItem, 0, len(results))
	for _, r := range results {
		items = append(items, briefingdomain.ResearchItem{URL: r.URL, Content: r.Content})
	}
	return items, nil
}

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&clientdomain.Client{},
		&notedomain.MeetingNote{},
		&integrationdomain.CalendarCredential{},
		&briefingdomain.Briefing{},
		&notificationdomain.DeviceToken{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	clientRepository := clientRepo.NewGormClientRepository(db)
	noteRepository := noteRepo.NewGormNoteRepository(db)
	credentialRepository := integrationRepo.NewGormCredentialRepository(db)
	briefingRepository := briefingRepo.NewGormBriefingRepository(db)
	tokenRepository := notificationRepo.NewDeviceTokenRepository(db)

	// Google Calendar provider
	calendarProvider := calendar.NewService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	// Credential vault and calendar reader
	vault := integrationUsecase.NewCredentialVault(credentialRepository, calendarProvider)
	reader := integrationUsecase.NewCalendarReader(vault, calendarProvider)

	// AI synthesis service
	synthesizer, err := ai.NewSynthesizer(ai.Config{
		Provider:      ai.ProviderType(cfg.AIProvider),
		GeminiAPIKey:  cfg.GeminiAPIKey,
		OllamaBaseURL: cfg.OllamaBaseURL,
		OllamaModel:   cfg.OllamaModel,
	})
	if err != nil {
		log.Fatal("Failed to initialize AI service:", err)
	}
	log.Printf("AI service initialized with provider: %s", cfg.AIProvider)

	// Chroma client for semantic note search (optional)
	var vectorIndex noteUsecase.VectorIndex
	if cfg.ChromaAPIKey != "" {
		chromaClient, err := chroma.NewChromaClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Chroma client: %v. Semantic search will not be available.", err)
		} else {
			vectorIndex = chromaClient
			log.Println("Chroma client initialized successfully")
		}
	} else {
		log.Println("Warning: CHROMA_API_KEY not set. Semantic search will not be available.")
	}

	// Tavily web search (optional; the pipeline degrades without it)
	var searchProvider briefingUsecase.SearchProvider
	if cfg.TavilyAPIKey != "" {
		searchProvider = &tavilyAdapter{client: search.NewTavilyClient(cfg.TavilyAPIKey)}
	} else {
		log.Println("Warning: TAVILY_API_KEY not set. Briefings will have no external research.")
	}

	// FCM client (optional, notifications work without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("Warning: Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	}

	// Notification fan-out service (optional)
	var notifier briefingUsecase.Notifier
	notifService, err := notification.NewService(cfg.GoogleProjectID, cfg.PubSubTopic, tokenRepository, fcmClient, cfg.GoogleCredentials)
	if err != nil {
		log.Printf("Warning: Failed to initialize notification service: %v", err)
	} else {
		notifier = notifService
		defer notifService.Close()
	}

	// Initialize use cases (dependency injection)
	authUc := authUsecase.NewAuthUsecase(userRepository, cfg)
	clientUc := clientUsecase.NewClientUsecase(clientRepository)
	noteUc := noteUsecase.NewNoteUsecase(noteRepository, vectorIndex)

	// Briefing pipeline, worker pool and calendar scan scheduler
	pipeline := briefingUsecase.NewPipeline(noteUc, synthesizer, searchProvider, reader, briefingRepository, briefingUsecase.Timeouts{
		Calendar: cfg.CalendarTimeout,
		Search:   cfg.SearchTimeout,
		LLM:      cfg.LLMTimeout,
	})

	workers := briefingUsecase.NewWorkerService(pipeline, briefingRepository, notifier, cfg.BriefingWorkers, cfg.BriefingFreshness)
	workers.Start()
	defer workers.Stop()

	scanScheduler := scheduler.NewScanScheduler(credentialRepository, reader, briefingRepository, workers, cfg.ScanInterval, cfg.ScanLookahead, cfg.BriefingFreshness)
	scanScheduler.Start()
	defer scanScheduler.Stop()

	// HTTP delivery
	authHandler := authDelivery.NewAuthHandler(authUc)
	clientHandler := clientDelivery.NewClientHandler(clientUc)
	noteHandler := noteDelivery.NewNoteHandler(noteUc)
	briefingHandler := briefingDelivery.NewBriefingHandler(briefingRepository, workers)
	integrationHandler := integrationDelivery.NewIntegrationHandler(vault, reader, calendarProvider)
	notificationHandler := notificationDelivery.NewNotificationHandler(tokenRepository)

	handler := api.NewHandler(authUc, authHandler, clientHandler, noteHandler, briefingHandler, integrationHandler, notificationHandler, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
