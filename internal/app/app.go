package app

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/handlers"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/services/asana"
	"github.com/ternarybob/reparo/internal/services/classify"
	"github.com/ternarybob/reparo/internal/services/mailer"
	"github.com/ternarybob/reparo/internal/services/scheduler"
	"github.com/ternarybob/reparo/internal/services/webhooksec"
	"github.com/ternarybob/reparo/internal/services/workflow"
	"github.com/ternarybob/reparo/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	StorageManager interfaces.StorageManager

	// Pipeline services
	TaskService   interfaces.TaskAPI
	Classifier    *classify.Classifier
	MailerService *mailer.Service
	Orchestrator  interfaces.Orchestrator
	Sweeper       *workflow.Sweeper
	SecretStore   *webhooksec.Store

	// Scheduled sweep
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler     *handlers.APIHandler
	WebhookHandler *handlers.WebhookHandler
	AdminHandler   *handlers.AdminHandler
}

// New initializes the application with all dependencies
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	// Delivery log storage
	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	app.StorageManager = storageManager

	// Pipeline services
	app.TaskService = asana.NewClient(cfg.Asana, logger)
	app.Classifier = classify.New(cfg.Asana.RepairProjectGID, logger)
	app.MailerService = mailer.NewService(cfg.Email, logger)
	app.SecretStore = webhooksec.NewStore()

	app.Orchestrator = workflow.NewOrchestrator(
		app.TaskService,
		app.MailerService,
		cfg.Asana.SubtasksProjectGID,
		logger,
	)

	lookback, err := time.ParseDuration(cfg.Scheduler.Lookback)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler lookback: %w", err)
	}
	app.Sweeper = workflow.NewSweeper(
		app.TaskService,
		app.Classifier,
		app.Orchestrator,
		cfg.Asana.RepairProjectGID,
		lookback,
		logger,
	)

	app.SchedulerService = scheduler.NewService(app.Sweeper.Sweep, logger)

	// HTTP handlers
	deliveries := storageManager.DeliveryStorage()
	app.APIHandler = handlers.NewAPIHandler()
	app.WebhookHandler = handlers.NewWebhookHandler(
		app.SecretStore,
		app.TaskService,
		app.Classifier,
		app.Orchestrator,
		deliveries,
		logger,
	)
	app.AdminHandler = handlers.NewAdminHandler(
		cfg,
		app.TaskService,
		app.Classifier,
		app.Orchestrator,
		app.MailerService,
		app.Sweeper,
		deliveries,
		logger,
	)

	logger.Info().
		Str("repair_project", cfg.Asana.RepairProjectGID).
		Bool("email_configured", app.MailerService.IsConfigured()).
		Msg("Application initialized")

	return app, nil
}

// StartScheduler starts the periodic sweep if enabled in configuration
func (a *App) StartScheduler() error {
	if !a.Config.Scheduler.Enabled {
		a.Logger.Info().Msg("Scheduled sweep disabled")
		return nil
	}
	return a.SchedulerService.Start(a.Config.Scheduler.Schedule)
}

// Close releases application resources
func (a *App) Close() {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}
	if a.StorageManager != nil {
		if err := a.StorageManager.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close storage")
		}
	}
}
