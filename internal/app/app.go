package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"HiddenLight/internal/config"
	"HiddenLight/internal/content"
	"HiddenLight/internal/infrastructure/llm"
	"HiddenLight/internal/infrastructure/scheduler"
	"HiddenLight/internal/infrastructure/storage"
	"HiddenLight/internal/infrastructure/telegram"
	"HiddenLight/internal/logging"
	"HiddenLight/internal/ports"
	"HiddenLight/internal/prefs"
	"HiddenLight/internal/search"
	"HiddenLight/internal/service"
	"HiddenLight/internal/usecase"
)

// Application wires the record store, search engine, content services and
// background jobs into one runnable instance.
type Application struct {
	cfg config.Config
	log *slog.Logger

	store     *storage.SQLiteStore
	engine    *search.Engine
	registry  *content.Registry
	assistant ports.Assistant
	daily     ports.DailyScheduler

	Articles      *service.Articles
	Bookmarks     *service.Bookmarks
	Comments      *service.Comments
	Ratings       *service.Ratings
	Notifications *service.Notifications
	Preferences   *prefs.Store
	Session       *prefs.Session
}

// New builds the application from config. It opens the record store and
// preference file but does not seed or index yet; Run does.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := storage.Open(cfg.Database.Path, baseLogger.With("component", "storage"))
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	preferences, err := prefs.Open(cfg.Preferences.Path)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	var channel ports.NotificationChannel
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		channel = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	engine := search.NewEngine()

	a := &Application{
		cfg:      cfg,
		log:      baseLogger,
		store:    store,
		engine:   engine,
		registry: content.NewRegistry(),
		assistant: llm.New(llm.Config{
			APIKey:      cfg.Assistant.APIKey,
			Model:       cfg.Assistant.Model,
			Temperature: cfg.Assistant.Temperature,
		}, baseLogger.With("component", "assistant")),

		Articles:      service.NewArticles(store, engine, baseLogger.With("component", "articles")),
		Bookmarks:     service.NewBookmarks(store, cfg.Cache.ListTTL()),
		Comments:      service.NewComments(store, cfg.Cache.ListTTL()),
		Ratings:       service.NewRatings(store, cfg.Cache.AggregateTTL()),
		Notifications: service.NewNotifications(store, channel, baseLogger.With("component", "notifications")),
		Preferences:   preferences,
		Session:       &prefs.Session{},
	}
	return a, nil
}

// Run seeds and indexes, then starts the daily hadith job when enabled.
func (a *Application) Run(ctx context.Context) error {
	a.Session.SetLoading(true)
	defer a.Session.SetLoading(false)

	startup := usecase.NewStartup(usecase.StartupDeps{
		Store:    a.store,
		Registry: a.registry,
		Articles: a.Articles,
		Engine:   a.engine,
		Log:      a.log.With("component", "startup"),
	})
	if err := startup.Run(ctx); err != nil {
		a.Session.SetError(err)
		return err
	}

	if a.cfg.DailyDigest.Enabled {
		job := usecase.NewDailyHadith(a.Notifications, a.log.With("component", "daily"))
		a.daily = scheduler.NewDailyScheduler(a.cfg.DailyDigest.Interval())
		if err := a.daily.Start(ctx, func(t time.Time) {
			job.Run(ctx, t)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Close stops background jobs and releases the store.
func (a *Application) Close(ctx context.Context) error {
	if a.daily != nil {
		_ = a.daily.Stop(ctx)
	}
	return a.store.Close()
}

// Search answers a query against the live index.
func (a *Application) Search(query string, limit int) search.Response {
	if limit <= 0 {
		limit = a.cfg.Search.DefaultLimit
	}
	return a.engine.Search(query, search.Options{Limit: limit, IncludeExcerpts: true})
}

// Ask forwards a free-form question to the assistant.
func (a *Application) Ask(ctx context.Context, prompt string) string {
	return a.assistant.GenerateResponse(ctx, prompt)
}
