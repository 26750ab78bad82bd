// File: slotbook/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"slotbook/config"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	"slotbook/services/booking"
	"slotbook/services/calendar"
	"slotbook/services/dialogue"
	ai "slotbook/services/intelligence"
	"slotbook/services/temporal"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	cfg := config.AppConfig
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	loc, err := utils.ResolveLocation(cfg.Timezone, cfg.OrgLatitude, cfg.OrgLongitude)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to resolve timezone: %v", err)
	}
	logger.Info("reference timezone", zap.String("zone", loc.String()))

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	var closers []io.Closer

	// Conversation state.
	stateTTL := time.Duration(cfg.StateTTLMinutes) * time.Minute
	var store dialogue.Store
	switch cfg.StateBackend {
	case "redis":
		client := utils.GetStateCacheClient()
		store = dialogue.NewRedisStore(client, stateTTL)
		utils.StartHealthMonitor(rootCtx, client, 30*time.Second)
		closers = append(closers, client)
	default:
		store = dialogue.NewMemoryStore(stateTTL)
	}

	// Calendar capability.
	var cal calendar.Calendar
	switch cfg.CalendarBackend {
	case "ical":
		cal = calendar.NewICalCalendar(cfg.ICalPath)
	default:
		gcal, err := calendar.NewGoogleCalendar(rootCtx, cfg.GoogleServiceAccountFile, cfg.GoogleCalendarID, logger)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize google calendar: %v", err)
		}
		cal = gcal
	}

	extractor, extractorName := newExtractor(rootCtx, cfg, loc, logger)
	if c, ok := extractor.(io.Closer); ok {
		closers = append(closers, c)
	}

	// Voice turns are optional; without credentials the endpoint answers 503.
	var transcriber handlers.Transcriber
	if gt, err := ai.NewGoogleTranscriber(rootCtx, cfg.GoogleServiceAccountFile); err != nil {
		logger.Warn("speech-to-text disabled", zap.Error(err))
	} else {
		transcriber = gt
		closers = append(closers, gt)
	}

	utils.SetHealthStatus(utils.HealthStatus{
		StateBackend:    cfg.StateBackend,
		CalendarBackend: cfg.CalendarBackend,
		Extractor:       extractorName,
	})

	machine := dialogue.NewMachine(
		store,
		extractor,
		temporal.New(loc),
		booking.NewOrchestrator(cal, loc, logger),
		logger,
		dialogue.WithExtractTimeout(time.Duration(cfg.ExtractorTimeoutSeconds)*time.Second),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	chatHandler := handlers.NewChatHandler(machine, transcriber)
	routes.RegisterRoutes(router, handlers.NewHandlerBundle(chatHandler))

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "8000"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("main: close failed", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

// newExtractor picks the NL slot extractor. A provider that cannot be built
// degrades to pattern-only extraction instead of stopping the server, and every
// turn carries the degraded notice.
func newExtractor(ctx context.Context, cfg config.Config, loc *time.Location, logger *zap.Logger) (ai.SlotExtractor, string) {
	switch cfg.ExtractorProvider {
	case "gemini":
		g, err := ai.NewGeminiExtractor(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, loc, logger)
		if err != nil {
			logger.Warn("gemini extractor unavailable, using classic extraction", zap.Error(err))
			return ai.UnavailableExtractor{Provider: "gemini", Cause: err}, "unavailable"
		}
		return g, "gemini"
	case "openai":
		o, err := ai.NewOpenAIExtractor(cfg.OpenAIAPIKey, cfg.OpenAIModel, loc, logger)
		if err != nil {
			logger.Warn("openai extractor unavailable, using classic extraction", zap.Error(err))
			return ai.UnavailableExtractor{Provider: "openai", Cause: err}, "unavailable"
		}
		return o, "openai"
	case "none":
		return ai.NoopExtractor{}, "none"
	default:
		err := fmt.Errorf("unknown EXTRACTOR_PROVIDER %q", cfg.ExtractorProvider)
		logger.Warn("extractor unavailable, using classic extraction", zap.Error(err))
		return ai.UnavailableExtractor{Provider: cfg.ExtractorProvider, Cause: err}, "unavailable"
	}
}
