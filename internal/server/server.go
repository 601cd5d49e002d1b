package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/farmfit/farmfit/internal/catalog"
	"github.com/farmfit/farmfit/internal/chat"
	"github.com/farmfit/farmfit/internal/database"
	"github.com/farmfit/farmfit/internal/equipment"
	"github.com/farmfit/farmfit/internal/gamification"
	"github.com/farmfit/farmfit/internal/handler"
	"github.com/farmfit/farmfit/internal/learning"
	"github.com/farmfit/farmfit/internal/logger"
	"github.com/farmfit/farmfit/internal/market"
	"github.com/farmfit/farmfit/internal/metrics"
	"github.com/farmfit/farmfit/internal/notification"
	"github.com/farmfit/farmfit/internal/telemetry"
	"github.com/farmfit/farmfit/internal/user"
	"github.com/farmfit/farmfit/internal/weather"
)

// Services bundles everything the HTTP surface depends on. Keeping it a
// struct avoids a constructor with a dozen positional arguments.
type Services struct {
	User         user.Service
	Gamification gamification.Service
	Notification notification.Service
	Chat         chat.Service
	Catalog      catalog.Service
	Telemetry    telemetry.Service
	Equipment    equipment.Service
	Market       market.Service
	Learning     learning.Service
	Weather      weather.Client
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
	services   Services
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// User routes
		userHandler := handler.NewUserHandler(svcs.User)
		r.Route("/user", func(r chi.Router) {
			r.Post("/register", userHandler.HandleRegister)
			r.Get("/profile", userHandler.HandleGetProfile)
			r.Post("/tier", userHandler.HandleChangeTier)
		})

		// Gamification routes
		gamificationHandler := handler.NewGamificationHandler(svcs.Gamification)
		r.Route("/gamification", func(r chi.Router) {
			r.Get("/achievements", gamificationHandler.HandleListAchievements)
			r.Get("/achievements/user", gamificationHandler.HandleGetUserAchievements)
			r.Get("/progress", gamificationHandler.HandleGetProgress)
			r.Get("/leaderboard", gamificationHandler.HandleGetLeaderboard)
			r.Get("/quests", gamificationHandler.HandleGetActiveQuests)
			r.Get("/quests/progress", gamificationHandler.HandleGetQuestProgress)
			r.Post("/quests/claim", gamificationHandler.HandleClaimQuest)
			r.Post("/actions", gamificationHandler.HandleRecordAction)
			r.Post("/sustainability", gamificationHandler.HandleUpdateSustainability)
		})

		// Notification routes
		notificationHandler := handler.NewNotificationHandler(svcs.Notification)
		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", notificationHandler.HandleList)
			r.Post("/read", notificationHandler.HandleMarkRead)
		})

		// Chat routes
		chatHandler := handler.NewChatHandler(svcs.Chat)
		r.Route("/chat", func(r chi.Router) {
			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", chatHandler.HandleListRooms)
				r.Post("/", chatHandler.HandleCreateRoom)
				r.Post("/join", chatHandler.HandleJoinRoom)
				r.Post("/leave", chatHandler.HandleLeaveRoom)
			})
			r.Route("/messages", func(r chi.Router) {
				r.Get("/", chatHandler.HandleGetMessages)
				r.Post("/", chatHandler.HandlePostMessage)
			})
		})

		// Catalog routes
		catalogHandler := handler.NewCatalogHandler(svcs.Catalog)
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/tiers", catalogHandler.HandleListTiers)
			r.Get("/modules", catalogHandler.HandleListModules)
			r.Get("/hemp-varieties", catalogHandler.HandleListHempVarieties)
			r.Get("/hemp-varieties/detail", catalogHandler.HandleGetHempVariety)
			r.Get("/heritage-crops", catalogHandler.HandleListHeritageCrops)
			r.Get("/resources", catalogHandler.HandleListResources)
		})

		// Hemp analytics routes (tier gated)
		hempHandler := handler.NewHempHandler(svcs.User, svcs.Catalog)
		r.Route("/hemp", func(r chi.Router) {
			r.Post("/quality", hempHandler.HandleAnalyzeQuality)
			r.Post("/compliance", hempHandler.HandleCheckCompliance)
			r.Post("/harvest-window", hempHandler.HandleHarvestWindow)
			r.Post("/optimize", hempHandler.HandleOptimizeCannabinoid)
		})

		// Telemetry routes
		telemetryHandler := handler.NewTelemetryHandler(svcs.Telemetry)
		r.Route("/telemetry", func(r chi.Router) {
			r.Post("/readings", telemetryHandler.HandleIngest)
			r.Get("/readings", telemetryHandler.HandleRecentReadings)
			r.Get("/stats", telemetryHandler.HandleStats)
			r.Get("/trend", telemetryHandler.HandleTrend)
		})

		// Equipment routes
		equipmentHandler := handler.NewEquipmentHandler(svcs.Equipment)
		r.Route("/equipment", func(r chi.Router) {
			r.Get("/", equipmentHandler.HandleListForOwner)
			r.Post("/", equipmentHandler.HandleRegister)
			r.Get("/detail", equipmentHandler.HandleGet)
			r.Post("/status", equipmentHandler.HandleChangeStatus)
		})

		// Market routes (queries are tier gated)
		marketHandler := handler.NewMarketHandler(svcs.Market, svcs.User, svcs.Catalog)
		r.Route("/market", func(r chi.Router) {
			r.Post("/prices", marketHandler.HandleRecordPrice)
			r.Get("/prices/latest", marketHandler.HandleLatestPrices)
			r.Get("/prices/history", marketHandler.HandlePriceHistory)
			r.Get("/prices/summary", marketHandler.HandleSummarize)
		})

		// Learning routes
		learningHandler := handler.NewLearningHandler(svcs.Learning)
		r.Route("/learning", func(r chi.Router) {
			r.Get("/guides", learningHandler.HandleListGuides)
			r.Get("/guides/detail", learningHandler.HandleGetGuide)
			r.Get("/guides/beginner", learningHandler.HandleBeginnerPlants)
			r.Get("/guides/stage", learningHandler.HandleStageGuide)
			r.Post("/recommend", learningHandler.HandleRecommend)
			r.Post("/lessons/complete", learningHandler.HandleCompleteLesson)
		})

		// Weather routes
		weatherHandler := handler.NewWeatherHandler(svcs.Weather)
		r.Route("/weather", func(r chi.Router) {
			r.Get("/current", weatherHandler.HandleCurrent)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool:   dbPool,
		services: svcs,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		log.Info("Request started",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, "X-API-Key") || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{"[REDACTED]"}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug("Request headers", "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info("Server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
