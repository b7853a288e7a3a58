package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	httpadapter "github.com/thavon/voice-lead-service/internal/adapters/http"
	"github.com/thavon/voice-lead-service/internal/assistant"
	"github.com/thavon/voice-lead-service/internal/cache"
	"github.com/thavon/voice-lead-service/internal/config"
	"github.com/thavon/voice-lead-service/internal/prompts"
	"github.com/thavon/voice-lead-service/internal/repository"
	"github.com/thavon/voice-lead-service/internal/services/call"
	"github.com/thavon/voice-lead-service/pkg/logger"
	"github.com/thavon/voice-lead-service/pkg/mailer"
	"github.com/thavon/voice-lead-service/pkg/redis"
	"github.com/thavon/voice-lead-service/pkg/usage"
	"go.uber.org/zap"
)

// HandlerManager manages all handlers and their initialization
type HandlerManager struct {
	config      *config.ServiceConfig
	repoManager repository.RepositoryManager

	webhookHandler      *VapiWebhookHandler
	outboundCallHandler *OutboundCallHandler
	organizationHandler *OrganizationHandler
	leadHandler         *LeadHandler
	callLogHandler      *CallLogHandler
}

// NewHandlerManager creates and initializes all handlers and services
func NewHandlerManager(cfg *config.ServiceConfig) (*HandlerManager, error) {
	repoManager, err := repository.NewRepositoryManager()
	if err != nil {
		logger.Base().Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	// Redis is optional: without it the assistant-request lookup goes
	// straight to the database.
	redisSvc, err := redis.NewRedisService(&redis.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err != nil {
		logger.Base().Warn("failed to initialize redis, running without lookup cache", zap.Error(err))
		redisSvc = nil
	}

	var redisIface redis.RedisServiceInterface
	if redisSvc != nil {
		redisIface = redisSvc
	}
	orgCache := cache.NewOrgLookupCache(repoManager.Organization(), redisIface)

	builder := assistant.NewBuilder(prompts.NewGenerator())
	usageService := usage.NewService(repoManager.CallLog())
	vapiClient := httpadapter.NewVapiClient(cfg.VapiAPIKey, cfg.VapiBaseURL)

	var notify call.NotificationSender
	if cfg.ResendAPIKey != "" {
		notify = mailer.NewClient(cfg.ResendAPIKey, cfg.NotifyFrom)
	} else {
		logger.Base().Warn("no mail api key configured, call summaries disabled")
	}
	reportService := call.NewReportService(repoManager, notify)

	return &HandlerManager{
		config:              cfg,
		repoManager:         repoManager,
		webhookHandler:      NewVapiWebhookHandler(orgCache, builder, reportService),
		outboundCallHandler: NewOutboundCallHandler(repoManager, usageService, builder, vapiClient, cfg.VapiPhoneNumberID),
		organizationHandler: NewOrganizationHandler(repoManager.Organization(), orgCache),
		leadHandler:         NewLeadHandler(repoManager),
		callLogHandler:      NewCallLogHandler(repoManager, usageService),
	}, nil
}

// SetupAllRoutes sets up all routes with middleware
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	if hm.config.EnableCORS {
		router.Use(CORSMiddleware)
	}
	router.Use(GlobalLoggingMiddleware)

	// Public webhook endpoint for the voice platform
	hm.webhookHandler.SetupVapiWebhookRoutes(router)

	// Authenticated dashboard API
	api := router.PathPrefix("/api").Subrouter()
	api.Use(AuthMiddleware(hm.config.SecretKey))
	hm.outboundCallHandler.SetupOutboundCallRoutes(api)
	hm.organizationHandler.SetupOrganizationRoutes(api)
	hm.leadHandler.SetupLeadRoutes(api)
	hm.callLogHandler.SetupCallLogRoutes(api)

	router.HandleFunc("/health", hm.HealthCheck).Methods("GET")
}

// HealthCheck godoc
// @Summary Service health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string "Service healthy"
// @Failure 503 {object} map[string]string "Database unreachable"
// @Router /health [get]
func (hm *HandlerManager) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := hm.repoManager.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  "database unreachable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"instance": hm.config.InstanceID,
		"time":     time.Now().UTC().Format(time.RFC3339),
	})
}

// Close releases backing resources
func (hm *HandlerManager) Close() error {
	return hm.repoManager.Close()
}
