// README: Entry point; loads config, wires stores and services, serves the WhatsApp webhook and web chat.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/ai"
	"github.com/viniciusalbino/autoAtendeAI/internal/channel/whatsapp"
	"github.com/viniciusalbino/autoAtendeAI/internal/config"
	"github.com/viniciusalbino/autoAtendeAI/internal/conversation"
	httptransport "github.com/viniciusalbino/autoAtendeAI/internal/http"
	"github.com/viniciusalbino/autoAtendeAI/internal/http/handlers"
	"github.com/viniciusalbino/autoAtendeAI/internal/infra"
	"github.com/viniciusalbino/autoAtendeAI/internal/metrics"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/aiusage"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inbox"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/inventory"
	"github.com/viniciusalbino/autoAtendeAI/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Fatal("redis init", zap.Error(err))
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(registry)

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
	if err != nil {
		logger.Fatal("gemini init", zap.Error(err))
	}
	defer provider.Close()

	extractor := ai.NewExtractor(provider, ai.ExtractorConfig{
		Timeout: cfg.AI.Timeout,
		Retries: cfg.AI.Retries,
	}, logger.Named("extractor"), m)

	inventorySvc := inventory.NewService(inventory.NewStore(dbPool))
	dealershipSvc := dealership.NewService(dealership.NewStore(dbPool))

	var quota *aiusage.Service
	if cfg.MonthlyQuota > 0 {
		quota = aiusage.NewService(aiusage.NewStore(dbPool, cfg.MonthlyQuota))
	}

	orchestrator := conversation.New(extractor, inventorySvc, quota, conversation.Config{
		DebugReplies: cfg.DebugReplies,
	}, logger.Named("conversation"), m)

	sender := whatsapp.NewClient(whatsapp.Config{
		Token:         cfg.WhatsApp.Token,
		PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
		APIVersion:    cfg.WhatsApp.APIVersion,
	}, nil, logger.Named("whatsapp"))

	assistant := service.NewAssistant(
		orchestrator,
		dealershipSvc,
		inbox.NewStore(redisClient, cfg.Redis.InboxTTL),
		sender,
		logger.Named("assistant"),
	)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Webhook:     handlers.NewWebhookHandler(assistant, cfg.WhatsApp.VerifyToken, logger.Named("webhook")),
		Chat:        handlers.NewChatHandler(assistant, cfg.HTTP.CORSOrigins, logger.Named("chat")),
		Gatherer:    registry,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Logger:      logger.Named("http"),
	})

	server := httptransport.NewServer(cfg.HTTP.Addr, router)
	if err := httptransport.Run(ctx, server, logger); err != nil {
		logger.Fatal("http server", zap.Error(err))
	}
}
