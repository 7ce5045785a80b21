// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/http/handlers"
	"github.com/viniciusalbino/autoAtendeAI/internal/http/middleware"
)

type RouterDeps struct {
	Webhook     *handlers.WebhookHandler
	Chat        *handlers.ChatHandler
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
	Logger      *zap.Logger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logging(deps.Logger), middleware.Recovery(deps.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/whatsapp/webhook", deps.Webhook.Verify)
	r.POST("/whatsapp/webhook", deps.Webhook.Receive)

	api := r.Group("/api")
	api.Use(cors.New(corsConfig(deps.CORSOrigins)))
	api.POST("/chat", deps.Chat.Chat)
	api.OPTIONS("/chat", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	r.GET("/ws/chat", deps.Chat.Stream)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodPost, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", middleware.RequestIDHeader}
	cfg.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
