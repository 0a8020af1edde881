package main

import (
	"context"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/aws"
	"github.com/entrealasyraices/storefront/internal/config"
	"github.com/entrealasyraices/storefront/internal/handlers"
	"github.com/entrealasyraices/storefront/internal/logging"
	"github.com/entrealasyraices/storefront/internal/metrics"
)

func main() {
	cfg := config.Load()

	logger := logging.Must(cfg.Server.Env)
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if missing := cfg.Getnet.Missing(); len(missing) > 0 {
		logger.Warn("checkout disabled until configured", zap.Strings("missing", missing))
	}

	hc := handlers.HandlerConfig{
		Config:        cfg,
		Logger:        logger,
		Metrics:       metrics.New(),
		ExposeMetrics: cfg.Server.RunLocal,
	}

	// notifications are forwarded only when a queue is configured
	if cfg.Queue.NotificationsURL != "" {
		clients, err := aws.NewAWSClients(context.Background())
		if err != nil {
			logger.Fatal("failed to init aws clients", zap.Error(err))
		}
		hc.Publisher = aws.NewPublisher(clients.SQS, cfg.Queue.NotificationsURL)
	}

	r := handlers.SetupRouter(hc)

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.Server.RunLocal {
		addr := ":" + cfg.Server.Port
		logger.Info("running local server", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			logger.Fatal("failed to run local server", zap.Error(err))
		}
		return
	}

	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") == "" {
		logger.Warn("not running inside Lambda; set RUN_LOCAL=true for a local server")
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
