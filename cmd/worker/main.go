package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/aws"
	"github.com/entrealasyraices/storefront/internal/config"
	"github.com/entrealasyraices/storefront/internal/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.Must(cfg.Server.Env)
	defer func() { _ = logger.Sync() }()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		logger.Fatal("failed to init aws clients", zap.Error(err))
	}

	p := NewProcessor(aws.NewMetricPublisher(clients.CloudWatch, cfg.Metrics.Namespace), logger)

	// If RUN_LOCAL=true, process a single simulated SQS event and exit.
	if cfg.Server.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = fmt.Sprintf(`{"status":{"status":"APPROVED","date":%q},"requestId":1,"reference":"local-1"}`,
				time.Now().Format(time.RFC3339))
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{{MessageId: "local-1", Body: testBody}},
		}
		if _, err := p.Handle(context.Background(), event); err != nil {
			logger.Fatal("local handler error", zap.Error(err))
		}
		return
	}

	lambda.Start(p.Handle)
}
