package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/aws"
	"github.com/entrealasyraices/storefront/internal/getnet"
)

// MetricNotifications is the CloudWatch metric counting payment notifications.
const MetricNotifications = "PaymentNotifications"

// PutMetricData rejects datums older than two weeks or more than two hours
// ahead; the gateway date is only used inside a narrower window.
const (
	maxDatumAge  = 13 * 24 * time.Hour
	maxDatumLead = time.Hour
)

// MetricSink records one count datum. *aws.MetricPublisher implements it.
type MetricSink interface {
	Count(ctx context.Context, name string, value float64, dims map[string]string, ts time.Time) error
}

// Processor turns forwarded gateway notifications into CloudWatch datums.
type Processor struct {
	sink   MetricSink
	logger *zap.Logger
	now    func() time.Time
}

func NewProcessor(sink MetricSink, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{sink: sink, logger: logger, now: time.Now}
}

// Handle processes an SQS batch. Malformed bodies and notifications whose
// signature failed verification are logged and dropped. A failed metric put is
// reported as a batch item failure, so only that message is redelivered.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.Error("worker error", zap.String("message_id", rec.MessageId), zap.Error(err))
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: rec.MessageId})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	if attr(rec, aws.AttrSignature) == "false" {
		p.logger.Warn("dropping notification with invalid signature",
			zap.String("message_id", rec.MessageId),
			zap.String("reference", attr(rec, aws.AttrReference)))
		return nil
	}

	n, err := getnet.ParseNotification([]byte(rec.Body))
	if err != nil {
		p.logger.Warn("dropping malformed notification",
			zap.String("message_id", rec.MessageId),
			zap.Error(err))
		return nil
	}

	status := getnet.MetricStatus(n.Status.Status)
	ts := p.datumTime(n.Status.Date)

	p.logger.Info("notification received",
		zap.String("reference", n.Reference),
		zap.String("status", n.Status.Status),
		zap.String("signature_valid", attr(rec, aws.AttrSignature)))

	return p.sink.Count(ctx, MetricNotifications, 1, map[string]string{"Status": status}, ts)
}

// datumTime uses the gateway's status date when it is close enough to now for
// CloudWatch to accept, and now otherwise.
func (p *Processor) datumTime(date string) time.Time {
	now := p.now()
	d, err := time.Parse(time.RFC3339, date)
	if err != nil || d.Before(now.Add(-maxDatumAge)) || d.After(now.Add(maxDatumLead)) {
		return now
	}
	return d
}

func attr(rec events.SQSMessage, name string) string {
	if a, ok := rec.MessageAttributes[name]; ok && a.StringValue != nil {
		return *a.StringValue
	}
	return ""
}
