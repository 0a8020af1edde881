package aws

import (
	"context"
	"errors"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/aws/smithy-go"
)

// Message attribute names set on forwarded notifications.
const (
	AttrSource    = "source"
	AttrStatus    = "gateway_status"
	AttrReference = "reference"
	AttrSignature = "signature_valid"
)

// Publisher wraps an SQS client and a queue URL.
type Publisher struct {
	SQS      SQSAPI
	QueueURL string
}

// NewPublisher returns a Publisher bound to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{
		SQS:      sqsClient,
		QueueURL: queueURL,
	}
}

// PublishNotification forwards a raw gateway notification body. Empty
// attribute values are dropped; SQS rejects them.
func (p *Publisher) PublishNotification(ctx context.Context, body []byte, attributes map[string]string) (string, error) {
	if p == nil || p.SQS == nil || p.QueueURL == "" {
		return "", ErrNoQueue
	}
	if len(body) == 0 {
		return "", errors.New("publish notification: empty body")
	}

	input := &sqs.SendMessageInput{
		QueueUrl:    sdkaws.String(p.QueueURL),
		MessageBody: sdkaws.String(string(body)),
	}
	msgAttrs := map[string]sqstypes.MessageAttributeValue{}
	for k, v := range attributes {
		if v == "" {
			continue
		}
		msgAttrs[k] = sqstypes.MessageAttributeValue{
			DataType:    sdkaws.String("String"),
			StringValue: sdkaws.String(v),
		}
	}
	if len(msgAttrs) > 0 {
		input.MessageAttributes = msgAttrs
	}

	out, err := p.SQS.SendMessage(ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("send message (%s): %w", apiErr.ErrorCode(), err)
		}
		return "", fmt.Errorf("send message: %w", err)
	}
	return sdkaws.ToString(out.MessageId), nil
}

var ErrNoQueue = errors.New("publisher: no queue configured")

// IsQueueMissing reports whether err says the target queue does not exist.
func IsQueueMissing(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "AWS.SimpleQueueService.NonExistentQueue", "QueueDoesNotExist":
		return true
	}
	return false
}
