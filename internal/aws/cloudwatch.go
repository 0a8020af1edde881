package aws

import (
	"context"
	"fmt"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricPublisher puts count datums into one CloudWatch namespace.
type MetricPublisher struct {
	CW        CloudWatchAPI
	Namespace string
}

func NewMetricPublisher(cw CloudWatchAPI, namespace string) *MetricPublisher {
	return &MetricPublisher{CW: cw, Namespace: namespace}
}

// Count records value under name at ts, with one dimension per entry of dims.
func (m *MetricPublisher) Count(ctx context.Context, name string, value float64, dims map[string]string, ts time.Time) error {
	datum := cwtypes.MetricDatum{
		MetricName: sdkaws.String(name),
		Unit:       cwtypes.StandardUnitCount,
		Value:      sdkaws.Float64(value),
		Timestamp:  sdkaws.Time(ts),
	}
	for k, v := range dims {
		datum.Dimensions = append(datum.Dimensions, cwtypes.Dimension{
			Name:  sdkaws.String(k),
			Value: sdkaws.String(v),
		})
	}

	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  sdkaws.String(m.Namespace),
		MetricData: []cwtypes.MetricDatum{datum},
	})
	if err != nil {
		return fmt.Errorf("put metric %s: %w", name, err)
	}
	return nil
}
