package metrics

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace             = "Comeback/API"
	httpStatusServerError = 500
	cloudwatchTimeout     = 5 * time.Second
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client
func NewClient(ctx context.Context, environment string) (*Client, error) {
	// Only enable in production
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// RecordAPIRequest publishes a request count (APIRequests or APIErrors) and its latency
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	name := "APIRequests"
	if statusCode >= httpStatusServerError {
		name = "APIErrors"
	}
	dims := m.dimensions("Endpoint", endpoint)

	go m.publish(
		datum(name, 1, types.StandardUnitCount, dims),
		datum("APILatency", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dims),
	)
}

// RecordTokenUsage publishes completion token counts per model
func (m *Client) RecordTokenUsage(model string, totalTokens, inputTokens, outputTokens int) {
	if !m.enabled {
		return
	}

	dims := m.dimensions("Model", model)
	go m.publish(
		datum("LLMTokens/Total", float64(totalTokens), types.StandardUnitCount, dims),
		datum("LLMTokens/Input", float64(inputTokens), types.StandardUnitCount, dims),
		datum("LLMTokens/Output", float64(outputTokens), types.StandardUnitCount, dims),
	)
}

// RecordGeneration publishes one generation per outcome and how long it took
func (m *Client) RecordGeneration(duration time.Duration, outcome Outcome) {
	if !m.enabled {
		return
	}

	dims := m.dimensions("Outcome", string(outcome))
	go m.publish(
		datum("Generations", 1, types.StandardUnitCount, dims),
		datum("GenerationDuration", float64(duration.Milliseconds()), types.StandardUnitMilliseconds, dims),
	)
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	return []types.Dimension{
		{Name: aws.String(name), Value: aws.String(value)},
		{Name: aws.String("Environment"), Value: aws.String(m.environment)},
	}
}

func datum(name string, value float64, unit types.StandardUnit, dims []types.Dimension) types.MetricDatum {
	return types.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       unit,
		Timestamp:  aws.Time(time.Now()),
		Dimensions: dims,
	}
}

// publish sends the batch in a single PutMetricData call
func (m *Client) publish(data ...types.MetricDatum) {
	if !m.enabled || m.client == nil || len(data) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cloudwatchTimeout)
	defer cancel()

	_, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(namespace),
		MetricData: data,
	})
	if err != nil {
		log.Printf("Failed to publish %d CloudWatch metrics (first: %s): %v", len(data), aws.ToString(data[0].MetricName), err)
	}
}
