package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/SigNoz/cart-graphql-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func TestParseHeaders(t *testing.T) {
	headers := parseHeaders("signoz-ingestion-key=abc, x-team = cart ,broken")

	assert.Equal(t, map[string]string{
		"signoz-ingestion-key": "abc",
		"x-team":               "cart",
	}, headers)
	assert.Empty(t, parseHeaders(""))
}

func TestRecordCartOperation(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewAppMetrics(provider.Meter("test"), "cart-test")
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordCartOperation(ctx, "add_to_cart", OutcomeSuccess)
	m.RecordCartOperation(ctx, "add_to_cart", OutcomeSuccess)
	m.RecordCartOperation(ctx, "add_to_cart", OutcomeRejected)
	m.RecordDBQuery(ctx, "SELECT", "products", "SELECT 1", time.Now(), true)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	sum := findSum(t, rm, "cart_operations_total")
	var success, rejected int64
	for _, dp := range sum.DataPoints {
		outcome, _ := dp.Attributes.Value(attribute.Key("outcome"))
		switch outcome.AsString() {
		case OutcomeSuccess:
			success = dp.Value
		case OutcomeRejected:
			rejected = dp.Value
		}
		service, ok := dp.Attributes.Value(attribute.Key("service.name"))
		assert.True(t, ok)
		assert.Equal(t, "cart-test", service.AsString())
	}
	assert.Equal(t, int64(2), success)
	assert.Equal(t, int64(1), rejected)

	dbSum := findSum(t, rm, "db.client.queries.count")
	require.Len(t, dbSum.DataPoints, 1)
	assert.Equal(t, int64(1), dbSum.DataPoints[0].Value)
}

func TestInitMetrics_Disabled(t *testing.T) {
	cfg := &config.Config{
		MetricsEnabled:     false,
		OTELServiceName:    "cart-test",
		OTELServiceVersion: "test",
	}

	m, provider, err := InitMetrics(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m)
	require.NotNil(t, provider)
	assert.NoError(t, provider.Shutdown(context.Background()))
}

func findSum(t *testing.T, rm metricdata.ResourceMetrics, name string) metricdata.Sum[int64] {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name == name {
				sum, ok := md.Data.(metricdata.Sum[int64])
				require.True(t, ok, "metric %s is not an int64 sum", name)
				return sum
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return metricdata.Sum[int64]{}
}
