package middleware

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/iho/gowallet/internal/infrastructure/logging"
	"github.com/iho/gowallet/internal/infrastructure/metrics"
)

var testInfo = &grpc.UnaryServerInfo{FullMethod: "/gowallet.v1.WalletService/Deposit"}

func TestRecoveryInterceptor(t *testing.T) {
	var buf bytes.Buffer
	interceptor := RecoveryInterceptor(zerolog.New(&buf))

	_, err := interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("panic not logged: %s", buf.String())
	}
}

func TestLoggingInterceptorPropagatesRequestID(t *testing.T) {
	var buf bytes.Buffer
	interceptor := LoggingInterceptor(zerolog.New(&buf))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "req-7"))
	var seen string
	_, err := interceptor(ctx, nil, testInfo, func(ctx context.Context, req any) (any, error) {
		seen = logging.RequestIDFrom(ctx)
		return nil, status.Error(codes.NotFound, "nope")
	})

	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound to pass through, got %v", err)
	}
	if seen != "req-7" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if !strings.Contains(buf.String(), `"code":"NotFound"`) {
		t.Fatalf("unexpected log: %s", buf.String())
	}
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	interceptor := MetricsInterceptor(m)

	_, _ = interceptor(context.Background(), nil, testInfo, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})

	if got := testutil.ToFloat64(m.GRPCRequests.WithLabelValues(testInfo.FullMethod, "OK")); got != 1 {
		t.Fatalf("expected 1 request recorded, got %v", got)
	}
}
