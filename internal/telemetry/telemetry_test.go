package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"itinera/internal/config"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_LazyCollectorConnection(t *testing.T) {
	// grpc.NewClient does not dial until the first export.
	cfg := &config.Config{OTLPEndpoint: "127.0.0.1:1", OTLPInsecure: true}
	shutdown, err := Setup(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// Flushing to an unreachable collector may fail; shutdown must still return.
	_ = shutdown(ctx)
}
