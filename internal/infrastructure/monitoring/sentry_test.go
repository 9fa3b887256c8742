package monitoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issueflow/internal/shared/config"
)

func TestInit_WithoutDSNIsDisabled(t *testing.T) {
	ok, err := Init(config.SentryConfig{}, "test")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, Enabled())

	assert.NotPanics(t, func() {
		CaptureException(errors.New("boom"), map[string]string{"path": "/x"}, nil)
		CapturePanic("boom", nil)
		Flush()
	})
}

func TestInit_RejectsMalformedDSN(t *testing.T) {
	ok, err := Init(config.SentryConfig{DSN: "not a dsn"}, "test")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, Enabled())
}
