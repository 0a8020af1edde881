package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	prod, err := New("production")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))

	dev, err := New("development")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
}

func TestMust(t *testing.T) {
	assert.NotNil(t, Must("test"))
}

func TestMust_PanicsOnBuildError(t *testing.T) {
	assert.PanicsWithError(t, "logging: build logger: open /nonexistent/app.log: no such file", func() {
		must(nil, errors.New("open /nonexistent/app.log: no such file"))
	})
}
