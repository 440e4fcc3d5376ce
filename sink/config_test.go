package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigFromEnvironment(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := GetConfigFromEnvironment()
		require.NoError(t, err)
		assert.Equal(t, NewConfigWithDefaults(), c)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("TRACEBACK_SINK_DIR", "/var/log/tracebacks")
		t.Setenv("TRACEBACK_SINK_PRETTY", "false")

		c, err := GetConfigFromEnvironment()
		require.NoError(t, err)
		assert.Equal(t, Config{Dir: "/var/log/tracebacks", Pretty: false}, c)
	})

	t.Run("invalid bool", func(t *testing.T) {
		t.Setenv("TRACEBACK_SINK_PRETTY", "maybe")

		_, err := GetConfigFromEnvironment()
		assert.Error(t, err)
	})
}
