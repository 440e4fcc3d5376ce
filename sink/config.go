package sink

import "github.com/kelseyhightower/envconfig"

const (
	defaultDir    = "errors"
	defaultPretty = true
)

// Config represents configuration options for FileSink.
type Config struct {
	Dir    string `envconfig:"TRACEBACK_SINK_DIR"`
	Pretty bool   `envconfig:"TRACEBACK_SINK_PRETTY"`
}

// NewConfigWithDefaults returns a Config object with default values already
// applied. Callers are then free to override them.
func NewConfigWithDefaults() Config {
	return Config{
		Dir:    defaultDir,
		Pretty: defaultPretty,
	}
}

// GetConfigFromEnvironment returns configuration derived from environment
// variables on top of the defaults.
func GetConfigFromEnvironment() (Config, error) {
	c := NewConfigWithDefaults()
	err := envconfig.Process("", &c)
	return c, err
}
