// Package envmeta reads environment identifiers (project, computer name,
// username) and attaches them to traceback errors.
package envmeta

import (
	"github.com/kelseyhightower/envconfig"

	traceback "github.com/xgx-io/xgx-traceback"
)

// Config holds the identifiers attached by Apply.
type Config struct {
	Project      string `envconfig:"TRACEBACK_PROJECT" default:"Unknown due to TRACEBACK_PROJECT missing"`
	ComputerName string `envconfig:"COMPUTERNAME" default:"Unknown due to COMPUTERNAME missing"`
	Username     string `envconfig:"USERNAME" default:"Unknown due to USERNAME missing"`
}

// GetConfigFromEnvironment returns the identifiers found in the environment,
// with a descriptive placeholder for each variable that is not set.
func GetConfigFromEnvironment() (Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}

// Apply returns a copy of e carrying all three identifiers from c.
func Apply(e *traceback.Error, c Config) *traceback.Error {
	return e.
		WithProject(c.Project).
		WithComputerName(c.ComputerName).
		WithUsername(c.Username)
}

// FromEnvironment is GetConfigFromEnvironment followed by Apply. On a
// configuration error e is returned unchanged alongside the error.
func FromEnvironment(e *traceback.Error) (*traceback.Error, error) {
	c, err := GetConfigFromEnvironment()
	if err != nil {
		return e, err
	}
	return Apply(e, c), nil
}
