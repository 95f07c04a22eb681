// Package env wraps the process environment: the build mode the binary
// runs in and lookups of environment variables.
package env

import (
	"github.com/louiss0/vulkan-sdk-setup/build_info"
)

// GoEnv carries the build mode (development, production or debug). Debug
// builds log at debug level without --debug.
type GoEnv struct {
	goEnv string
}

func NewGoEnv() GoEnv {
	return GoEnv{build_info.GO_MODE.String()}
}

// Mode returns the raw mode string.
func (e GoEnv) Mode() string {
	return e.goEnv
}

func (e GoEnv) IsDebugMode() bool {
	return e.goEnv == "debug"
}

func (e GoEnv) IsProductionMode() bool {
	return e.goEnv == "production"
}

// ExecuteIfModeIsProduction runs cb only for release builds, which is where
// the info-level summaries are logged.
func (e GoEnv) ExecuteIfModeIsProduction(cb func()) {
	if e.IsProductionMode() {
		cb()
	}
}
