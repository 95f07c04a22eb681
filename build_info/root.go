// Package build_info holds the values injected at link time for vksetup.
// All variables are capitalised and use the `BuildInfo` type.
// Validation happens in init so a bad release build fails fast.
package build_info

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// BuildInfo is a string set through -ldflags.
type BuildInfo string

func (value BuildInfo) String() string {
	return string(value)
}

// Raw values overridden with -X by the release pipeline.
var (
	rawCLI_VERSION = "dev"
	rawGO_MODE     = "development"
	rawBUILD_DATE  = "unknown"
	rawCI          = "false"
)

var (
	CLI_VERSION BuildInfo
	GO_MODE     BuildInfo
	BUILD_DATE  BuildInfo
	CI          BuildInfo
)

var AllowedModes = []string{"development", "production", "debug"}

const semverPattern = `^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`

func init() {
	CLI_VERSION = BuildInfo(strings.TrimPrefix(rawCLI_VERSION, "v"))
	GO_MODE = BuildInfo(rawGO_MODE)
	BUILD_DATE = BuildInfo(normalizeBuildDate(rawBUILD_DATE))
	CI = BuildInfo(rawCI)

	if err := validate(); err != nil {
		panic(err)
	}
}

// normalizeBuildDate accepts RFC3339 (what goreleaser emits) and keeps the day.
func normalizeBuildDate(raw string) string {
	if raw == "unknown" {
		return raw
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Format(time.DateOnly)
	}
	return raw
}

func validate() error {
	if !lo.Contains(AllowedModes, GO_MODE.String()) {
		return fmt.Errorf("build_info: invalid GO_MODE %q, must be one of %v", GO_MODE, AllowedModes)
	}

	if CLI_VERSION.String() != "dev" && !regexp.MustCompile(semverPattern).MatchString(CLI_VERSION.String()) {
		return fmt.Errorf("build_info: invalid CLI_VERSION %q, must be semver", CLI_VERSION)
	}

	if BUILD_DATE.String() == "unknown" {
		if GO_MODE.String() == "production" {
			return fmt.Errorf("build_info: BUILD_DATE must be set via ldflags in production mode")
		}
	} else if _, err := time.Parse(time.DateOnly, BUILD_DATE.String()); err != nil {
		return fmt.Errorf("build_info: invalid BUILD_DATE %q: %w", BUILD_DATE, err)
	}

	if _, err := strconv.ParseBool(CI.String()); err != nil {
		return fmt.Errorf("build_info: invalid CI value %q", CI)
	}

	return nil
}

// Version returns the CLI version.
func Version() string {
	return CLI_VERSION.String()
}

// BuildDate returns the build date or "unknown".
func BuildDate() string {
	return BUILD_DATE.String()
}

// InCI reports whether the binary was built for CI.
func InCI() bool {
	b, err := strconv.ParseBool(CI.String())
	if err != nil {
		return false
	}
	return b
}
