package build_info

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeBuildDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "unknown stays unknown", raw: "unknown", expected: "unknown"},
		{name: "rfc3339 is truncated to the day", raw: "2024-06-01T12:30:00Z", expected: "2024-06-01"},
		{name: "date only passes through", raw: "2024-06-01", expected: "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeBuildDate(tt.raw))
		})
	}
}

func TestValidate(t *testing.T) {
	restore := func(v, m, d, c BuildInfo) func() {
		return func() {
			CLI_VERSION, GO_MODE, BUILD_DATE, CI = v, m, d, c
		}
	}

	tests := []struct {
		name    string
		version BuildInfo
		mode    BuildInfo
		date    BuildInfo
		ci      BuildInfo
		wantErr string
	}{
		{name: "dev defaults", version: "dev", mode: "development", date: "unknown", ci: "false"},
		{name: "release build", version: "1.2.3", mode: "production", date: "2024-06-01", ci: "true"},
		{name: "bad mode", version: "dev", mode: "staging", date: "unknown", ci: "false", wantErr: "invalid GO_MODE"},
		{name: "bad version", version: "1.2", mode: "development", date: "unknown", ci: "false", wantErr: "invalid CLI_VERSION"},
		{name: "production needs date", version: "1.0.0", mode: "production", date: "unknown", ci: "false", wantErr: "BUILD_DATE must be set"},
		{name: "bad date", version: "dev", mode: "debug", date: "06/01/2024", ci: "false", wantErr: "invalid BUILD_DATE"},
		{name: "bad ci", version: "dev", mode: "debug", date: "unknown", ci: "maybe", wantErr: "invalid CI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer restore(CLI_VERSION, GO_MODE, BUILD_DATE, CI)()
			CLI_VERSION, GO_MODE, BUILD_DATE, CI = tt.version, tt.mode, tt.date, tt.ci

			err := validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestInCI(t *testing.T) {
	original := CI
	defer func() { CI = original }()

	CI = "true"
	assert.True(t, InCI())

	CI = "nope"
	assert.False(t, InCI())
}

func TestBuildDateAndVersion(t *testing.T) {
	originalDate, originalVersion := BUILD_DATE, CLI_VERSION
	defer func() { BUILD_DATE, CLI_VERSION = originalDate, originalVersion }()

	BUILD_DATE = "2024-06-01"
	CLI_VERSION = "1.4.0"

	assert.Equal(t, "2024-06-01", BuildDate())
	assert.Equal(t, "1.4.0", Version())
}
