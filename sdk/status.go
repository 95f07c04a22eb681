package sdk

import (
	"strings"

	"github.com/louiss0/vulkan-sdk-setup/env"
)

// Status is the outcome of inspecting the environment against a Requirement.
type Status struct {
	EnvVar          string
	Path            string
	Found           bool
	VersionMatches  bool
	RequiredVersion string
}

// Ready reports whether the located SDK satisfies the requirement.
func (s Status) Ready() bool {
	return s.Found && s.VersionMatches
}

// Inspect reads req.EnvVar once from lookup. It has no side effects.
//
// The version check is plain substring containment on the path, so a path
// holding 1.3.261.10 satisfies 1.3.261.1. Existing installs were accepted
// under that rule and it is kept as is.
func Inspect(lookup env.Lookup, req Requirement) Status {
	path, found := lookup.LookupEnv(req.EnvVar)

	return Status{
		EnvVar:          req.EnvVar,
		Path:            path,
		Found:           found,
		VersionMatches:  found && strings.Contains(path, req.Version),
		RequiredVersion: req.Version,
	}
}
