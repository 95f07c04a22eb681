// Package sdk decides whether the Vulkan SDK the engine builds against is
// installed, and drives the download of the vendor installer when it is not.
package sdk

import (
	"strings"
)

const (
	DefaultRequiredVersion      = "1.3.261.1"
	DefaultEnvVar               = "VULKAN_SDK"
	DefaultInstallerURLTemplate = "https://sdk.lunarg.com/sdk/download/{version}/windows/vulkan_sdk.exe"
	DefaultInstallerPath        = "Azteck/vendor/VulkanSDK/VulkanSDK.exe"

	versionPlaceholder = "{version}"
)

// Requirement is what a machine must have for the build to proceed.
type Requirement struct {
	Version              string
	EnvVar               string
	InstallerURLTemplate string
	// InstallerPath is relative to the working directory unless absolute.
	InstallerPath string
}

// DefaultRequirement returns the values compiled into the binary.
func DefaultRequirement() Requirement {
	return Requirement{
		Version:              DefaultRequiredVersion,
		EnvVar:               DefaultEnvVar,
		InstallerURLTemplate: DefaultInstallerURLTemplate,
		InstallerPath:        DefaultInstallerPath,
	}
}

// InstallerURL interpolates Version into the URL template.
func (r Requirement) InstallerURL() string {
	return strings.ReplaceAll(r.InstallerURLTemplate, versionPlaceholder, r.Version)
}

// Merge returns r with every non-empty field of override applied.
func (r Requirement) Merge(override Requirement) Requirement {
	if override.Version != "" {
		r.Version = override.Version
	}
	if override.EnvVar != "" {
		r.EnvVar = override.EnvVar
	}
	if override.InstallerURLTemplate != "" {
		r.InstallerURLTemplate = override.InstallerURLTemplate
	}
	if override.InstallerPath != "" {
		r.InstallerPath = override.InstallerPath
	}
	return r
}
