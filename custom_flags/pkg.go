// Package custom_flags provides pflag.Value types that validate their input
// when cobra parses the command line.
package custom_flags

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
)

var whitespaceOnly = regexp.MustCompile(`^\s*$`)

// The SDK ships four numeric components, e.g. 1.3.261.1.
var sdkVersionRegex = regexp.MustCompile(`^\d+(?:\.\d+){3}$`)

// namesFile accepts any path that ends in a file name. Spaces, "+" and
// non-ASCII letters are fine; a trailing separator, a NUL byte or a path that
// cleans to ".", ".." or a root is not.
func namesFile(value string) bool {
	if strings.ContainsRune(value, 0) {
		return false
	}
	if strings.HasSuffix(value, "/") || strings.HasSuffix(value, string(filepath.Separator)) {
		return false
	}

	base := filepath.Base(filepath.Clean(value))
	return base != "." && base != ".." && base != string(filepath.Separator)
}

// FilePathFlag extends pflag.Value for file path flags
type FilePathFlag interface {
	pflag.Value
	FlagName() string
}

// VersionFlag extends pflag.Value for SDK version flags
type VersionFlag interface {
	pflag.Value
	FlagName() string
}

// URLFlag extends pflag.Value for download URL flags
type URLFlag interface {
	pflag.Value
	FlagName() string
	AllowedSchemes() []string
}

type filePathFlag struct {
	value    string
	flagName string
}

// NewFilePathFlag creates a new FilePathFlag with the given flag name
func NewFilePathFlag(flagName string) FilePathFlag {
	return &filePathFlag{
		flagName: flagName,
	}
}

func (p filePathFlag) String() string {
	return p.value
}

// Set validates and sets the flag's value. Whether the file exists is left
// to whoever opens it.
func (p *filePathFlag) Set(value string) error {
	if whitespaceOnly.MatchString(value) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(p.flagName),
			"cannot be empty or contain only whitespace",
		)
	}

	if !namesFile(value) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(p.flagName),
			fmt.Sprintf("value '%s' does not name a file", value),
		)
	}

	p.value = value
	return nil
}

func (p filePathFlag) Type() string {
	return "string"
}

// FlagName returns the flag's name for testing
func (p filePathFlag) FlagName() string {
	return p.flagName
}

type versionFlag struct {
	value    string
	flagName string
}

// NewVersionFlag creates a flag that only accepts four part SDK versions.
func NewVersionFlag(flagName string) VersionFlag {
	return &versionFlag{
		flagName: flagName,
	}
}

func (v versionFlag) String() string {
	return v.value
}

func (v *versionFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	if !sdkVersionRegex.MatchString(value) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(v.flagName),
			fmt.Sprintf("value '%s' must look like 1.3.261.1", value),
		)
	}

	v.value = value
	return nil
}

func (v versionFlag) Type() string {
	return "version"
}

func (v versionFlag) FlagName() string {
	return v.flagName
}

type urlFlag struct {
	value    string
	flagName string
	schemes  []string
}

// NewURLFlag creates a flag holding an absolute http or https URL.
func NewURLFlag(flagName string) URLFlag {
	return &urlFlag{
		flagName: flagName,
		schemes:  []string{"http", "https"},
	}
}

func (u urlFlag) String() string {
	return u.value
}

func (u *urlFlag) Set(value string) error {
	value = strings.TrimSpace(value)
	parsed, err := url.Parse(value)
	if err != nil || parsed.Host == "" || !lo.Contains(u.schemes, parsed.Scheme) {
		return custom_errors.CreateInvalidFlagErrorWithMessage(
			custom_errors.FlagName(u.flagName),
			fmt.Sprintf("value '%s' must be an absolute %s URL", value, strings.Join(u.schemes, " or ")),
		)
	}

	u.value = value
	return nil
}

func (u urlFlag) Type() string {
	return "url"
}

func (u urlFlag) FlagName() string {
	return u.flagName
}

// AllowedSchemes returns a copy of the accepted URL schemes.
func (u urlFlag) AllowedSchemes() []string {
	return append([]string(nil), u.schemes...)
}
