// Package custom_errors defines the sentinel errors vksetup wraps with %w,
// and helpers that build flag and argument errors.
package custom_errors

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrInvalidFlag represents an error indicating an invalid flag.
	ErrInvalidFlag = errors.New("invalid flag")
	// ErrInvalidArgument represents an error indicating an invalid argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidConfig is returned when the config file cannot be decoded or fails its schema.
	ErrInvalidConfig = errors.New("invalid config")
	ErrDownloadFailed = errors.New("installer download failed")
	ErrLaunchFailed   = errors.New("installer launch failed")
	ErrPromptFailed   = errors.New("prompt failed")
	// ErrSDKNotReady is what the CLI returns when the SDK is missing or
	// outdated and nothing was installed.
	ErrSDKNotReady = errors.New("vulkan SDK is not ready")
)

var flagNameRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// FlagName is the kebab-case name of a command line flag.
type FlagName string

// Error validates the FlagName and returns an error if it's not kebab-case.
func (self FlagName) Error() error {
	if !flagNameRegex.MatchString(string(self)) {
		return fmt.Errorf("%w: %q must be lower-case kebab-case", ErrInvalidFlag, string(self))
	}
	return nil
}

// CreateInvalidFlagErrorWithMessage creates an error with a custom message for an invalid flag.
// It first validates the flag name and returns the validation error if present.
var CreateInvalidFlagErrorWithMessage = func(flagName FlagName, message string) error {
	if err := flagName.Error(); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s %s", ErrInvalidFlag, flagName, message)
}

// CreateInvalidArgumentErrorWithMessage creates an error with a custom message for an invalid argument.
var CreateInvalidArgumentErrorWithMessage = func(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}
