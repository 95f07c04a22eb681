package sdk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
	"github.com/louiss0/vulkan-sdk-setup/env"
)

// InstallQuestion is the prompt shown when the SDK is missing or outdated.
const InstallQuestion = "Would you like to install the Vulkan SDK?"

// Asker is satisfied by prompt.YesNoAsker.
type Asker interface {
	Ask(question string) (bool, error)
}

// Fetcher is satisfied by services.Downloader.
type Fetcher interface {
	Fetch(ctx context.Context, url, destination string) error
}

// Opener is satisfied by launcher.Opener.
type Opener interface {
	Open(path string) error
}

// Dependencies are the capabilities a Bootstrapper needs. Nil fields fall
// back to the real process environment, stdout and os.Exit; Asker, Fetcher
// and Opener are required.
type Dependencies struct {
	Requirement Requirement
	Lookup      env.Lookup
	Asker       Asker
	Fetcher     Fetcher
	Opener      Opener
	Exit        func(code int)
	Out         io.Writer
	AbsPath     func(path string) (string, error)
}

// Bootstrapper checks for the SDK and installs it on request.
type Bootstrapper struct {
	requirement Requirement
	lookup      env.Lookup
	asker       Asker
	fetcher     Fetcher
	opener      Opener
	exit        func(code int)
	out         io.Writer
	absPath     func(path string) (string, error)
}

func NewBootstrapper(deps Dependencies) *Bootstrapper {
	b := &Bootstrapper{
		requirement: DefaultRequirement().Merge(deps.Requirement),
		lookup:      deps.Lookup,
		asker:       deps.Asker,
		fetcher:     deps.Fetcher,
		opener:      deps.Opener,
		exit:        deps.Exit,
		out:         deps.Out,
		absPath:     deps.AbsPath,
	}

	if b.lookup == nil {
		b.lookup = env.OSLookup{}
	}
	if b.exit == nil {
		b.exit = os.Exit
	}
	if b.out == nil {
		b.out = os.Stdout
	}
	if b.absPath == nil {
		b.absPath = filepath.Abs
	}

	return b
}

// Requirement returns the effective requirement after defaults were applied.
func (b *Bootstrapper) Requirement() Requirement {
	return b.requirement
}

// Status inspects the environment without printing or prompting.
func (b *Bootstrapper) Status() Status {
	return Inspect(b.lookup, b.requirement)
}

// CheckSDKPresence reports whether a suitable SDK is installed. When it is
// not, the user is offered the installer; a non-nil error only comes from
// that flow (prompt, download or launch).
func (b *Bootstrapper) CheckSDKPresence(ctx context.Context) (bool, error) {
	status := b.Status()

	log.Debug("Inspected environment",
		"env", status.EnvVar,
		"found", status.Found,
		"path", status.Path,
		"required", status.RequiredVersion,
	)

	if status.Ready() {
		fmt.Fprintf(b.out, "Correct Vulkan SDK located at %s\n", status.Path)
		return true, nil
	}

	if !status.Found {
		fmt.Fprintln(b.out, "You don't have the Vulkan SDK installed!")
	} else {
		fmt.Fprintf(b.out, "Located Vulkan SDK at %s\n", status.Path)
		fmt.Fprintf(b.out, "You don't have the correct Vulkan SDK version! (Azteck requires %s)\n", status.RequiredVersion)
	}

	if err := b.PromptInstall(ctx); err != nil {
		return false, err
	}
	return false, nil
}

// PromptInstall asks once. On yes it downloads and launches the installer
// and then exits the process with status 0; on no it returns nil.
func (b *Bootstrapper) PromptInstall(ctx context.Context) error {
	install, err := b.asker.Ask(InstallQuestion)
	if err != nil {
		return err
	}

	if !install {
		log.Debug("Installation declined")
		return nil
	}

	if err := b.DownloadAndLaunchInstaller(ctx); err != nil {
		return err
	}

	b.exit(0)
	return nil
}

// DownloadAndLaunchInstaller fetches the installer to the configured path
// and hands it to the OS. It does not wait for the installer.
func (b *Bootstrapper) DownloadAndLaunchInstaller(ctx context.Context) error {
	url := b.requirement.InstallerURL()
	destination := b.requirement.InstallerPath

	fmt.Fprintf(b.out, "Downloading %s to %s\n", url, destination)

	if err := b.fetcher.Fetch(ctx, url, destination); err != nil {
		return fmt.Errorf("%w: %w", custom_errors.ErrDownloadFailed, err)
	}

	fmt.Fprintln(b.out, "Done!")
	fmt.Fprintln(b.out, "Running Vulkan SDK installer...")

	absolute, err := b.absPath(destination)
	if err != nil {
		return fmt.Errorf("%w: resolving %s: %w", custom_errors.ErrLaunchFailed, destination, err)
	}

	if err := b.opener.Open(absolute); err != nil {
		return fmt.Errorf("%w: %w", custom_errors.ErrLaunchFailed, err)
	}

	fmt.Fprintln(b.out, "Re-run this script after installation")
	return nil
}
