// Package testutil builds vksetup root commands wired to mocks.
package testutil

import (
	"io"

	"github.com/spf13/cobra"
	tmock "github.com/stretchr/testify/mock"

	"github.com/louiss0/vulkan-sdk-setup/cmd"
	"github.com/louiss0/vulkan-sdk-setup/env"
	"github.com/louiss0/vulkan-sdk-setup/launcher"
	"github.com/louiss0/vulkan-sdk-setup/mock"
	"github.com/louiss0/vulkan-sdk-setup/prompt"
	"github.com/louiss0/vulkan-sdk-setup/sdk"
	"github.com/louiss0/vulkan-sdk-setup/services"
)

type debugExecutorExpectationManager struct {
	DebugExecutor *mock.MockDebugExecutor
}

var DebugExecutorExpectationManager debugExecutorExpectationManager

func (m *debugExecutorExpectationManager) ExpectRequirementLog(req sdk.Requirement) {
	m.DebugExecutor.On("LogDebugMessageIfDebugIsTrue",
		"Using requirement",
		"version", req.Version,
		"env", req.EnvVar,
		"url", req.InstallerURL(),
		"destination", req.InstallerPath,
	).Return()
}

func (m *debugExecutorExpectationManager) ExpectConfigLoaded(path string) {
	m.DebugExecutor.On("LogDebugMessageIfDebugIsTrue", "Loaded config", "path", path).Return()
}

func (m *debugExecutorExpectationManager) ExpectInstallerOffered(url string) {
	m.DebugExecutor.On("LogDebugMessageIfDebugIsTrue", "Offering installer", "url", url).Return()
}

// ExpectDebugBlocksRun makes ExecuteIfDebugIsTrue run its callback, as the
// real executor does under --debug.
func (m *debugExecutorExpectationManager) ExpectDebugBlocksRun() {
	m.DebugExecutor.On("ExecuteIfDebugIsTrue", tmock.AnythingOfType("func()")).
		Run(func(args tmock.Arguments) {
			args.Get(0).(func())()
		}).
		Return()
}

// RootCommandFactory creates root commands whose asker, downloader, opener
// and exit function are mocks owned by the factory.
type RootCommandFactory struct {
	debugExecutor *mock.MockDebugExecutor
	asker         *mock.MockYesNoAsker
	downloader    *mock.MockDownloader
	opener        *mock.MockOpener
	exit          *mock.ExitRecorder
	workingDir    string
	debugFlags    []bool
}

// NewRootCommandFactory creates a factory whose commands treat workingDir
// as the current directory when looking for the default config file.
func NewRootCommandFactory(workingDir string) *RootCommandFactory {
	f := &RootCommandFactory{workingDir: workingDir}
	f.Reset(false)
	return f
}

// Reset replaces every mock. The interactive asker answers with answer.
func (f *RootCommandFactory) Reset(answer bool) {
	f.debugExecutor = &mock.MockDebugExecutor{}
	f.asker = mock.NewMockYesNoAsker(answer)
	f.downloader = mock.NewMockDownloader(nil)
	f.opener = mock.NewMockOpener(nil)
	f.exit = &mock.ExitRecorder{}
	f.debugFlags = nil
}

// ResetDebugExecutor replaces only the debug executor mock.
func (f *RootCommandFactory) ResetDebugExecutor() {
	f.debugExecutor = &mock.MockDebugExecutor{}
}

// DebugFlags returns the --debug values the commands were built with, in
// order of execution.
func (f *RootCommandFactory) DebugFlags() []bool {
	return f.debugFlags
}

func (f *RootCommandFactory) SetWorkingDir(dir string) {
	f.workingDir = dir
}

// FailDownloadsWith makes every download return err.
func (f *RootCommandFactory) FailDownloadsWith(err error) {
	f.downloader = mock.NewMockDownloader(err)
}

// FailLaunchesWith makes every launch return err.
func (f *RootCommandFactory) FailLaunchesWith(err error) {
	f.opener = mock.NewMockOpener(err)
}

func (f *RootCommandFactory) DebugExecutor() *mock.MockDebugExecutor {
	return f.debugExecutor
}

func (f *RootCommandFactory) Asker() *mock.MockYesNoAsker {
	return f.asker
}

func (f *RootCommandFactory) Downloader() *mock.MockDownloader {
	return f.downloader
}

func (f *RootCommandFactory) Opener() *mock.MockOpener {
	return f.opener
}

func (f *RootCommandFactory) Exit() *mock.ExitRecorder {
	return f.exit
}

// SetupBasicDebugExecutorExpectations allows every debug message the
// commands may log. Tests assert on the specific ones they care about.
func (f *RootCommandFactory) SetupBasicDebugExecutorExpectations() {
	f.debugExecutor.On("LogDebugMessageIfDebugIsTrue",
		"Using requirement",
		"version", tmock.AnythingOfType("string"),
		"env", tmock.AnythingOfType("string"),
		"url", tmock.AnythingOfType("string"),
		"destination", tmock.AnythingOfType("string"),
	).Return().Maybe()
	f.debugExecutor.On("LogDebugMessageIfDebugIsTrue", "Loaded config", "path", tmock.AnythingOfType("string")).Return().Maybe()
	f.debugExecutor.On("LogDebugMessageIfDebugIsTrue", "Offering installer", "url", tmock.AnythingOfType("string")).Return().Maybe()
	f.debugExecutor.On("ExecuteIfDebugIsTrue", tmock.AnythingOfType("func()")).Return().Maybe()
}

// Create builds a root command that reads environment variables from vars.
func (f *RootCommandFactory) Create(vars env.MapLookup) *cobra.Command {
	return cmd.NewRootCmd(cmd.Dependencies{
		Lookup: vars,
		NewYesNoAsker: func(in io.Reader, out io.Writer) prompt.YesNoAsker {
			return f.asker
		},
		NewDownloader: func() services.Downloader {
			return f.downloader
		},
		NewOpener: func() launcher.Opener {
			return f.opener
		},
		Exit: f.exit.Exit,
		Getwd: func() (string, error) {
			return f.workingDir, nil
		},
		NewDebugExecutor: func(debug bool) cmd.DebugExecutor {
			f.debugFlags = append(f.debugFlags, debug)
			return f.debugExecutor
		},
	})
}
