/*
Copyright © 2025 Shelton Louis

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

// Package cmd provides the vksetup command-line interface.
package cmd

import (
	// standard library
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	// external
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/vulkan-sdk-setup/build_info"
	"github.com/louiss0/vulkan-sdk-setup/config"
	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
	"github.com/louiss0/vulkan-sdk-setup/custom_flags"
	"github.com/louiss0/vulkan-sdk-setup/env"
	"github.com/louiss0/vulkan-sdk-setup/launcher"
	"github.com/louiss0/vulkan-sdk-setup/prompt"
	"github.com/louiss0/vulkan-sdk-setup/sdk"
	"github.com/louiss0/vulkan-sdk-setup/services"
)

type contextKey string

// Context keys for values prepared by the root PersistentPreRunE
const (
	_GO_ENV         contextKey = "go_env"
	_DEBUG_EXECUTOR contextKey = "debug_executor"
	_BOOTSTRAPPER   contextKey = "bootstrapper"
)

const (
	_DEBUG_FLAG         = "debug"
	_CONFIG_FLAG        = "config"
	_YES_FLAG           = "yes"
	_NO_PROMPT_FLAG     = "no-prompt"
	_SDK_VERSION_FLAG   = "sdk-version"
	_DEST_FLAG          = "dest"
	_INSTALLER_URL_FLAG = "installer-url"
)

type DebugExecutor interface {
	ExecuteIfDebugIsTrue(cb func())
	LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{})
}

type debugExecutor struct {
	debugFlag bool
}

func newDebugExecutor(debugFlag bool) DebugExecutor {
	return debugExecutor{debugFlag}
}

func (d debugExecutor) ExecuteIfDebugIsTrue(cb func()) {
	if d.debugFlag {
		cb()
	}
}

func (d debugExecutor) LogDebugMessageIfDebugIsTrue(msg string, keyvals ...interface{}) {
	if d.debugFlag {
		log.Debug(msg, keyvals...)
	}
}

// Dependencies holds the capabilities the commands use, so tests can swap
// the network, the OS and the console for fakes.
type Dependencies struct {
	Lookup           env.Lookup
	NewYesNoAsker    func(in io.Reader, out io.Writer) prompt.YesNoAsker
	NewDownloader    func() services.Downloader
	NewOpener        func() launcher.Opener
	Exit             func(code int)
	Getwd            func() (string, error)
	NewDebugExecutor func(bool) DebugExecutor
}

// NewRootCmd creates a new root command with injectable dependencies.
func NewRootCmd(deps Dependencies) *cobra.Command {
	configFlag := custom_flags.NewFilePathFlag(_CONFIG_FLAG)
	versionFlag := custom_flags.NewVersionFlag(_SDK_VERSION_FLAG)
	destFlag := custom_flags.NewFilePathFlag(_DEST_FLAG)
	installerURLFlag := custom_flags.NewURLFlag(_INSTALLER_URL_FLAG)

	cmd := &cobra.Command{
		Use:     "vksetup",
		Version: build_info.Version(),
		Short:   "Check for the Vulkan SDK and offer to install it",
		Long: `vksetup checks that the Vulkan SDK the engine builds against is installed.

The SDK is located through the VULKAN_SDK environment variable, which the
LunarG installer sets. The install is accepted when the path contains the
required version. When the SDK is missing or outdated vksetup offers to
download the LunarG installer, starts it, and exits so you can re-run it once
the installation has finished.

Available commands:
		check    - Check for the SDK and offer the installer (default)
		install  - Offer the installer without checking first
		status   - Show what was found without prompting`,
		SilenceUsage: true,
		Args:         noArgs,

		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			err := godotenv.Load()
			if err != nil && !os.IsNotExist(err) {
				log.Error(err.Error())
			}

			goEnv := env.NewGoEnv()

			debug, err := c.Flags().GetBool(_DEBUG_FLAG)
			if err != nil {
				return err
			}
			// Debug builds always log as if --debug was passed.
			debug = debug || goEnv.IsDebugMode()
			if debug {
				log.SetLevel(log.DebugLevel)
			}

			debugExecutor := deps.NewDebugExecutor(debug)

			requirement, err := resolveRequirement(deps, configFlag.String(), debugExecutor)
			if err != nil {
				return err
			}

			requirement = requirement.Merge(sdk.Requirement{
				Version:              versionFlag.String(),
				InstallerURLTemplate: installerURLFlag.String(),
				InstallerPath:        destFlag.String(),
			})

			debugExecutor.LogDebugMessageIfDebugIsTrue(
				"Using requirement",
				"version", requirement.Version,
				"env", requirement.EnvVar,
				"url", requirement.InstallerURL(),
				"destination", requirement.InstallerPath,
			)

			asker, err := selectAsker(c, deps)
			if err != nil {
				return err
			}

			bootstrapper := sdk.NewBootstrapper(sdk.Dependencies{
				Requirement: requirement,
				Lookup:      deps.Lookup,
				Asker:       asker,
				Fetcher:     deps.NewDownloader(),
				Opener:      deps.NewOpener(),
				Exit:        deps.Exit,
				Out:         c.OutOrStdout(),
			})

			c_ctx := c.Context()
			lo.ForEach([][2]any{
				{_GO_ENV, goEnv},
				{_DEBUG_EXECUTOR, debugExecutor},
				{_BOOTSTRAPPER, bootstrapper},
			}, func(item [2]any, index int) {
				c_ctx = context.WithValue(c_ctx, item[0], item[1])
			})
			c.SetContext(c_ctx)

			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			return runCheck(c)
		},
	}

	cmd.SetVersionTemplate(versionTemplate(env.NewGoEnv()))

	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewInstallCmd())
	cmd.AddCommand(NewStatusCmd())

	cmd.PersistentFlags().BoolP(_DEBUG_FLAG, "d", false, "Log what vksetup is doing")
	cmd.PersistentFlags().Var(configFlag, _CONFIG_FLAG, fmt.Sprintf("Config file to use instead of ./%s", config.DefaultFileName))
	cmd.PersistentFlags().BoolP(_YES_FLAG, "y", false, "Answer yes to the install prompt")
	cmd.PersistentFlags().Bool(_NO_PROMPT_FLAG, false, "Answer no to the install prompt")
	cmd.PersistentFlags().Var(versionFlag, _SDK_VERSION_FLAG, fmt.Sprintf("Required SDK version (default %s)", sdk.DefaultRequiredVersion))
	cmd.PersistentFlags().Var(destFlag, _DEST_FLAG, fmt.Sprintf("Where the installer is saved (default %s)", sdk.DefaultInstallerPath))
	cmd.PersistentFlags().Var(installerURLFlag, _INSTALLER_URL_FLAG, fmt.Sprintf(
		"Installer URL template (%s), {version} is replaced by the SDK version",
		strings.Join(installerURLFlag.AllowedSchemes(), " or "),
	))
	cmd.MarkFlagsMutuallyExclusive(_YES_FLAG, _NO_PROMPT_FLAG)

	return cmd
}

// noArgs rejects positional arguments. Every vksetup command is driven by
// flags alone.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return custom_errors.CreateInvalidArgumentErrorWithMessage(
		fmt.Sprintf("%s takes no arguments, got %q", cmd.CommandPath(), strings.Join(args, " ")),
	)
}

func versionTemplate(goEnv env.GoEnv) string {
	return fmt.Sprintf(
		"{{.Name}} {{.Version}}\nbuilt: %s\nmode: %s\nci: %t\n",
		build_info.BuildDate(), goEnv.Mode(), build_info.InCI(),
	)
}

// resolveRequirement applies the config file over the compiled-in defaults.
// An explicit --config must exist; the default file is optional.
func resolveRequirement(deps Dependencies, configPath string, de DebugExecutor) (sdk.Requirement, error) {
	requirement := sdk.DefaultRequirement()

	if configPath != "" {
		file, err := config.Load(configPath)
		if err != nil {
			return sdk.Requirement{}, err
		}
		de.LogDebugMessageIfDebugIsTrue("Loaded config", "path", configPath)
		return requirement.Merge(file.Requirement()), nil
	}

	cwd, err := deps.Getwd()
	if err != nil {
		return sdk.Requirement{}, err
	}

	file, found, err := config.LoadDefault(cwd)
	if err != nil {
		return sdk.Requirement{}, err
	}
	if found {
		de.LogDebugMessageIfDebugIsTrue("Loaded config", "path", config.DefaultFileName)
	}

	return requirement.Merge(file.Requirement()), nil
}

func selectAsker(c *cobra.Command, deps Dependencies) (prompt.YesNoAsker, error) {
	yes, err := c.Flags().GetBool(_YES_FLAG)
	if err != nil {
		return nil, err
	}
	noPrompt, err := c.Flags().GetBool(_NO_PROMPT_FLAG)
	if err != nil {
		return nil, err
	}

	switch {
	case yes:
		return prompt.NewFixedAsker(true, c.OutOrStdout()), nil
	case noPrompt:
		return prompt.NewFixedAsker(false, c.OutOrStdout()), nil
	default:
		return deps.NewYesNoAsker(c.InOrStdin(), c.OutOrStdout()), nil
	}
}

// runCheck is shared by the root command and `check`.
func runCheck(c *cobra.Command) error {
	bootstrapper := getBootstrapperFromCommandContext(c)
	goEnv := getGoEnvFromCommandContext(c)

	ready, err := bootstrapper.CheckSDKPresence(c.Context())
	if err != nil {
		return err
	}

	if !ready {
		return fmt.Errorf("%w: %s must point at Vulkan SDK %s",
			custom_errors.ErrSDKNotReady,
			bootstrapper.Requirement().EnvVar,
			bootstrapper.Requirement().Version,
		)
	}

	goEnv.ExecuteIfModeIsProduction(func() {
		log.Info("Vulkan SDK is ready", "version", bootstrapper.Requirement().Version)
	})
	return nil
}

// Global variable for the root command, initialized in init()
var rootCmd *cobra.Command

func init() {
	rootCmd = NewRootCmd(
		Dependencies{
			Lookup:        env.OSLookup{},
			NewYesNoAsker: prompt.New,
			NewDownloader:    services.NewDownloader,
			NewOpener:        launcher.NewSystemOpener,
			Exit:             os.Exit,
			Getwd:            os.Getwd,
			NewDebugExecutor: newDebugExecutor,
		},
	)
}

// Execute runs the root command. Ctrl-C cancels the command context, which
// aborts an in-flight download.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func getDebugExecutorFromCommandContext(cmd *cobra.Command) DebugExecutor {
	return cmd.Context().Value(_DEBUG_EXECUTOR).(DebugExecutor)
}

func getGoEnvFromCommandContext(cmd *cobra.Command) env.GoEnv {
	return cmd.Context().Value(_GO_ENV).(env.GoEnv)
}

func getBootstrapperFromCommandContext(cmd *cobra.Command) *sdk.Bootstrapper {
	return cmd.Context().Value(_BOOTSTRAPPER).(*sdk.Bootstrapper)
}
