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

package cmd

import (
	// standard library
	"fmt"

	// external
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	// internal
	"github.com/louiss0/vulkan-sdk-setup/build_info"
	"github.com/louiss0/vulkan-sdk-setup/custom_errors"
	"github.com/louiss0/vulkan-sdk-setup/env"
	"github.com/louiss0/vulkan-sdk-setup/sdk"
)

var (
	statusHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// NewStatusCmd creates the status command. It never prompts or downloads.
func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the Vulkan SDK that was found and whether it is usable",
		Long: `Status prints what vksetup sees without asking anything.
It exits with an error when the SDK is missing or has the wrong version, so it
can be used as a gate in scripts. With --debug the table also lists how the
binary was built.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrapper := getBootstrapperFromCommandContext(cmd)
			de := getDebugExecutorFromCommandContext(cmd)
			goEnv := getGoEnvFromCommandContext(cmd)
			status := bootstrapper.Status()

			rows := statusRows(status, bootstrapper.Requirement())
			de.ExecuteIfDebugIsTrue(func() {
				rows = append(rows, buildRows(goEnv)...)
			})

			fmt.Fprintln(cmd.OutOrStdout(), renderStatusTable(rows))

			if !status.Ready() {
				return fmt.Errorf("%w: %s", custom_errors.ErrSDKNotReady, statusSummary(status))
			}
			return nil
		},
	}
}

func statusRows(status sdk.Status, requirement sdk.Requirement) [][]string {
	path := status.Path
	if !status.Found {
		path = "(not set)"
	}

	return [][]string{
		{"Variable", status.EnvVar},
		{"Path", path},
		{"Required version", status.RequiredVersion},
		{"Version matches", yesNo(status.VersionMatches)},
		{"Installer URL", requirement.InstallerURL()},
		{"Installer path", requirement.InstallerPath},
		{"Ready", yesNo(status.Ready())},
	}
}

func buildRows(goEnv env.GoEnv) [][]string {
	return [][]string{
		{"vksetup version", build_info.Version()},
		{"Build date", build_info.BuildDate()},
		{"Build mode", goEnv.Mode()},
		{"Built for CI", yesNo(build_info.InCI())},
	}
}

func renderStatusTable(rows [][]string) string {
	t := table.New().
		Headers("Setting", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return statusHeaderStyle
			}
			return statusCellStyle
		})

	return t.Render()
}

func statusSummary(status sdk.Status) string {
	if !status.Found {
		return fmt.Sprintf("%s is not set", status.EnvVar)
	}
	return fmt.Sprintf("%s does not contain version %s", status.Path, status.RequiredVersion)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
