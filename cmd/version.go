package cmd

import (
	"fmt"
	"runtime"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "s0up4200/dnburn"

var (
	appVersion = "dev"
	buildTime  = "unknown"
)

// SetVersion records the build information injected at link time
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if outputFormat == "json" {
			return newPrinter(cmd).printJSON(map[string]string{
				"version":    appVersion,
				"build_time": buildTime,
				"go":         runtime.Version(),
			})
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "dnburn %s (built %s, %s %s/%s)\n",
			appVersion, buildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		return err
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update dnburn to the latest release",
	RunE:  runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(appVersion)
	if err != nil {
		return fmt.Errorf("cannot update a development build (%s): %w", appVersion, err)
	}

	ctx := cmd.Context()
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ dnburn %s is the latest version\n", current)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	logger.Info().
		Str("current", current.String()).
		Str("latest", latest.Version()).
		Msg("Updating")

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Updated dnburn %s -> %s\n", current, latest.Version())
	return nil
}

func init() {
	rootCmd.AddCommand(versionCmd, updateCmd)
}
