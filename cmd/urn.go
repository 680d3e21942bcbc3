package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/dnburn/dnb"
)

var urnJSON bool

// urnCmd groups the URN operations
var urnCmd = &cobra.Command{
	Use:   "urn",
	Short: "Look up, register and retire URNs",
}

var urnExistsCmd = &cobra.Command{
	Use:   "exists <urn>...",
	Short: "Check whether URNs are registered",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := client.URNExistsMany(cmd.Context(), args)

		entries := make([]existsEntry, len(results))
		for i, r := range results {
			entries[i] = existsEntry{Name: r.URN, Exists: r.Exists}
			if r.Err != nil {
				entries[i].Error = dnb.ErrorMessage(r.Err)
			}
		}

		failed, err := newPrinter(cmd).Exists(entries)
		if err != nil {
			return err
		}
		return checkFailures(failed, len(entries))
	},
}

var urnShowCmd = &cobra.Command{
	Use:   "show <urn>",
	Short: "Show the details of a URN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := client.GetURNDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).URN(u)
	},
}

var urnRegisterCmd = &cobra.Command{
	Use:   "register <urn> <url>...",
	Short: "Register a new URN with its initial URLs",
	Example: `  dnburn urn register urn:nbn:de:101-2024 https://example.org/doc
  dnburn urn register urn:nbn:de:101-2024 --json '{"url": "https://example.org/doc", "priority": 1}'`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := parseURLArgs(args[1:], urnJSON)
		if err != nil {
			return err
		}

		u, err := client.RegisterURN(cmd.Context(), args[0], urls)
		if err != nil {
			return err
		}

		logger.Info().Str("urn", u.URN).Msg("URN registered")
		return newPrinter(cmd).URN(u)
	},
}

var urnSuccessorCmd = &cobra.Command{
	Use:   "successor",
	Short: "Manage the successor of a URN",
}

var urnSuccessorSetCmd = &cobra.Command{
	Use:   "set <urn> <successor>",
	Short: "Point a URN to its successor",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := client.SetURNSuccessor(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return newPrinter(cmd).Done("successor set", args[0]+" -> "+args[1])
	},
}

var urnSuccessorDeleteCmd = &cobra.Command{
	Use:   "delete <urn>",
	Short: "Remove the successor of a URN",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := client.DeleteURNSuccessor(cmd.Context(), args[0]); err != nil {
			return err
		}
		return newPrinter(cmd).Done("successor removed", args[0])
	},
}

func init() {
	rootCmd.AddCommand(urnCmd)
	urnCmd.AddCommand(urnExistsCmd, urnShowCmd, urnRegisterCmd, urnSuccessorCmd)
	urnSuccessorCmd.AddCommand(urnSuccessorSetCmd, urnSuccessorDeleteCmd)

	urnRegisterCmd.Flags().BoolVar(&urnJSON, "json", false, "treat URL arguments as JSON documents")
}
