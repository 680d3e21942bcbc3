package cmd

import (
	"github.com/spf13/cobra"
)

// namespaceCmd groups the namespace lookups
var namespaceCmd = &cobra.Command{
	Use:   "namespace",
	Short: "Inspect namespaces",
}

var namespaceShowCmd = &cobra.Command{
	Use:   "show <namespace>",
	Short: "Show the details of a namespace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ns, err := client.GetNamespaceDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Namespace(ns)
	},
}

var namespaceSuggestCmd = &cobra.Command{
	Use:   "suggest <namespace>",
	Short: "Ask the service for an unused URN in a namespace",
	Long: `Ask the service for an unused URN in a namespace.

The suggestion is not reserved; register it with 'dnburn urn register'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := client.GetURNSuggestion(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return newPrinter(cmd).Suggestion(s)
	},
}

func init() {
	rootCmd.AddCommand(namespaceCmd)
	namespaceCmd.AddCommand(namespaceShowCmd)
	namespaceCmd.AddCommand(namespaceSuggestCmd)
}
