package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/s0up4200/dnburn/dnb"
	"github.com/s0up4200/dnburn/filter"
	"github.com/s0up4200/dnburn/urlrecord"
)

var (
	ownOnly     bool
	filterExpr  string
	priority    int
	noConfirm   bool
	exchangeRaw bool
)

var errNotConfirmed = errors.New("deletion not confirmed")

// urlCmd groups the URL operations of a URN
var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Maintain the URLs a URN resolves to",
}

var urlListCmd = &cobra.Command{
	Use:   "list <urn>",
	Short: "List the URLs of a URN",
	Long: `List the URLs of a URN.

The --filter flag takes an expression over URL, URN, Owner, Created,
LastModified, Self, Priority and HasPriority, for example:

  dnburn url list urn:nbn:de:101-2024 --filter 'host(URL) == "example.org" && Priority < 3'`,
	Args: cobra.ExactArgs(1),
	RunE: runURLList,
}

func runURLList(cmd *cobra.Command, args []string) error {
	var (
		f   *filter.Filter
		err error
	)
	if filterExpr != "" {
		f, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	records, err := client.GetURLs(cmd.Context(), args[0], ownOnly)
	if err != nil {
		return err
	}

	if f != nil {
		total := len(records)
		records, err = filter.Apply(f, records)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", f.Expression()).
			Int("total", total).
			Int("matched", len(records)).
			Msg("Filter applied")
	}

	return newPrinter(cmd).Records(args[0], records)
}

var urlShowCmd = &cobra.Command{
	Use:   "show <urn> <url>",
	Short: "Show the details of one URL of a URN",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := client.GetURLDetails(cmd.Context(), args[0], urlrecord.RawAddress(args[1]))
		if err != nil {
			return err
		}
		return newPrinter(cmd).Record(r)
	},
}

var urlExistsCmd = &cobra.Command{
	Use:   "exists <urn> <url>...",
	Short: "Check whether URLs are registered for a URN",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := client.URLExistsMany(cmd.Context(), args[0], urlrecord.Addresses(args[1:]...))
		if err != nil {
			return err
		}

		entries := make([]existsEntry, len(results))
		for i, r := range results {
			entries[i] = existsEntry{Name: r.URL, Exists: r.Exists}
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

var urlAddCmd = &cobra.Command{
	Use:   "add <urn> <url>",
	Short: "Add a URL to a URN",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in urlrecord.Input = urlrecord.RawAddress(args[1])
		if cmd.Flags().Changed("priority") {
			in = urlrecord.WithPriority(args[1], priority)
		}

		r, err := client.AddURL(cmd.Context(), args[0], in)
		if err != nil {
			return err
		}

		logger.Info().Str("urn", args[0]).Str("url", r.URL()).Msg("URL added")
		return newPrinter(cmd).Record(r)
	},
}

var urlDeleteCmd = &cobra.Command{
	Use:   "delete <urn> <url>",
	Short: "Remove a URL from a URN",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !noConfirm {
			ok, err := confirm(cmd, fmt.Sprintf("Delete %s from %s?", args[1], args[0]))
			if err != nil {
				return err
			}
			if !ok {
				logger.Info().Msg("Deletion cancelled")
				return errNotConfirmed
			}
		}

		if _, err := client.DeleteURL(cmd.Context(), args[0], urlrecord.RawAddress(args[1])); err != nil {
			return err
		}
		return newPrinter(cmd).Done("URL deleted", args[1])
	},
}

var urlPriorityCmd = &cobra.Command{
	Use:   "priority <urn> <url> <priority>",
	Short: "Change the priority of a URL",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid priority '%s': must be an integer", args[2])
		}

		if _, err := client.UpdatePriority(cmd.Context(), args[0], urlrecord.RawAddress(args[1]), p); err != nil {
			return err
		}
		return newPrinter(cmd).Done("priority updated", fmt.Sprintf("%s = %d", args[1], p))
	},
}

var urlExchangeCmd = &cobra.Command{
	Use:   "exchange <urn> <url>...",
	Short: "Replace all of your own URLs of a URN",
	Long: `Replace all URLs of a URN that belong to the authenticated user with the
given list. URLs of other owners are left alone.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		urls, err := parseURLArgs(args[1:], exchangeRaw)
		if err != nil {
			return err
		}

		result, err := client.ExchangeOwnURLs(cmd.Context(), args[0], urls)
		if err != nil {
			return err
		}
		return newPrinter(cmd).Exchange(args[0], result)
	},
}

// checkFailures turns failed batch entries into a non-zero exit
func checkFailures(failed, total int) error {
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d checks failed", failed, total)
}

// confirm asks a yes/no question. Without a terminal on stdin there is
// nobody to ask and the answer is an error.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return false, fmt.Errorf("stdin is not a terminal, use --no-confirm to delete without a prompt")
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

func init() {
	rootCmd.AddCommand(urlCmd)
	urlCmd.AddCommand(urlListCmd, urlShowCmd, urlExistsCmd, urlAddCmd, urlDeleteCmd, urlPriorityCmd, urlExchangeCmd)

	urlListCmd.Flags().BoolVar(&ownOnly, "own", false, "only list URLs owned by the authenticated user")
	urlListCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	urlAddCmd.Flags().IntVar(&priority, "priority", 0, "priority of the new URL")
	urlDeleteCmd.Flags().BoolVar(&noConfirm, "no-confirm", false, "skip confirmation prompt")
	urlExchangeCmd.Flags().BoolVar(&exchangeRaw, "json", false, "treat URL arguments as JSON documents")
}
