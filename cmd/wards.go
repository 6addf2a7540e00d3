// =============================================================================
// Coverage Report Generator - Wards Command
// =============================================================================
//
// This file defines the 'wards' command, which parses a ward list and prints
// it back with the wards declared under more than one circle.
//
// COMMAND USAGE:
//   coverage wards [FILE]
//
// With no argument the fleet ward list of the configuration is read.
//
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/coverage-report/internal/membership"
)

var wardsCmd = &cobra.Command{
	Use:   "wards [FILE]",
	Short: "Parse a ward list and report ambiguous wards",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := mainConfig.Fleet.WardList
		if len(args) == 1 {
			path = args[0]
		}

		table, err := membership.LoadFile(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, membership.Format(table))

		dups := table.Duplicates()
		fmt.Fprintf(out, "\n%d circle(s), %d ward(s) listed under several circles\n", table.Len(), len(dups))
		first := table.Index(membership.FirstWins)
		last := table.Index(membership.LastWins)
		for _, d := range dups {
			fmt.Fprintf(out, "  %s: %s (first: %s, last: %s)\n",
				d.Member, strings.Join(d.Groups, ", "),
				first.Classify(d.Member, ""),
				last.Classify(d.Member, ""))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wardsCmd)
}
