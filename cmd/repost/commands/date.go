package commands

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/commons-repost/wikidate"
)

// DateCmd normalizes Commons date markup
var DateCmd = &cobra.Command{
	Use:   "date [raw-date...]",
	Short: "Normalize Commons date strings for display",
	Long: `Normalize Commons date strings for display.

Each argument is one date. Without arguments, dates are read from standard
input, one per line. Text that is not a recognizable date is printed
unchanged.

Examples:
  repost date "2014-04-21 11:54:46"
  repost date "between 1860 and 1880 date QS:P571,+1870-00-00T00:00:00Z/7"
  cut -f3 dates.tsv | repost date`,
	RunE: runDate,
}

func runDate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		for _, raw := range args {
			if _, err := fmt.Fprintln(out, wikidate.Normalize(raw)); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if _, err := fmt.Fprintln(out, wikidate.Normalize(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}
