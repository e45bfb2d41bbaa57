package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/daemon"
)

func init() {
	badgesCmd.Flags().BoolVar(&badgesAll, "all", false, "Include locked badges")
	rootCmd.AddCommand(badgesCmd)
}

var badgesAll bool

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List earned badges",
	RunE:  runBadges,
}

func runBadges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	earned, err := d.Orch.EarnedBadges()
	if err != nil {
		return err
	}
	earnedAt := make(map[string]string, len(earned))
	for _, b := range earned {
		earnedAt[b.ID] = b.EarnedAt.Format("2006-01-02")
	}

	if len(earned) == 0 && !badgesAll {
		fmt.Println("No badges yet. Complete an action to earn your first one.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BADGE\tNAME\tXP\tEARNED")
	for _, b := range progress.Catalog() {
		when, ok := earnedAt[b.ID]
		if !ok {
			if !badgesAll {
				continue
			}
			when = "—"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", b.Icon, b.Name, b.RewardXP, when)
	}
	return w.Flush()
}
