package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/upward-labs/upward/internal/daemon"
)

func init() {
	rootCmd.AddCommand(challengesCmd)
}

var challengesCmd = &cobra.Command{
	Use:   "challenges",
	Short: "List active challenges",
	RunE:  runChallenges,
}

func runChallenges(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	active, err := d.Challenges.Active()
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Println("No active challenges. Try 'upward serve' and accept one in the app.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CHALLENGE\tCATEGORY\tDIFFICULTY\tXP\tEXPIRES")
	for _, c := range active {
		expires := c.ExpiresAt.Format("2006-01-02")
		if c.IsExpired(now) {
			expires += " (overdue)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			c.Title, c.Category, c.Difficulty, c.RewardXP, expires)
	}
	return w.Flush()
}
