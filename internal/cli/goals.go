package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/upward-labs/upward/internal/daemon"
)

func init() {
	rootCmd.AddCommand(goalsCmd)
}

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List goals and their progress",
	RunE:  runGoals,
}

func runGoals(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	list, err := d.Goals.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No goals yet. Create one via the app or the API.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GOAL\tCATEGORY\tACTIONS\tPROGRESS")
	for _, g := range list {
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%.0f%%\n",
			g.Title, g.Category, g.CompletedActions, g.TotalActions,
			g.Progress()*100)
	}
	return w.Flush()
}
