package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/upward-labs/upward/internal/app/progress"
	"github.com/upward-labs/upward/internal/daemon"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show level, XP and streak",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	info, err := d.Ledger.Current()
	if err != nil {
		return err
	}
	streak, err := d.Streaks.Current()
	if err != nil {
		return err
	}
	earned, err := d.Orch.EarnedBadges()
	if err != nil {
		return err
	}

	fmt.Printf("Level %d — %s\n", info.Level, info.Title)
	fmt.Printf("  XP:     %d (%d to next level)\n",
		info.TotalXP, progress.XPToNextLevel(info.TotalXP))
	fmt.Printf("  %s\n", levelBar(progress.LevelProgress(info.TotalXP)))
	fmt.Printf("  Streak: %d days (longest %d)\n",
		streak.CurrentDays, streak.LongestDays)
	fmt.Printf("  Badges: %d of %d\n", len(earned), len(progress.Catalog()))
	return nil
}

// levelBar renders progress through the current level.
func levelBar(frac float64) string {
	const width = 30
	filled := int(frac * width)
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}
