package cli

import (
	"fmt"
	"time"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/cache"
	"github.com/launchforge/phaseline/internal/config"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
	"github.com/spf13/cobra"
)

var phasesCmd = &cobra.Command{
	Use:   "phases",
	Short: "List the current idea's phases and tasks",
	RunE:  runListPhases,
}

func init() {
	phasesCmd.Flags().Bool("offline", false, "Read from the local cache instead of the server")
}

func runListPhases(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.CurrentIdea == "" {
		fmt.Println("No idea selected. Run 'phaseline use <id>' first.")
		return nil
	}

	offline, _ := cmd.Flags().GetBool("offline")

	var phases []model.Phase
	if offline {
		store, err := cache.OpenDefault()
		if err != nil {
			return err
		}
		defer store.Close()

		var fetchedAt time.Time
		phases, fetchedAt, err = store.Snapshot(cfg.CurrentIdea)
		if err != nil {
			return err
		}
		fmt.Printf("(cached snapshot from %s)\n", fetchedAt.Format("2006-01-02 15:04"))
	} else {
		client, err := api.NewClient()
		if err != nil {
			return err
		}
		phases, err = client.FetchPhases(cfg.CurrentIdea)
		if err != nil {
			return err
		}

		if store, cerr := cache.OpenDefault(); cerr == nil {
			_ = store.SaveSnapshot(cfg.CurrentIdea, phases)
			store.Close()
		}
	}

	if len(phases) == 0 {
		fmt.Println("No phases yet.")
		return nil
	}

	for _, p := range phases {
		score := ""
		if p.EvaluationScore != nil {
			score = fmt.Sprintf("  ★ %.1f", *p.EvaluationScore)
		}
		fmt.Printf("▸ %s  %s → %s%s\n", p.Name,
			p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"), score)
		for _, t := range p.Tasks {
			wd := timeline.WorkingDayDifference(t.StartDate, t.EndDate)
			fmt.Printf("    %s  %s → %s  P%d %3d%%  %dwd\n", t.Name,
				t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"),
				t.Priority, t.ProgressPercentage, wd)
		}
	}
	return nil
}
