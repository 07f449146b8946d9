package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/config"
	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit the current idea's timeline for committee review",
	Long: `Submit the current idea's timeline for committee review.

Submission locks the timeline: phases and tasks can no longer be
edited until the committee approves or rejects the idea.`,
	RunE: runSubmit,
}

func runSubmit(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.CurrentIdea == "" {
		fmt.Println("No idea selected. Run 'phaseline use <id>' first.")
		return nil
	}

	client, err := api.NewClient()
	if err != nil {
		return err
	}

	idea, err := client.GetIdea(cfg.CurrentIdea)
	if err != nil {
		return err
	}
	if idea.Locked() {
		fmt.Printf("Timeline for %q is already %s.\n", idea.Name, idea.Status)
		return nil
	}

	fmt.Printf("Submit %q for review? This locks editing. [y/N]: ", idea.Name)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(answer)) != "y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := client.SubmitTimeline(idea.ID); err != nil {
		return err
	}

	fmt.Println("✅ Timeline submitted for committee review.")
	return nil
}
