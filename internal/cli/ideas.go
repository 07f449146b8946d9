package cli

import (
	"fmt"
	"strings"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/config"
	"github.com/spf13/cobra"
)

var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "List your ideas",
	RunE:  runListIdeas,
}

var ideasCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new idea",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCreateIdea,
}

var useCmd = &cobra.Command{
	Use:   "use <idea-id>",
	Short: "Select the idea the editor and other commands operate on",
	Args:  cobra.ExactArgs(1),
	RunE:  runUse,
}

func init() {
	ideasCmd.AddCommand(ideasCreateCmd)
}

// loadCurrentIdea returns the configured idea id or an instructive error
func loadCurrentIdea() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.CurrentIdea == "" {
		return "", fmt.Errorf("no idea selected; run 'phaseline use <id>' first")
	}
	return cfg.CurrentIdea, nil
}

func runListIdeas(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	ideas, err := client.ListIdeas()
	if err != nil {
		return err
	}
	if len(ideas) == 0 {
		fmt.Println("No ideas yet. Create one with 'phaseline ideas create <name>'.")
		return nil
	}

	cfg, _ := config.Load()
	for _, idea := range ideas {
		marker := "  "
		if cfg != nil && cfg.CurrentIdea == idea.ID {
			marker = "* "
		}
		fmt.Printf("%s%s  %-10s %s\n", marker, idea.ID, idea.Status, idea.Name)
	}
	return nil
}

func runCreateIdea(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	name := strings.Join(args, " ")
	idea, err := client.CreateIdea(name)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Created idea %q (%s)\n", idea.Name, idea.ID)
	fmt.Printf("Select it with 'phaseline use %s'\n", idea.ID)
	return nil
}

func runUse(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	// Verify the idea exists and is visible before saving it
	idea, err := client.GetIdea(args[0])
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.CurrentIdea = idea.ID
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("✅ Now working on %q (%s)\n", idea.Name, idea.Status)
	return nil
}
