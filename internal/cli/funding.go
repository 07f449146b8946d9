package cli

import (
	"fmt"
	"strconv"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/cache"
	"github.com/launchforge/phaseline/internal/config"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/spf13/cobra"
)

var fundingCmd = &cobra.Command{
	Use:   "funding",
	Short: "List funding requests for the current idea",
	RunE:  runListFunding,
}

var fundingRequestCmd = &cobra.Command{
	Use:   "request <phase|task> <item-id> <amount>",
	Short: "File a funding request against a phase or task",
	Args:  cobra.ExactArgs(3),
	RunE:  runRequestFunding,
}

func init() {
	fundingCmd.AddCommand(fundingRequestCmd)
	fundingRequestCmd.Flags().String("justification", "", "Why this item needs the money")
}

func runListFunding(cmd *cobra.Command, args []string) error {
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

	reqs, err := client.ListFundingRequests(cfg.CurrentIdea)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		fmt.Println("No funding requests yet.")
		return nil
	}

	for _, r := range reqs {
		fmt.Printf("%-9s $%-10.2f %-10s %s/%s\n",
			r.Status, r.Amount, r.CreatedAt.Format("2006-01-02"), r.ItemType, r.ItemID)
		if r.Justification != "" {
			fmt.Printf("          %s\n", r.Justification)
		}
	}
	return nil
}

func runRequestFunding(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.CurrentIdea == "" {
		fmt.Println("No idea selected. Run 'phaseline use <id>' first.")
		return nil
	}

	itemType := args[0]
	if itemType != "phase" && itemType != "task" {
		return fmt.Errorf("item type must be 'phase' or 'task', got %q", itemType)
	}
	amount, err := strconv.ParseFloat(args[2], 64)
	if err != nil || amount <= 0 {
		return fmt.Errorf("amount must be a positive number, got %q", args[2])
	}

	client, err := api.NewClient()
	if err != nil {
		return err
	}

	justification, _ := cmd.Flags().GetString("justification")
	req := model.FundingRequest{
		IdeaID:        cfg.CurrentIdea,
		ItemType:      itemType,
		ItemID:        args[1],
		Amount:        amount,
		Justification: justification,
	}

	created, err := client.SubmitFundingRequest(req)
	if err != nil {
		return err
	}

	// Keep a local copy so the editor can badge the item offline
	if store, cerr := cache.OpenDefault(); cerr == nil {
		_ = store.SaveFundingRequest(*created)
		store.Close()
	}

	fmt.Printf("✅ Requested $%.2f for %s %s (status: %s)\n",
		created.Amount, created.ItemType, created.ItemID, created.Status)
	return nil
}
