package cli

import (
	"fmt"
	"strconv"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/model"
	"github.com/launchforge/phaseline/internal/timeline"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks without opening the editor",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <phase-id> <name>",
	Short: "Add a task to a phase",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runTaskAdd,
}

var taskMoveCmd = &cobra.Command{
	Use:   "move <task-id> <days>",
	Short: "Shift a task by a number of days (negative moves earlier)",
	Long: `Shift a task by a number of days, keeping its duration.

This is the command-line equivalent of dragging the bar in the editor.`,
	Args: cobra.ExactArgs(2),
	RunE: runTaskMove,
}

var taskResizeCmd = &cobra.Command{
	Use:   "resize <task-id> <days>",
	Short: "Extend or shorten a task's end date by a number of days",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskResize,
}

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <task-id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDelete,
}

func init() {
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskMoveCmd)
	taskCmd.AddCommand(taskResizeCmd)
	taskCmd.AddCommand(taskDeleteCmd)

	taskAddCmd.Flags().String("start", "", "Start date (YYYY-MM-DD, defaults to today)")
	taskAddCmd.Flags().String("end", "", "End date (YYYY-MM-DD, defaults to start)")
	taskAddCmd.Flags().Int("priority", model.PriorityMedium, "Priority 1 (critical) to 5 (optional)")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	priority, _ := cmd.Flags().GetInt("priority")

	start := timeline.ParseDateSafe(startFlag)
	end := start
	if endFlag != "" {
		end = timeline.ParseDateSafe(endFlag)
	}
	if end.Before(start) {
		return fmt.Errorf("end date is before start date")
	}

	task, err := client.CreateTask(args[0], api.TaskFields{
		Name:      args[1],
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Priority:  priority,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✅ Added %q (%s) %s → %s\n", task.Name, task.ID,
		task.StartDate.Format("2006-01-02"), task.EndDate.Format("2006-01-02"))
	return nil
}

// findTask locates a task by id in the current idea's tree. The tree
// fetch doubles as the pre-move read so both dates shift from fresh
// server state.
func findTask(client *api.Client, taskID string) (*model.Task, error) {
	ideaID, err := loadCurrentIdea()
	if err != nil {
		return nil, err
	}
	phases, err := client.FetchPhases(ideaID)
	if err != nil {
		return nil, err
	}
	for i := range phases {
		for j := range phases[i].Tasks {
			if phases[i].Tasks[j].ID == taskID {
				return &phases[i].Tasks[j], nil
			}
		}
	}
	return nil, fmt.Errorf("task %s not found in the current idea", taskID)
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	days, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("days must be an integer, got %q", args[1])
	}

	client, err := api.NewClient()
	if err != nil {
		return err
	}
	task, err := findTask(client, args[0])
	if err != nil {
		return err
	}

	// Both edges shift together; duration is preserved
	start := task.StartDate.AddDate(0, 0, days)
	end := task.EndDate.AddDate(0, 0, days)
	if err := client.UpdateTaskDates(task.ID, start, end); err != nil {
		return err
	}

	fmt.Printf("✅ Moved %q to %s → %s\n", task.Name,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	return nil
}

func runTaskResize(cmd *cobra.Command, args []string) error {
	days, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("days must be an integer, got %q", args[1])
	}

	client, err := api.NewClient()
	if err != nil {
		return err
	}
	task, err := findTask(client, args[0])
	if err != nil {
		return err
	}

	end := task.EndDate.AddDate(0, 0, days)
	if end.Before(task.StartDate) {
		return fmt.Errorf("resize would move the end (%s) before the start (%s)",
			end.Format("2006-01-02"), task.StartDate.Format("2006-01-02"))
	}
	if err := client.UpdateTaskDates(task.ID, task.StartDate, end); err != nil {
		return err
	}

	fmt.Printf("✅ Resized %q to %s → %s (%d working days)\n", task.Name,
		task.StartDate.Format("2006-01-02"), end.Format("2006-01-02"),
		timeline.WorkingDayDifference(task.StartDate, end))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	client, err := api.NewClient()
	if err != nil {
		return err
	}

	if err := client.DeleteTask(args[0]); err != nil {
		return err
	}

	fmt.Println("✅ Task deleted.")
	return nil
}
