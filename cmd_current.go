package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/csainsbury/kairos/pkg/current"
)

var startCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Record the task you are working on",
	Long: `Record the task you are working on. Later rankings favour tasks in the
same project or domain until you run 'kairos stop'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := loadTasks(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("loading tasks: %w", err)
		}
		task, ok := findTask(tasks, args[0])
		if !ok {
			return fmt.Errorf("no task with ID %q", args[0])
		}

		store, err := openCurrentStore()
		if err != nil {
			return err
		}
		store.Set(current.FromTask(task, time.Now()))
		if err := store.Save(); err != nil {
			return fmt.Errorf("saving current task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Started: %s\n", describe(task))
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Forget the current task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCurrentStore()
		if err != nil {
			return err
		}
		entry, ok := store.Get()
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "No task in progress.")
			return nil
		}
		store.Clear()
		if err := store.Save(); err != nil {
			return fmt.Errorf("clearing current task: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stopped: %s after %s\n",
			entry.Description, time.Since(entry.Started).Round(time.Minute))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd, stopCmd)
}

func openCurrentStore() (*current.Store, error) {
	path, err := current.DefaultPath()
	if err != nil {
		return nil, err
	}
	return current.NewStore(path)
}
