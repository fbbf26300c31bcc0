package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/notify"
	"github.com/harrisonrobin/taskflow/pkg/store"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, notify.Writer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			desc, _ := cmd.Flags().GetString("description")
			priority, _ := cmd.Flags().GetString("priority")
			dueStr, _ := cmd.Flags().GetString("due")

			var due *model.Date
			if dueStr != "" {
				d, err := model.ParseDate(dueStr)
				if err != nil {
					return err
				}
				due = &d
			}

			task, err := a.store.Add(args[0], desc, model.Priority(priority), due)
			if errors.Is(err, store.ErrEmptyTitle) {
				return fmt.Errorf("a task needs a title")
			}
			fmt.Fprintln(cmd.OutOrStdout(), task.ID)
			return nil
		},
	}
	cmd.Flags().StringP("description", "d", "", "Task description")
	cmd.Flags().StringP("priority", "p", "medium", "Priority (low, medium, high)")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks through a filter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, notify.Writer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			filter, _ := cmd.Flags().GetString("filter")
			a.store.SetFilter(filter)
			printTasks(cmd.OutOrStdout(), a.store.FilteredTasks(), a.store.Today())
			return nil
		},
	}
	cmd.Flags().StringP("filter", "f", "all", "Filter: all, pending, completed, high, overdue")
	return cmd
}

func toggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "toggle [id]",
		Aliases: []string{"done", "reopen"},
		Short:   "Mark a task completed, or reopen it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, notify.Writer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			if _, ok := a.store.ToggleComplete(id); !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "No task with id %d\n", id)
			}
			return nil
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete [id]",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, err := openApp(cmd, notify.Writer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			if !a.store.Delete(id) {
				fmt.Fprintf(cmd.ErrOrStderr(), "No task with id %d\n", id)
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, notify.Writer{W: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer a.Close()

			st := a.store.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:      %d\n", st.Total)
			fmt.Fprintf(out, "Completed:  %d\n", st.Completed)
			fmt.Fprintf(out, "Pending:    %d\n", st.Pending)
			fmt.Fprintf(out, "Completion: %d%%\n", st.CompletionRate)
			return nil
		},
	}
}

func printTasks(w io.Writer, tasks []model.Task, today model.Date) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, model.EmptyStateText)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tDUE\tTITLE")
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "✓"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, done, t.Priority, t.DueLabel(today), t.Title)
	}
	tw.Flush()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id '%s'", s)
	}
	return id, nil
}
