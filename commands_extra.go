package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrisonrobin/taskflow/pkg/auth"
	"github.com/harrisonrobin/taskflow/pkg/config"
	"github.com/harrisonrobin/taskflow/pkg/google"
	"github.com/harrisonrobin/taskflow/pkg/index"
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/notify"
	"github.com/harrisonrobin/taskflow/pkg/orgmode"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
	"github.com/harrisonrobin/taskflow/pkg/report"
	"github.com/harrisonrobin/taskflow/pkg/server"
	"github.com/harrisonrobin/taskflow/pkg/taskwarrior"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			banner := notify.NewBanner(3 * time.Second)
			a, err := openApp(cmd, notify.Multi{notify.Logger{}, banner})
			if err != nil {
				return err
			}
			defer a.Close()

			addr := a.cfg.Server.Addr
			if flagAddr, _ := cmd.Flags().GetString("addr"); flagAddr != "" {
				addr = flagAddr
			}
			srv := server.NewServer(addr, server.NewHandlers(a.store, banner))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Server listening on %s...", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides config)")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Write a PDF report of the filtered task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd, notify.Logger{})
			if err != nil {
				return err
			}
			defer a.Close()

			filter, _ := cmd.Flags().GetString("filter")
			out, _ := cmd.Flags().GetString("out")

			in := report.Input{
				Filter: a.store.SetFilter(filter),
				Tasks:  a.store.FilteredTasks(),
				Stats:  a.store.Stats(),
				Today:  a.store.Today(),
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create report file: %w", err)
			}
			defer f.Close()
			if err := report.Write(f, in); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringP("filter", "f", "all", "Filter: all, pending, completed, high, overdue")
	cmd.Flags().StringP("out", "o", "taskflow.pdf", "Output file")
	return cmd
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import tasks from other tools",
	}

	twCmd := &cobra.Command{
		Use:   "taskwarrior [export.json|-]",
		Short: "Import a Taskwarrior JSON export (runs `task export` when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := taskwarrior.NewClient()
			var (
				tasks []taskwarrior.Task
				err   error
			)
			switch {
			case len(args) == 0:
				tasks, err = client.GetTasks(nil)
			case args[0] == "-":
				tasks, err = client.ParseTasks(cmd.InOrStdin())
			default:
				var f *os.File
				if f, err = os.Open(args[0]); err == nil {
					tasks, err = client.ParseTasks(f)
					f.Close()
				}
			}
			if err != nil {
				return err
			}
			return importDrafts(cmd, taskwarrior.Drafts(tasks, time.Local))
		},
	}

	orgCmd := &cobra.Command{
		Use:   "org [file.org]...",
		Short: "Import TODO and DONE headings from Org-mode files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var drafts []model.Draft
			for _, path := range args {
				d, err := orgmode.ParseFile(path)
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}
				drafts = append(drafts, d...)
			}
			return importDrafts(cmd, drafts)
		},
	}

	cmd.AddCommand(twCmd, orgCmd)
	return cmd
}

func importDrafts(cmd *cobra.Command, drafts []model.Draft) error {
	a, err := openApp(cmd, nopNotifier{})
	if err != nil {
		return err
	}
	defer a.Close()

	n := a.store.Import(drafts)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks\n", n)
	return nil
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Mirror dated tasks into Google Calendar",
	}
	cmd.PersistentFlags().String("calendar", "", "Google Calendar name (overrides config)")

	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.Reauthenticate(cmd.Context()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}
			log.Printf("Authentication successful! Token saved to %s", auth.TokenFile)
			return nil
		},
	}

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Create, update and delete events so the calendar matches the task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCalendar(cmd, func(ctx context.Context, c *google.CalendarClient, table *overdue.Table, a *app) error {
				res, err := c.Mirror(ctx, a.store.Tasks(), a.store.Today(), table)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Calendar sync: %s\n", res)
				return nil
			})
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Flag events of tasks that became overdue since the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCalendar(cmd, func(ctx context.Context, c *google.CalendarClient, table *overdue.Table, a *app) error {
				n := c.Sweep(ctx, table, a.store.Today())
				fmt.Fprintf(cmd.OutOrStdout(), "Flagged %d overdue events\n", n)
				return nil
			})
		},
	}

	cmd.AddCommand(authCmd, syncCmd, sweepCmd)
	return cmd
}

// withCalendar opens the app, the event index and the overdue table, runs fn
// and saves the index and table afterwards.
func withCalendar(cmd *cobra.Command, fn func(context.Context, *google.CalendarClient, *overdue.Table, *app) error) error {
	a, err := openApp(cmd, nopNotifier{})
	if err != nil {
		return err
	}
	defer a.Close()

	dir, err := config.GetXdgHome()
	if err != nil {
		return err
	}
	evtIndex, err := index.NewEventIndex(filepath.Join(dir, "events.json"))
	if err != nil {
		log.Printf("Warning: failed to initialize event index: %v", err)
		evtIndex = nil
	}
	table, err := overdue.NewTable(filepath.Join(dir, "overdue.json"))
	if err != nil {
		return fmt.Errorf("failed to initialize overdue table: %w", err)
	}

	name := a.cfg.Calendar.Name
	if flagName, _ := cmd.Flags().GetString("calendar"); flagName != "" {
		name = flagName
	}
	client, err := google.NewClient(cmd.Context(), name, evtIndex)
	if err != nil {
		return fmt.Errorf("error creating Google Calendar client: %w", err)
	}

	runErr := fn(cmd.Context(), client, table, a)

	if evtIndex != nil {
		if err := evtIndex.Save(); err != nil {
			log.Printf("Warning: failed to save event index: %v", err)
		}
	}
	if err := table.Save(); err != nil {
		log.Printf("Warning: failed to save overdue table: %v", err)
	}
	return runErr
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path, err := cfg.StoragePath()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "storage:  %s (%s)\n", cfg.Storage.Driver, path)
			fmt.Fprintf(out, "server:   %s\n", cfg.Server.Addr)
			fmt.Fprintf(out, "calendar: %s\n", cfg.Calendar.Name)
			fmt.Fprintf(out, "seed:     %v\n", cfg.Seed)
			return nil
		},
	}

	setCalendar := &cobra.Command{
		Use:   "set-calendar [name]",
		Short: "Set the default Google Calendar name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, func(cfg *config.Config) { cfg.Calendar.Name = args[0] },
				"Default calendar set to: "+args[0])
		},
	}

	setStorage := &cobra.Command{
		Use:   "set-storage [json|sqlite|memory] [path]",
		Short: "Set the storage driver and, optionally, its data path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return updateConfig(cmd, func(cfg *config.Config) {
				cfg.Storage.Driver = args[0]
				cfg.Storage.Path = ""
				if len(args) == 2 {
					cfg.Storage.Path = args[1]
				}
			}, "Storage set to: "+args[0])
		},
	}

	cmd.AddCommand(show, setCalendar, setStorage)
	return cmd
}

func updateConfig(cmd *cobra.Command, mutate func(*config.Config), msg string) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		defaultPath, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFile(defaultPath)
		if err != nil {
			return err
		}
		mutate(cfg)
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	} else {
		cfg, err := config.ReadFile(path)
		if err != nil {
			return err
		}
		mutate(cfg)
		if err := config.SaveFile(path, cfg); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
