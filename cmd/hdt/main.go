package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"hdt/internal/bootstrap"
	sessiondto "hdt/internal/modules/session/dto"
	"hdt/internal/platform/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir    string
	configFile string
}

func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	root := &cobra.Command{
		Use:           "hdt",
		Short:         "Hundred Days Tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.dataDir, "data-dir", config.DefaultDataDir(), "directory holding progress, config and logs")
	root.PersistentFlags().StringVar(&f.configFile, "config", "", "config file (default <data-dir>/config.yaml)")

	root.AddCommand(newTUICmd(f))
	root.AddCommand(newStatusCmd(f))
	root.AddCommand(newDayCmd(f))
	root.AddCommand(newTaskCmd(f))
	root.AddCommand(newNoteCmd(f))
	root.AddCommand(newCompleteCmd(f))
	root.AddCommand(newProgressCmd(f))
	root.AddCommand(newProjectsCmd(f))
	root.AddCommand(newResourcesCmd(f))
	root.AddCommand(newTimerCmd(f))
	root.AddCommand(newSettingsCmd(f))
	root.AddCommand(newExportCmd(f))
	root.AddCommand(newResetCmd(f))
	return root
}

func loadApp(ctx context.Context, f *rootFlags, tui bool) (*bootstrap.App, error) {
	if err := os.MkdirAll(f.dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	cfg, err := config.Load(f.dataDir, f.configFile)
	if err != nil {
		return nil, err
	}
	if tui {
		cfg = bootstrap.TUIConfig(cfg)
	}
	return bootstrap.New(ctx, cfg)
}

// withApp wires the app for one command run and always closes it.
func withApp(f *rootFlags, fn func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		app, err := loadApp(cmd.Context(), f, false)
		if err != nil {
			return err
		}
		defer func() { err = errors.Join(err, app.Close()) }()
		return fn(cmd.Context(), app, cmd.OutOrStdout(), args)
	}
}

func newTUICmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(cmd.Context(), f, true)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, app.Close()) }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newStatusCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the dashboard",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			d, err := app.ProgressCLI.Dashboard(ctx)
			if err != nil {
				return err
			}
			printDashboard(out, d)
			return nil
		}),
	}
}

func newDayCmd(f *rootFlags) *cobra.Command {
	day := &cobra.Command{Use: "day", Short: "Browse curriculum days"}

	day.AddCommand(&cobra.Command{
		Use:   "show [N]",
		Short: "Show a day (default: current day)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
			n := 0
			if len(args) == 1 {
				v, err := parseDay(args[0])
				if err != nil {
					return err
				}
				n = v
			}
			d, err := app.ProgressCLI.ShowDay(ctx, n)
			if err != nil {
				return err
			}
			printDay(out, d)
			return nil
		}),
	})
	day.AddCommand(&cobra.Command{
		Use:   "next",
		Short: "Move to the next day",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			d, err := app.ProgressCLI.NextDay(ctx)
			if err != nil {
				return err
			}
			printDay(out, d)
			return nil
		}),
	})
	day.AddCommand(&cobra.Command{
		Use:   "prev",
		Short: "Move to the previous day",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			d, err := app.ProgressCLI.PrevDay(ctx)
			if err != nil {
				return err
			}
			printDay(out, d)
			return nil
		}),
	})
	day.AddCommand(&cobra.Command{
		Use:   "goto N",
		Short: "Jump to day N (clamped to 1..100)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
			n, err := parseDay(args[0])
			if err != nil {
				return err
			}
			d, err := app.ProgressCLI.GoToDay(ctx, n)
			if err != nil {
				return err
			}
			printDay(out, d)
			return nil
		}),
	})
	return day
}

func newTaskCmd(f *rootFlags) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Daily task checklist"}

	var day int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the day's tasks",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			d, err := app.ProgressCLI.ShowDay(ctx, day)
			if err != nil {
				return err
			}
			printTasks(out, d)
			return nil
		}),
	}
	list.Flags().IntVar(&day, "day", 0, "day number (default: current day)")

	setter := func(use, short string, done bool) *cobra.Command {
		var day int
		c := &cobra.Command{
			Use:   use + " <index>",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
				idx, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("task index %q is not a number", args[0])
				}
				d, err := app.ProgressCLI.SetTask(ctx, day, idx-1, done)
				if err != nil {
					return err
				}
				printTasks(out, d)
				return nil
			}),
		}
		c.Flags().IntVar(&day, "day", 0, "day number (default: current day)")
		return c
	}

	task.AddCommand(list, setter("done", "Check a task (1-based index)", true), setter("undo", "Uncheck a task (1-based index)", false))
	return task
}

func newNoteCmd(f *rootFlags) *cobra.Command {
	note := &cobra.Command{Use: "note", Short: "Reflection notes"}

	var day, understanding int
	var challenges string
	set := &cobra.Command{
		Use:   "set <text>",
		Short: "Save notes for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes := args[0]
			var ch *string
			if cmd.Flags().Changed("challenges") {
				ch = &challenges
			}
			var u *int
			if cmd.Flags().Changed("understanding") {
				u = &understanding
			}
			return withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
				d, err := app.ProgressCLI.SaveNote(ctx, day, &notes, ch, u)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "saved notes for day %d\n", d.Day)
				return nil
			})(cmd, args)
		},
	}
	set.Flags().IntVar(&day, "day", 0, "day number (default: current day)")
	set.Flags().StringVar(&challenges, "challenges", "", "challenges faced")
	set.Flags().IntVar(&understanding, "understanding", 0, "self-rated understanding 1-5")

	note.AddCommand(set)
	return note
}

func newCompleteCmd(f *rootFlags) *cobra.Command {
	var day, understanding int
	var notes, challenges string
	c := &cobra.Command{
		Use:   "complete",
		Short: "Complete a day (default: current day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var n, ch *string
			var u *int
			if cmd.Flags().Changed("note") {
				n = &notes
			}
			if cmd.Flags().Changed("challenges") {
				ch = &challenges
			}
			if cmd.Flags().Changed("understanding") {
				u = &understanding
			}
			return withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
				res, err := app.ProgressCLI.Complete(ctx, day, n, ch, u)
				if err != nil {
					return err
				}
				printCompletion(out, res)
				return nil
			})(cmd, args)
		},
	}
	c.Flags().IntVar(&day, "day", 0, "day number (default: current day)")
	c.Flags().StringVar(&notes, "note", "", "reflection notes")
	c.Flags().StringVar(&challenges, "challenges", "", "challenges faced")
	c.Flags().IntVar(&understanding, "understanding", 0, "self-rated understanding 1-5")
	return c
}

func newProgressCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show calendar, phases, skills and milestones",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			p, err := app.ProgressCLI.Progress(ctx)
			if err != nil {
				return err
			}
			printProgress(out, p)
			return nil
		}),
	}
}

func newProjectsCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List milestone projects",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			ps, err := app.ProgressCLI.Projects(ctx)
			if err != nil {
				return err
			}
			for _, p := range ps {
				_, _ = fmt.Fprintf(out, "day %3d  %-12s %-12s %s\n", p.Day, p.Status, p.Difficulty, p.Name)
			}
			return nil
		}),
	}
}

func newResourcesCmd(f *rootFlags) *cobra.Command {
	var phase int
	c := &cobra.Command{
		Use:   "resources",
		Short: "List learning resources for a phase",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			r, err := app.ProgressCLI.Resources(ctx, phase)
			if err != nil {
				return err
			}
			printResources(out, r)
			return nil
		}),
	}
	c.Flags().IntVar(&phase, "phase", 0, "phase number 1-5 (default: current phase)")
	return c
}

func newTimerCmd(f *rootFlags) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Focus session timer"}

	var mode string
	var duration time.Duration
	start := &cobra.Command{
		Use:   "start",
		Short: "Start or resume the timer",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			s, err := app.SessionCLI.Start(ctx, mode, duration)
			if err != nil {
				return err
			}
			printTimer(out, s)
			return nil
		}),
	}
	start.Flags().StringVar(&mode, "mode", "", "countdown or stopwatch (default from config)")
	start.Flags().DurationVar(&duration, "duration", 0, "countdown length (default from config)")

	status := func(use, short string, fn func(*bootstrap.App) func(context.Context) (sessiondto.StatusOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
				s, err := fn(app)(ctx)
				if err != nil {
					return err
				}
				printTimer(out, s)
				return nil
			}),
		}
	}

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the timer and credit the session",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			res, err := app.SessionCLI.Stop(ctx)
			if err != nil {
				return err
			}
			printStop(out, res)
			return nil
		}),
	}

	var runDuration time.Duration
	run := &cobra.Command{
		Use:   "run",
		Short: "Run a countdown in the foreground until it finishes",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			res, err := app.SessionCLI.Run(ctx, runDuration, func(s sessiondto.StatusOutput) {
				_, _ = fmt.Fprintf(out, "\r%s remaining ", formatClock(s.Remaining))
			})
			_, _ = fmt.Fprintln(out)
			if errors.Is(err, context.Canceled) {
				_, _ = fmt.Fprintln(out, "timer paused; resume with `hdt timer start`")
				return nil
			}
			if err != nil {
				return err
			}
			printStop(out, res)
			return nil
		}),
	}
	run.Flags().DurationVar(&runDuration, "duration", 0, "countdown length (default from config)")

	timer.AddCommand(
		start,
		status("pause", "Pause the running timer", func(a *bootstrap.App) func(context.Context) (sessiondto.StatusOutput, error) {
			return a.SessionCLI.Pause
		}),
		status("reset", "Discard the timer without crediting it", func(a *bootstrap.App) func(context.Context) (sessiondto.StatusOutput, error) {
			return a.SessionCLI.Reset
		}),
		status("status", "Show the timer", func(a *bootstrap.App) func(context.Context) (sessiondto.StatusOutput, error) {
			return a.SessionCLI.Status
		}),
		stop,
		run,
	)
	return timer
}

func newSettingsCmd(f *rootFlags) *cobra.Command {
	settings := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			s, err := app.ProgressCLI.Settings(ctx)
			if err != nil {
				return err
			}
			printSettings(out, s)
			return nil
		}),
	}

	settings.AddCommand(&cobra.Command{
		Use:       "theme <system|light|dark>",
		Short:     "Set the color theme",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"system", "light", "dark"},
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
			s, err := app.ProgressCLI.SetTheme(ctx, args[0])
			if err != nil {
				return err
			}
			printSettings(out, s)
			return nil
		}),
	})
	settings.AddCommand(&cobra.Command{
		Use:   "start-date YYYY-MM-DD",
		Short: "Set the challenge start date",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
			s, err := app.ProgressCLI.SetStartDate(ctx, args[0])
			if err != nil {
				return err
			}
			printSettings(out, s)
			return nil
		}),
	})
	settings.AddCommand(&cobra.Command{
		Use:   "daily-goal N",
		Short: "Set the daily goal in hours (1-12)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, args []string) error {
			hours, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("daily goal %q is not a number", args[0])
			}
			s, err := app.ProgressCLI.SetDailyGoal(ctx, hours)
			if err != nil {
				return err
			}
			printSettings(out, s)
			return nil
		}),
	})
	return settings
}

func newExportCmd(f *rootFlags) *cobra.Command {
	var format, dir string
	c := &cobra.Command{
		Use:   "export",
		Short: "Export progress as JSON or a markdown journal",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			if dir == "" {
				dir = app.Config.Export.Dir
			}
			res, err := app.ProgressCLI.Export(ctx, format, dir)
			if err != nil {
				return err
			}
			for _, p := range res.Paths {
				_, _ = fmt.Fprintln(out, p)
			}
			_, _ = fmt.Fprintf(out, "exported %d file(s) as %s\n", len(res.Paths), res.Format)
			return nil
		}),
	}
	c.Flags().StringVar(&format, "format", "json", "json or markdown")
	c.Flags().StringVar(&dir, "out", "", "output directory (default from config)")
	return c
}

func newResetCmd(f *rootFlags) *cobra.Command {
	var yes bool
	c := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress (requires --yes)",
		RunE: withApp(f, func(ctx context.Context, app *bootstrap.App, out io.Writer, _ []string) error {
			if _, err := app.ProgressCLI.Reset(ctx, yes); err != nil {
				return fmt.Errorf("%w (pass --yes to confirm)", err)
			}
			_, _ = fmt.Fprintln(out, "progress reset to defaults")
			return nil
		}),
	}
	c.Flags().BoolVar(&yes, "yes", false, "confirm the reset")
	return c
}

func parseDay(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("day %q is not a number", s)
	}
	return n, nil
}
