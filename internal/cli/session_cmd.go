package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/service"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "session",
		Aliases: []string{"s"},
		Short:   "Log and manage practice sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(a),
		newSessionEditCmd(a),
		newSessionListCmd(a),
		newSessionRemoveCmd(a),
		newSessionImportCmd(a),
	)

	return cmd
}

// sessionFlags are shared by log and edit.
type sessionFlags struct {
	itemID, lang, itemType, name string
	forceNew                     bool
	date, status, notes          string
	difficulty, topic            string
	hours                        float64
	tags                         []string
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.itemID, "item-id", "", "Work item ID (or short prefix)")
	fl.StringVarP(&f.lang, "lang", "l", "", "Language code, used with --name")
	fl.StringVarP(&f.itemType, "type", "t", "", "Exercise or Project (default Exercise)")
	fl.StringVarP(&f.name, "name", "n", "", "Work item name, resolved against existing items")
	fl.BoolVar(&f.forceNew, "new", false, "Create a new item even when similar ones exist")
	fl.StringVarP(&f.date, "date", "d", "", "Session date: YYYY-MM-DD, today, yesterday or -N (default today)")
	fl.StringVarP(&f.status, "status", "s", "", "Planned, In Progress, Completed or Blocked (default Completed)")
	fl.Float64VarP(&f.hours, "hours", "H", 0, "Hours spent")
	fl.StringVar(&f.notes, "notes", "", "Free-form notes")
	fl.StringSliceVar(&f.tags, "tag", nil, "Tag (repeatable or comma-separated)")
	fl.StringVar(&f.difficulty, "difficulty", "", "Override the item's default difficulty")
	fl.StringVar(&f.topic, "topic", "", "Override the item's default topic")
}

// apply copies explicitly set flags onto in.
func (f *sessionFlags) apply(ctx context.Context, cmd *cobra.Command, a *App, in *app.SessionInput) error {
	fl := cmd.Flags()
	if f.itemID != "" {
		id, err := resolveItemArg(ctx, a, f.itemID)
		if err != nil {
			return err
		}
		in.ItemID = id
	}
	if f.name != "" {
		if f.itemID != "" {
			return fmt.Errorf("use either --item-id or --name, not both")
		}
		if f.lang == "" {
			return fmt.Errorf("--name requires --lang")
		}
		t, err := parseTypeFlag(f.itemType)
		if err != nil {
			return err
		}
		in.ItemID = ""
		in.LanguageCode, in.ItemType, in.ItemName = f.lang, t, f.name
		in.ForceCreate = f.forceNew
	}
	if fl.Changed("date") {
		d, err := parseDate(f.date, a.now())
		if err != nil {
			return err
		}
		in.Date = d
	}
	if fl.Changed("status") {
		in.Status = domain.SessionStatus(f.status)
	}
	if fl.Changed("hours") {
		if f.hours < 0 {
			return fmt.Errorf("--hours must be >= 0")
		}
		in.HoursSpent = f.hours
	}
	if fl.Changed("notes") {
		in.Notes = f.notes
	}
	if fl.Changed("tag") {
		in.Tags = f.tags
	}
	if fl.Changed("difficulty") {
		in.Difficulty = domain.Difficulty(f.difficulty)
	}
	if fl.Changed("topic") {
		in.Topic = f.topic
	}
	return nil
}

func newSessionLogCmd(a *App) *cobra.Command {
	var f sessionFlags

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a practice session",
		Long: `Log a practice session against a work item.

Name the item with --item-id, or with --lang and --name. A name that matches
no item creates one with defaults from the language pack. A name close to
existing items lists them instead; pick one with --item-id or pass --new.`,
		Example: `  codelog session log -l go -n "Worker Pool" -t project -H 1.5
  codelog session log --item-id 0f8e3c2a -H 2 --status "in progress" --tag goroutines`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if f.itemID == "" && f.name == "" {
				return fmt.Errorf("name the work item with --item-id or --lang/--name")
			}
			if !cmd.Flags().Changed("hours") {
				return fmt.Errorf("--hours is required")
			}

			in := app.SessionInput{
				Date:   domain.DateOf(a.now()),
				Status: domain.StatusCompleted,
			}
			if err := f.apply(ctx, cmd, a, &in); err != nil {
				return err
			}
			return upsertSession(ctx, cmd, a, in)
		},
	}
	f.register(cmd)

	return cmd
}

func newSessionEditCmd(a *App) *cobra.Command {
	var f sessionFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a logged session; points and progress are recomputed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionArg(ctx, a, args[0])
			if err != nil {
				return err
			}
			existing, err := a.Sessions.GetByID(ctx, id)
			if err != nil {
				return err
			}

			in := app.SessionInput{
				ID:         existing.ID,
				ItemID:     existing.ItemID,
				Date:       existing.Date,
				Status:     existing.Status,
				HoursSpent: existing.HoursSpent,
				Notes:      existing.Notes,
				Tags:       existing.Tags,
				Difficulty: existing.Difficulty,
				Topic:      existing.Topic,
			}
			if err := f.apply(ctx, cmd, a, &in); err != nil {
				return err
			}
			return upsertSession(ctx, cmd, a, in)
		},
	}
	f.register(cmd)

	return cmd
}

// upsertSession saves in, handling a suggestion round-trip when the item
// name is ambiguous.
func upsertSession(ctx context.Context, cmd *cobra.Command, a *App, in app.SessionInput) error {
	out := cmd.OutOrStdout()

	id, err := a.Sessions.Upsert(ctx, in)
	var amb *service.AmbiguousItemError
	if errors.As(err, &amb) {
		fmt.Fprint(out, formatter.FormatSuggestions(amb.Suggestions))
		if !a.interactive() {
			return err
		}
		choice, pickErr := a.pick(ctx, in.ItemName, amb.Suggestions)
		if pickErr != nil {
			return pickErr
		}
		if choice == "" {
			in.ForceCreate = true
		} else {
			in.ItemID = choice
		}
		id, err = a.Sessions.Upsert(ctx, in)
	}
	if err != nil {
		return err
	}

	sess, err := a.Sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	item, err := a.Items.GetByID(ctx, sess.ItemID)
	if err != nil {
		return err
	}
	fmt.Fprint(out, formatter.FormatSessionSaved(sess, item, in.ID != ""))
	return nil
}

func newSessionListCmd(a *App) *cobra.Command {
	var itemID string
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions, or every session of one item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if itemID != "" {
				id, err := resolveItemArg(ctx, a, itemID)
				if err != nil {
					return err
				}
				sessions, err := a.Sessions.ListByItem(ctx, id)
				if err != nil {
					return err
				}
				if len(sessions) == 0 {
					fmt.Fprintln(out, formatter.Dim("No sessions found."))
					return nil
				}
				fmt.Fprint(out, formatter.FormatSessionTable(sessions))
				return nil
			}

			if !cmd.Flags().Changed("days") {
				days = a.recentDays()
			}
			views, err := a.Sessions.ListRecent(ctx, days)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatRecentSessions(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&itemID, "item-id", "", "Show all sessions of this work item")
	cmd.Flags().IntVar(&days, "days", 0, "Number of recent days to show (default from config, 7)")

	return cmd
}

func newSessionRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a session; the item's stats are recomputed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSessionArg(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Sessions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", id)
			return nil
		},
	}
}
