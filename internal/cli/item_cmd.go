package cli

import (
	"fmt"

	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/repository"
	"github.com/alexanderramin/codelog/internal/resolver"
	"github.com/spf13/cobra"
)

func newItemCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "item",
		Aliases: []string{"i"},
		Short:   "Resolve and inspect work items",
	}

	cmd.AddCommand(
		newItemResolveCmd(a),
		newItemListCmd(a),
		newItemShowCmd(a),
		newItemDeactivateCmd(a),
		newItemRecomputeCmd(a),
	)

	return cmd
}

func newItemResolveCmd(a *App) *cobra.Command {
	var lang, itemType string
	var forceNew bool

	cmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "Match a name to an existing item, suggest look-alikes, or create it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseTypeFlag(itemType)
			if err != nil {
				return err
			}
			var res resolver.Resolution
			if forceNew {
				res, err = a.Items.Create(cmd.Context(), lang, t, args[0])
			} else {
				res, err = a.Items.Resolve(cmd.Context(), lang, t, args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResolution(res))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Language code")
	cmd.Flags().StringVarP(&itemType, "type", "t", "", "Exercise or Project (default Exercise)")
	cmd.Flags().BoolVar(&forceNew, "new", false, "Skip suggestions and create unless the slug exists")
	_ = cmd.MarkFlagRequired("lang")

	return cmd
}

func newItemListCmd(a *App) *cobra.Command {
	var lang, itemType string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.WorkItemFilter{LanguageCode: lang, IncludeInactive: all}
			if itemType != "" {
				t, err := parseTypeFlag(itemType)
				if err != nil {
					return err
				}
				filter.Type = t
			}
			items, err := a.Items.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatItemList(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Filter by language code")
	cmd.Flags().StringVarP(&itemType, "type", "t", "", "Filter by type")
	cmd.Flags().BoolVar(&all, "all", false, "Include deactivated items")

	return cmd
}

func newItemShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show an item's stats and session log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveItemArg(ctx, a, args[0])
			if err != nil {
				return err
			}
			item, err := a.Items.GetByID(ctx, id)
			if err != nil {
				return err
			}
			sessions, err := a.Sessions.ListByItem(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemDetail(item, sessions, a.now()))
			return nil
		},
	}
}

func newItemDeactivateCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Retire an item; its sessions are kept and its name becomes reusable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveItemArg(ctx, a, args[0])
			if err != nil {
				return err
			}
			if err := a.Items.Deactivate(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated work item %s\n", id)
			return nil
		},
	}
}

func newItemRecomputeCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "recompute [ID]",
		Short: "Rebuild cached stats from the session log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if all {
				if len(args) > 0 {
					return fmt.Errorf("pass either an ID or --all")
				}
				n, err := a.Items.RecomputeAll(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Recomputed %d work items\n", n)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("pass an item ID or --all")
			}

			id, err := resolveItemArg(ctx, a, args[0])
			if err != nil {
				return err
			}
			stats, err := a.Items.Recompute(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Recomputed %s: %d logs, %s, streak %s\n", id, stats.TotalLogs,
				formatter.FormatHours(stats.TotalHours), formatter.FormatStreak(stats.CurrentStreakDays))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Recompute every active item")

	return cmd
}
