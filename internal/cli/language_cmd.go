package cli

import (
	"fmt"

	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/spf13/cobra"
)

func newLanguageCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "language",
		Aliases: []string{"lang"},
		Short:   "Manage languages",
	}
	cmd.AddCommand(newLanguageListCmd(a), newLanguageAddCmd(a))
	return cmd
}

func newLanguageListCmd(a *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List languages",
		RunE: func(cmd *cobra.Command, args []string) error {
			languages, err := a.Languages.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLanguages(languages))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Include inactive languages")
	return cmd
}

func newLanguageAddCmd(a *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add CODE",
		Short: "Add or update a language",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l := &domain.Language{Code: args[0], DisplayName: name, Color: color, Active: true}
			if err := a.Languages.Add(cmd.Context(), l); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added language %s (%s)\n", l.Code, l.DisplayName)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name (default: the code)")
	cmd.Flags().StringVar(&color, "color", "", "Hex color used in listings, e.g. #00ADD8")
	return cmd
}
