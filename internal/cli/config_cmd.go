package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and tune scoring factors",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show difficulty weights and status multipliers",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := a.Config.Get(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScoringConfig(cfg))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-weight DIFFICULTY VALUE",
			Short: "Set the point weight of a difficulty",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseFactor(args[1])
				if err != nil {
					return err
				}
				if err := a.Config.SetDifficultyWeight(cmd.Context(), domain.Difficulty(args[0]), v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Weight for %s set to %g\n", args[0], v)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set-multiplier STATUS VALUE",
			Short: "Set the point multiplier of a session status",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				v, err := parseFactor(args[1])
				if err != nil {
					return err
				}
				if err := a.Config.SetStatusMultiplier(cmd.Context(), domain.SessionStatus(args[0]), v); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Multiplier for %s set to %g\n", args[0], v)
				return nil
			},
		},
	)
	return cmd
}

func parseFactor(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid factor %q: %w", s, err)
	}
	return v, nil
}
