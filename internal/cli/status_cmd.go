package cli

import (
	"fmt"

	"github.com/alexanderramin/codelog/internal/app"
	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(a *App) *cobra.Command {
	var lang string
	var days int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-language progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := app.NewStatusRequest()
			now := a.now()
			req.Now = &now
			req.LanguageCode = lang
			req.RecentDays = a.recentDays()
			if cmd.Flags().Changed("days") {
				req.RecentDays = days
			}

			resp, err := a.Status.GetStatus(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			return nil
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Limit to one language")
	cmd.Flags().IntVar(&days, "days", 0, "Window for recent hours (default from config, 7)")

	return cmd
}
