package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/codelog/internal/cli/formatter"
	"github.com/alexanderramin/codelog/internal/domain"
	"github.com/alexanderramin/codelog/internal/importer"
	"github.com/alexanderramin/codelog/internal/service"
	"github.com/spf13/cobra"
)

func newSessionImportCmd(a *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import sessions from a YAML or JSON file",
		Long: `Import sessions from a YAML or JSON file.

The whole file is validated before anything is written. Sessions are then
saved oldest first, each in its own transaction. A name close to existing
items is reported and skipped; set "new: true" on the entry to create it.`,
		Example: `  defaults:
    language: go
  sessions:
    - item: Worker Pool
      type: project
      date: 2025-03-01
      hours: 1.5
      tags: [goroutines]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(out, "  %s %v\n", formatter.StyleRed.Render("✖"), e)
				}
				return fmt.Errorf("%s: %d validation errors", args[0], len(errs))
			}
			inputs, err := importer.Convert(schema)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(out, "%s is valid: %d sessions\n", args[0], len(inputs))
				return nil
			}

			report, err := importer.Run(ctx, a.Sessions, inputs)
			if err != nil {
				return err
			}
			for _, f := range report.Failures {
				mark := formatter.StyleRed.Render("✖")
				var amb *service.AmbiguousItemError
				if errors.As(f.Err, &amb) {
					mark = formatter.StyleYellow.Render("?")
				}
				fmt.Fprintf(out, "  %s %s %s: %v\n", mark, f.Input.Date.Format(domain.DateLayout), f.Input.ItemName, f.Err)
			}

			fmt.Fprintf(out, "Imported %d of %d sessions\n", report.Imported, len(inputs))
			if len(report.Failures) > 0 {
				return fmt.Errorf("%d sessions were not imported", len(report.Failures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without writing")

	return cmd
}
