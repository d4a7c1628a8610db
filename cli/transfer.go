package cli

import (
	"fmt"
	"local-notes/app"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(e *env) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every note as JSON or YAML",
		Long: `Export writes every note to stdout, or to --output.
When --output is a directory the file is named notes-export-YYYY-MM-DD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "yaml" {
				return fmt.Errorf("unknown format %q, want json or yaml", format)
			}

			return e.withApp(cmd, func(a *app.App) error {
				var (
					data []byte
					err  error
				)
				if format == "yaml" {
					data, err = a.NoteService.ExportYAML(cmd.Context())
				} else {
					data, err = a.NoteService.Export(cmd.Context())
				}
				if err != nil {
					return err
				}

				if output == "" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if info, err := os.Stat(output); err == nil && info.IsDir() {
					output = filepath.Join(output, fmt.Sprintf("notes-export-%s.%s", time.Now().Format("2006-01-02"), format))
				}

				if err := os.WriteFile(output, data, 0o644); err != nil {
					return fmt.Errorf("writing export: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported notes to %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Add the notes of a JSON export as new notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading import: %w", err)
			}

			return e.withApp(cmd, func(a *app.App) error {
				count, err := a.NoteService.Import(cmd.Context(), data)
				if err != nil {
					return fmt.Errorf("imported %d notes before failing: %w", count, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d notes\n", count)
				return nil
			})
		},
	}
}
