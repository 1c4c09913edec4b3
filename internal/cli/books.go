package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-reader/internal/entrypoint"
	"github.com/mrlokans/highlights-reader/internal/exporters"
)

func newBooksCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "books",
		Short: "List imported books with their highlight counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := entrypoint.NewApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			books, err := app.Reader.Books(cmd.Context())
			if err != nil {
				return err
			}

			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No books found")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tAUTHOR\tHIGHLIGHTS")
			for _, b := range books {
				fmt.Fprintf(w, "%s\t%s\t%d\n", b.BookTitle, b.Author, b.Count)
			}
			return w.Flush()
		},
	}
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var title, outDir string

	cmd := &cobra.Command{
		Use:   "export --title TITLE",
		Short: "Write the highlights of one book to a markdown file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title = strings.TrimSpace(title)
			if title == "" {
				return errors.New("--title must not be empty")
			}

			app, err := entrypoint.NewApp(opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer app.Close()

			highlights, err := app.Reader.HighlightsByBook(cmd.Context(), title)
			if err != nil {
				return err
			}
			if len(highlights) == 0 {
				return fmt.Errorf("no highlights found for %q", title)
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			outputPath := filepath.Join(outDir, exporters.Filename(title))
			content := exporters.GenerateMarkdown(title, highlights, time.Now())
			if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d highlights to %s\n", len(highlights), outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "book title (required)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
