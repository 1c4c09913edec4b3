package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"

	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/entrypoint"
	"github.com/mrlokans/highlights-reader/internal/services"
)

type importOptions struct {
	file        string
	contentType string
	dryRun      bool
}

func newImportCommand(opts *globalOptions) *cobra.Command {
	flags := &importOptions{}

	cmd := &cobra.Command{
		Use:       "import (clippings|json) --file PATH",
		Short:     "Import a highlights file into the database",
		Long:      "Import a Kindle 'My Clippings.txt' file or a JSON array of highlights.\nThe file goes through the same checks as an upload to the HTTP API.",
		Example:   "  highlights-reader import clippings --file \"/Volumes/Kindle/documents/My Clippings.txt\"\n  highlights-reader import json --file export.json --dry-run",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(services.ModeClippings), string(services.ModeJSON)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := services.ParseMode(args[0])
			if !ok {
				return fmt.Errorf("unknown import mode %q", args[0])
			}
			return runImport(cmd, opts, flags, mode)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", "", "file to import (required)")
	cmd.Flags().StringVar(&flags.contentType, "type", "", "MIME type of the file (detected from content when empty)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "validate the file without storing anything")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts *globalOptions, flags *importOptions, mode services.Mode) error {
	out := cmd.OutOrStdout()

	contentType := flags.contentType
	if contentType == "" {
		detected, err := mimetype.DetectFile(flags.file)
		if err != nil {
			return fmt.Errorf("failed to detect file type: %w", err)
		}
		contentType = detected.String()
	}

	f, err := os.Open(flags.file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", flags.file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", flags.file, err)
	}

	app, err := entrypoint.NewApp(opts.cfg, opts.logger)
	if err != nil {
		return err
	}
	defer app.Close()

	importer := app.Imports
	if flags.dryRun {
		importer = services.NewImportService(dryRunStore{}, opts.cfg.Upload, opts.logger)
		fmt.Fprintln(out, "DRY RUN MODE - No changes will be made")
	}

	file := &services.File{
		Name:        filepath.Base(flags.file),
		ContentType: contentType,
		Size:        info.Size(),
		Content:     f,
	}

	result, err := importer.Import(cmd.Context(), mode, file)
	if !flags.dryRun {
		app.Audit.LogImport(cmd.Context(), string(mode), result.Imported, result.Skipped, err)
	}
	if err != nil {
		if serr, ok := services.AsError(err); ok {
			localizer := app.Translator.Localizer(app.Translator.Match(opts.lang, envLocale()))
			return errors.New(app.Translator.Message(localizer, string(serr.Kind), serr.Params))
		}
		return err
	}

	fmt.Fprintf(out, "File: %s (%s)\n", file.Name, contentType)
	fmt.Fprintf(out, "Imported: %d\n", result.Imported)
	fmt.Fprintf(out, "Skipped:  %d\n", result.Skipped)
	return nil
}

// envLocale turns a POSIX locale such as en_US.UTF-8 into a language tag.
func envLocale() string {
	lang := os.Getenv("LC_ALL")
	if lang == "" {
		lang = os.Getenv("LANG")
	}
	if i := strings.IndexAny(lang, ".@"); i >= 0 {
		lang = lang[:i]
	}
	if lang == "C" || lang == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(lang, "_", "-")
}

// dryRunStore accepts a batch without writing it.
type dryRunStore struct{}

func (dryRunStore) CreateHighlights(_ context.Context, highlights []entities.Highlight) (int, error) {
	return len(highlights), nil
}
