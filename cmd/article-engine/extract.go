// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/extract"
	"github.com/pdiddy/article-engine/internal/records"
	"github.com/pdiddy/article-engine/internal/segment"
	"github.com/pdiddy/article-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Segment PDFs into article records and HTML sidecars",
	Long: `Extract scans --pdfs recursively for PDF files, segments each document's
text by article-header lines, and writes one JSON record per article to
<out>/articles.jsonl plus one positioned-HTML sidecar per page under
<out>/html/.

A document in which no header matches yields zero articles and is reported
as a data-quality signal, not an error. A document that fails to parse is
logged and skipped; the batch continues.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	pdfDir, _ := cmd.Flags().GetString("pdfs")
	outDir, _ := cmd.Flags().GetString("out")
	jurisdiction, _ := cmd.Flags().GetString("jurisdiction")
	lang, _ := cmd.Flags().GetString("lang")
	pattern, _ := cmd.Flags().GetString("pattern")
	patternsFile, _ := cmd.Flags().GetString("patterns")
	preamble, _ := cmd.Flags().GetString("preamble")
	previewChars, _ := cmd.Flags().GetInt("preview-chars")
	noHTML, _ := cmd.Flags().GetBool("no-html")

	cfg := types.ExtractConfig{
		PDFDir:        pdfDir,
		OutDir:        outDir,
		Jurisdiction:  configDefault(jurisdiction, "extract.jurisdiction", "CH"),
		Lang:          configDefault(lang, "extract.lang", "fr"),
		HeaderPattern: configDefault(pattern, "extract.header_pattern", ""),
		Preamble:      types.PreamblePolicy(configDefault(preamble, "extract.preamble", string(types.PreambleDiscard))),
		PreviewChars:  previewChars,
		WriteHTML:     !noHTML,
	}

	if cfg.Preamble != types.PreambleDiscard && cfg.Preamble != types.PreambleKeep {
		return fmt.Errorf("invalid --preamble %q: use discard or keep", cfg.Preamble)
	}

	if patternsFile != "" {
		combined, err := segment.LoadPatterns(patternsFile)
		if err != nil {
			return err
		}
		cfg.HeaderPattern = combined
	}

	seg, err := segment.New(cfg.HeaderPattern, cfg.Preamble)
	if err != nil {
		return err
	}

	pdfPaths, err := extract.FindPDFs(cfg.PDFDir)
	if err != nil {
		return err
	}
	if len(pdfPaths) == 0 {
		fmt.Fprintf(os.Stderr, "no PDF files found under %s\n", cfg.PDFDir)
	}

	if cfg.WriteHTML {
		if err := os.MkdirAll(filepath.Join(cfg.OutDir, "html"), 0o755); err != nil {
			return fmt.Errorf("creating sidecar directory: %w", err)
		}
	}

	rw, err := records.NewWriter(filepath.Join(cfg.OutDir, "articles.jsonl"))
	if err != nil {
		return err
	}

	result := extract.Batch(pdfPaths, cfg, seg, rw, os.Stdout)
	if err := rw.Close(); err != nil {
		return fmt.Errorf("closing articles.jsonl: %w", err)
	}

	// Per-document failures are tolerated; only a fully failed batch with
	// no successes is an error.
	if result.HasFailures() && result.Processed == 0 {
		return fmt.Errorf("all %d document(s) failed extraction", result.Failed)
	}
	return nil
}

func init() {
	extractCmd.Flags().String("pdfs", "pdfs", "input directory, searched recursively for *.pdf")
	extractCmd.Flags().String("out", "out", "output directory for articles.jsonl and html/")
	extractCmd.Flags().String("jurisdiction", "", "jurisdiction code stamped on every article (default CH)")
	extractCmd.Flags().String("lang", "", "language code stamped on every article (default fr)")
	extractCmd.Flags().String("pattern", "", "article-header regex overriding the built-in pattern")
	extractCmd.Flags().String("patterns", "", "YAML file of named header patterns, OR-combined")
	extractCmd.Flags().String("preamble", "", "pre-header text policy: discard or keep (default discard)")
	extractCmd.Flags().Int("preview-chars", 4000, "length of text_preview in characters")
	extractCmd.Flags().Bool("no-html", false, "skip HTML sidecar generation")

	rootCmd.AddCommand(extractCmd)
}
