// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/records"
	"github.com/pdiddy/article-engine/pkg/types"
)

var reshapeCmd = &cobra.Command{
	Use:   "reshape",
	Short: "Map article records into the generic GraphRAG input schema",
	Long: `Reshape reads articles.jsonl line by line and writes one GraphRAG input
record per article: id is "<doc_id>_<article_number>", title and text pass
through, and the remaining fields move into a nested metadata object.

Malformed lines follow --on-error: "skip" (the default) warns with the line
number and continues, "abort" fails on the first bad line. With skip the
run still exits 0; the skip count is printed in the summary.`,
	RunE: runReshape,
}

func runReshape(cmd *cobra.Command, args []string) error {
	articlesPath, _ := cmd.Flags().GetString("articles")
	outPath, _ := cmd.Flags().GetString("out")
	onError, _ := cmd.Flags().GetString("on-error")

	policy := types.LineErrorPolicy(configDefault(onError, "reshape.on_error", string(types.LineErrorSkip)))
	if policy != types.LineErrorSkip && policy != types.LineErrorAbort {
		return fmt.Errorf("invalid --on-error %q: use skip or abort", policy)
	}

	if _, err := os.Stat(articlesPath); err != nil {
		return fmt.Errorf("articles file %s: %w", articlesPath, err)
	}

	_, err := records.Reshape(articlesPath, outPath, policy, os.Stdout)
	return err
}

func init() {
	reshapeCmd.Flags().String("articles", "out/articles.jsonl", "path to the extracted articles.jsonl")
	reshapeCmd.Flags().String("out", "out/graphrag_input.jsonl", "output path for the reshaped JSONL")
	reshapeCmd.Flags().String("on-error", "", "malformed-line policy: skip or abort (default skip)")

	rootCmd.AddCommand(reshapeCmd)
}
