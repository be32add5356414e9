// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/article-engine/internal/catalog"
	"github.com/pdiddy/article-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local article catalog (ingest, search, export)",
	Long: `Catalog maintains a local SQLite keyword index over extracted articles.
Use subcommands to ingest an articles.jsonl file, search it with FTS5
full-text queries (accent-insensitive), or export it to YAML or JSON.

Semantic indexing and embeddings remain with the downstream GraphRAG
pipeline; the catalog only provides keyword lookup and provenance.`,
}

// --- ingest subcommand ---

var catalogIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load an articles.jsonl file into the catalog",
	Long: `Ingest loads article records into the catalog database. The source file's
md5 is kept in a manifest; an unchanged file is skipped on re-runs unless
--force is given. Each ingest is atomic.`,
	RunE: runCatalogIngest,
}

func runCatalogIngest(cmd *cobra.Command, args []string) error {
	articlesPath, _ := cmd.Flags().GetString("articles")
	force, _ := cmd.Flags().GetBool("force")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Ingest(context.Background(), articlesPath, force, os.Stdout)
	return err
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Full-text search over cataloged articles",
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query or --doc")
	}

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-14s  %-10s  %-9s  %s\n",
		"Rank", "Document", "Article", "Pages", "Text")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))

	for i, r := range results {
		text := strings.Join(strings.Fields(r.Text), " ")
		if len(text) > 56 {
			text = text[:53] + "..."
		}
		doc := r.DocID
		if len(doc) > 14 {
			doc = doc[:11] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-14s  %-10s  p%d-%-6d  %s\n",
			i+1, doc, r.ArticleNumber, r.PageStart, r.PageEnd, text)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.CatalogConfig{
		CatalogDir: configDefault(catalogDir, "catalog.dir", "out/index"),
		MaxResults: maxResults,
	}
	return catalog.NewStore(cfg)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		DocID:      docID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "", "catalog directory (default out/index)")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of search results")

	// Ingest flags.
	catalogIngestCmd.Flags().String("articles", "out/articles.jsonl", "path to the extracted articles.jsonl")
	catalogIngestCmd.Flags().Bool("force", false, "re-ingest even when the file is unchanged")

	// Search flags.
	catalogSearchCmd.Flags().String("query", "", "full-text search query")
	catalogSearchCmd.Flags().String("doc", "", "filter by document id")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("doc", "", "filter by document id for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum articles to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogIngestCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
