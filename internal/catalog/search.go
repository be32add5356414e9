// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/article-engine/internal/textutil"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string. It is matched against both
	// the original text and its accent-stripped shadow, so accented and
	// plain queries hit the same articles.
	Query string

	// DocID restricts results to one document.
	DocID string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.DocID == ""
}

// Result is an article hit with its document provenance.
type Result struct {
	ID              string `json:"id" yaml:"id"`
	DocID           string `json:"doc_id" yaml:"doc_id"`
	ArticleNumber   string `json:"article_number" yaml:"article_number"`
	ArticleFootnote string `json:"article_footnote,omitempty" yaml:"article_footnote,omitempty"`
	Title           string `json:"title" yaml:"title"`
	Text            string `json:"text" yaml:"text"`
	PageStart       int    `json:"page_start" yaml:"page_start"`
	PageEnd         int    `json:"page_end" yaml:"page_end"`
	Jurisdiction    string `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Lang            string `json:"lang,omitempty" yaml:"lang,omitempty"`
	PDFPath         string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
}

// Search queries the catalog with optional full-text search and a document
// filter. Full-text hits are ranked by relevance; filter-only queries sort
// by document, then page, then article number.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT a.id, a.doc_id, a.article_number, a.article_footnote, a.title,
				a.text, a.page_start, a.page_end,
				d.jurisdiction, d.lang, d.pdf_path
			FROM articles_fts
			JOIN articles a ON a.rowid = articles_fts.rowid
			LEFT JOIN documents d ON a.doc_id = d.doc_id
			WHERE articles_fts MATCH ?`)
		args = append(args, ftsQuery(opts.Query))
	} else {
		qb.WriteString(
			`SELECT a.id, a.doc_id, a.article_number, a.article_footnote, a.title,
				a.text, a.page_start, a.page_end,
				d.jurisdiction, d.lang, d.pdf_path
			FROM articles a
			LEFT JOIN documents d ON a.doc_id = d.doc_id
			WHERE 1=1`)
	}

	if opts.DocID != "" {
		qb.WriteString(` AND a.doc_id = ?`)
		args = append(args, opts.DocID)
	}

	if useFTS {
		qb.WriteString(` ORDER BY articles_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY a.doc_id, a.page_start, a.article_number`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.ID, &r.DocID, &r.ArticleNumber, &r.ArticleFootnote, &r.Title,
			&r.Text, &r.PageStart, &r.PageEnd,
			&r.Jurisdiction, &r.Lang, &r.PDFPath,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// ftsQuery widens a user query to also match the accent-stripped column:
// the original query OR its folded form.
func ftsQuery(query string) string {
	folded := textutil.StripAccents(query)
	if folded == query {
		return query
	}
	return fmt.Sprintf("(%s) OR (%s)", query, folded)
}
