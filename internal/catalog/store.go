// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists extracted articles in a local SQLite database
// with an FTS5 keyword index, for inspection and provenance lookups.
// Semantic indexing stays with the downstream GraphRAG pipeline; this
// catalog only mirrors the keyword-search support the article records carry.
package catalog

import (
	"bufio"
	"context"
	"crypto/md5"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/article-engine/internal/textutil"
	"github.com/pdiddy/article-engine/pkg/types"
)

const dbFile = "articles.db"

// maxLineBytes matches the reshape stage's per-line bound.
const maxLineBytes = 16 << 20

// Store manages the article catalog database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/articles.db,
// creating the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, catalogDir: cfg.CatalogDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			doc_id TEXT PRIMARY KEY,
			title TEXT,
			jurisdiction TEXT,
			lang TEXT,
			pdf_path TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			doc_id TEXT NOT NULL REFERENCES documents(doc_id),
			article_number TEXT NOT NULL,
			article_footnote TEXT,
			title TEXT,
			text TEXT NOT NULL,
			text_ascii TEXT NOT NULL,
			page_start INTEGER,
			page_end INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_doc_id ON articles(doc_id)`,
		`CREATE TABLE IF NOT EXISTS ingest_manifest (
			source_path TEXT PRIMARY KEY,
			md5 TEXT NOT NULL,
			ingested_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(text, text_ascii, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, text, text_ascii) VALUES (new.rowid, new.text, new.text_ascii);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, text, text_ascii) VALUES('delete', old.rowid, old.text, old.text_ascii);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, text, text_ascii) VALUES('delete', old.rowid, old.text, old.text_ascii);
				INSERT INTO articles_fts(rowid, text, text_ascii) VALUES (new.rowid, new.text, new.text_ascii);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog ingest run.
type IngestSummary struct {
	Articles  int
	Documents int
	Skipped   bool
}

// Ingest loads an articles.jsonl file into the catalog. Unchanged files
// (same md5 as the manifest entry) are skipped unless force is set; the run
// is atomic per source file.
func (s *Store) Ingest(ctx context.Context, articlesPath string, force bool, w io.Writer) (IngestSummary, error) {
	sum, err := fileMD5(articlesPath)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("hashing %s: %w", articlesPath, err)
	}

	if !force {
		var stored string
		err := s.db.QueryRowContext(ctx,
			`SELECT md5 FROM ingest_manifest WHERE source_path = ?`, articlesPath,
		).Scan(&stored)
		if err == nil && stored == sum {
			fmt.Fprintf(w, "skipped %s (unchanged)\n", articlesPath)
			return IngestSummary{Skipped: true}, nil
		}
	}

	in, err := os.Open(articlesPath)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("opening %s: %w", articlesPath, err)
	}
	defer in.Close()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	docStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO documents (doc_id, title, jurisdiction, lang, pdf_path)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(doc_id) DO UPDATE SET
			title = excluded.title, jurisdiction = excluded.jurisdiction,
			lang = excluded.lang, pdf_path = excluded.pdf_path`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing document insert: %w", err)
	}
	defer docStmt.Close()

	delStmt, err := tx.PrepareContext(ctx, `DELETE FROM articles WHERE id = ?`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing article delete: %w", err)
	}
	defer delStmt.Close()

	artStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO articles
			(id, doc_id, article_number, article_footnote, title, text, text_ascii, page_start, page_end)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing article insert: %w", err)
	}
	defer artStmt.Close()

	var summary IngestSummary
	docs := make(map[string]bool)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var a types.Article
		if err := json.Unmarshal([]byte(line), &a); err != nil {
			return summary, fmt.Errorf("%s line %d: %w", articlesPath, lineNo, err)
		}
		if a.DocID == "" || a.ArticleNumber == "" {
			return summary, fmt.Errorf("%s line %d: missing doc_id or article_number", articlesPath, lineNo)
		}

		if !docs[a.DocID] {
			if _, err := docStmt.ExecContext(ctx, a.DocID, docTitle(a), a.Jurisdiction, a.Lang, a.PDFPath); err != nil {
				return summary, fmt.Errorf("storing document %s: %w", a.DocID, err)
			}
			docs[a.DocID] = true
			summary.Documents++
		}

		ascii := a.TextASCII
		if ascii == "" {
			ascii = textutil.StripAccents(a.Text)
		}

		id := a.DocID + "_" + a.ArticleNumber
		// Delete-then-insert keeps the FTS triggers in sync on re-ingest.
		if _, err := delStmt.ExecContext(ctx, id); err != nil {
			return summary, fmt.Errorf("replacing article %s: %w", id, err)
		}
		if _, err := artStmt.ExecContext(ctx,
			id, a.DocID, a.ArticleNumber, a.ArticleFootnote, a.Title,
			a.Text, ascii, a.PageStart, a.PageEnd,
		); err != nil {
			return summary, fmt.Errorf("storing article %s: %w", id, err)
		}
		summary.Articles++
	}
	if err := scanner.Err(); err != nil {
		return summary, fmt.Errorf("reading %s: %w", articlesPath, err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ingest_manifest (source_path, md5, ingested_at) VALUES (?, ?, ?)
		 ON CONFLICT(source_path) DO UPDATE SET md5 = excluded.md5, ingested_at = excluded.ingested_at`,
		articlesPath, sum, now,
	); err != nil {
		return summary, fmt.Errorf("updating manifest: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing ingest: %w", err)
	}

	fmt.Fprintf(w, "ingested %s (%d articles, %d documents)\n", articlesPath, summary.Articles, summary.Documents)
	return summary, nil
}

// docTitle strips the "Art. N, " prefix off an article title to recover the
// document-level title stored alongside each record.
func docTitle(a types.Article) string {
	if i := strings.Index(a.Title, ", "); i >= 0 {
		return a.Title[i+2:]
	}
	return ""
}

// fileMD5 hashes a file's contents, matching the manifest key used by the
// incremental ingest.
func fileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
