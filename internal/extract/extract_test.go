// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/article-engine/internal/records"
	"github.com/pdiddy/article-engine/internal/segment"
	"github.com/pdiddy/article-engine/pkg/types"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindPDFs(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "a.PDF"))
	touch(t, filepath.Join(dir, "notes.txt"))
	touch(t, filepath.Join(dir, "nested", "deep", "c.pdf"))

	got, err := FindPDFs(dir)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "nested", "deep", "c.pdf"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPDFs = %v, want %v", got, want)
	}
}

func TestFindPDFs_MissingDir(t *testing.T) {
	if _, err := FindPDFs(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestBatch_FailureTolerance(t *testing.T) {
	dir := t.TempDir()
	bad1 := filepath.Join(dir, "bad1.pdf")
	bad2 := filepath.Join(dir, "bad2.pdf")
	touch(t, bad1)
	touch(t, bad2)

	seg, err := segment.New("", types.PreambleDiscard)
	if err != nil {
		t.Fatal(err)
	}
	rw, err := records.NewWriter(filepath.Join(dir, "articles.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer rw.Close()

	var out bytes.Buffer
	result := Batch([]string{bad1, bad2}, types.ExtractConfig{OutDir: dir}, seg, rw, &out)

	if result.Failed != 2 || result.Processed != 0 {
		t.Errorf("result = %+v, want 2 failed, 0 processed", result)
	}
	if !result.HasFailures() {
		t.Error("HasFailures = false, want true")
	}
	if result.Total() != 2 {
		t.Errorf("Total = %d, want 2", result.Total())
	}

	// One status line per document plus the batch summary.
	if n := strings.Count(out.String(), "failed:"); n != 2 {
		t.Errorf("got %d failed lines, want 2:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "Batch summary: 0 processed, 2 failed") {
		t.Errorf("missing batch summary:\n%s", out.String())
	}
}

func TestBatch_Empty(t *testing.T) {
	seg, err := segment.New("", types.PreambleDiscard)
	if err != nil {
		t.Fatal(err)
	}
	rw, err := records.NewWriter(filepath.Join(t.TempDir(), "articles.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	defer rw.Close()

	var out bytes.Buffer
	result := Batch(nil, types.ExtractConfig{}, seg, rw, &out)
	if result.Total() != 0 {
		t.Errorf("Total = %d, want 0", result.Total())
	}
	if !strings.Contains(out.String(), "Batch summary: 0 processed, 0 failed") {
		t.Errorf("missing batch summary:\n%s", out.String())
	}
}

func TestProcessPDF_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "garbage.pdf")
	touch(t, bad)

	seg, err := segment.New("", types.PreambleDiscard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ProcessPDF(bad, types.ExtractConfig{OutDir: dir}, seg); err == nil {
		t.Error("expected error for non-PDF content")
	}
}
