//go:build mage

package main

import (
	"os"
	"os/exec"

	"github.com/magefile/mage/mg"
)

// Extract runs the extraction stage over pdfs/ into out/.
func Extract() error {
	mg.Deps(Build)
	return runBin("extract", "--pdfs", "pdfs", "--out", "out")
}

// Reshape maps out/articles.jsonl into out/graphrag_input.jsonl.
func Reshape() error {
	mg.Deps(Build)
	return runBin("reshape", "--articles", "out/articles.jsonl", "--out", "out/graphrag_input.jsonl")
}

// Ingest loads out/articles.jsonl into the catalog at out/index.
func Ingest() error {
	mg.Deps(Build)
	return runBin("catalog", "ingest", "--articles", "out/articles.jsonl")
}

func runBin(args ...string) error {
	cmd := exec.Command("bin/article-engine", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
