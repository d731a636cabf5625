// Command generate-golden writes the golden test vectors used by the
// fibonacci package tests. The vectors come from an oracle that recomputes
// each term from scratch, independently of the package under test.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
	"path/filepath"

	"github.com/agbru/fibseq/internal/logging"
)

// fullTermsLimit is the largest n for which every term is recorded.
const fullTermsLimit = 20

// goldenNs lists the term counts recorded in the golden file.
var goldenNs = []int{-5, 0, 1, 2, 3, 5, 10, 20, 51, 93, 94, 95, 100, 101}

type goldenCase struct {
	N      int      `json:"n"`
	Length int      `json:"length"`
	Last   string   `json:"last,omitempty"`
	Terms  []string `json:"terms,omitempty"`
}

// fibBig computes F(i) by iterating from the seed, with no shared state.
func fibBig(i uint64) *big.Int {
	a, b := big.NewInt(0), big.NewInt(1)
	for k := uint64(0); k < i; k++ {
		a.Add(a, b)
		a, b = b, a
	}
	return a
}

func buildCase(n int) goldenCase {
	gc := goldenCase{N: n}
	if n <= 0 {
		return gc
	}
	gc.Length = n
	gc.Last = fibBig(uint64(n - 1)).String()
	if n <= fullTermsLimit {
		gc.Terms = make([]string, n)
		for i := range gc.Terms {
			gc.Terms[i] = fibBig(uint64(i)).String()
		}
	}
	return gc
}

func render(cases []goldenCase) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"oracle\": \"independent per-index recurrence\",\n  \"cases\": [\n")
	for i, gc := range cases {
		line, err := json.Marshal(gc)
		if err != nil {
			return nil, err
		}
		buf.WriteString("    ")
		buf.Write(line)
		if i < len(cases)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString("  ]\n}\n")
	return buf.Bytes(), nil
}

// writeGolden renders every golden case and writes the document to path,
// creating parent directories.
func writeGolden(path string) (int, error) {
	cases := make([]goldenCase, len(goldenNs))
	for i, n := range goldenNs {
		cases[i] = buildCase(n)
	}
	data, err := render(cases)
	if err != nil {
		return 0, fmt.Errorf("rendering golden file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, fmt.Errorf("writing %s: %w", path, err)
	}
	return len(cases), nil
}

func main() {
	out := flag.String("out", filepath.Join("internal", "fibonacci", "testdata", "sequence_golden.json"), "output path")
	flag.Parse()

	logger := logging.NewStdLoggerAdapter(log.New(os.Stderr, "generate-golden: ", 0))
	n, err := writeGolden(*out)
	if err != nil {
		logger.Error("golden file not written", err, logging.String("path", *out))
		os.Exit(1)
	}
	logger.Info("golden file written", logging.Int("cases", n), logging.String("path", *out))
}
