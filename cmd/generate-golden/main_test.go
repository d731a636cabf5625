package main

import (
	"encoding/json"
	"math/big"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// TestFibBig tests the oracle with known values.
func TestFibBig(t *testing.T) {
	tests := []struct {
		n        uint64
		expected string
	}{
		{0, "0"},
		{1, "1"},
		{2, "1"},
		{10, "55"},
		{50, "12586269025"},
		{93, "12200160415121876738"},
		{94, "19740274219868223167"},
		{100, "354224848179261915075"},
	}

	for _, tt := range tests {
		if got := fibBig(tt.n).String(); got != tt.expected {
			t.Errorf("fibBig(%d) = %s, want %s", tt.n, got, tt.expected)
		}
	}
}

// TestFibBig_Recurrence checks F(n) + F(n+1) = F(n+2).
func TestFibBig_Recurrence(t *testing.T) {
	for n := uint64(0); n < 60; n++ {
		sum := new(big.Int).Add(fibBig(n), fibBig(n+1))
		if want := fibBig(n + 2); sum.Cmp(want) != 0 {
			t.Errorf("F(%d) + F(%d) = %s, want %s", n, n+1, sum, want)
		}
	}
}

func TestBuildCase(t *testing.T) {
	tests := []struct {
		n    int
		want goldenCase
	}{
		{-5, goldenCase{N: -5}},
		{0, goldenCase{N: 0}},
		{1, goldenCase{N: 1, Length: 1, Last: "0", Terms: []string{"0"}}},
		{2, goldenCase{N: 2, Length: 2, Last: "1", Terms: []string{"0", "1"}}},
		{5, goldenCase{N: 5, Length: 5, Last: "3", Terms: []string{"0", "1", "1", "2", "3"}}},
		{101, goldenCase{N: 101, Length: 101, Last: "354224848179261915075"}},
	}

	for _, tt := range tests {
		if got := buildCase(tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("buildCase(%d) = %+v, want %+v", tt.n, got, tt.want)
		}
	}
}

// TestRender_MatchesCheckedInGolden guards against the checked-in vectors
// drifting from the generator.
func TestRender_MatchesCheckedInGolden(t *testing.T) {
	cases := make([]goldenCase, len(goldenNs))
	for i, n := range goldenNs {
		cases[i] = buildCase(n)
	}
	data, err := render(cases)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var decoded struct {
		Cases []goldenCase `json:"cases"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("rendered document is not valid JSON: %v", err)
	}
	if len(decoded.Cases) != len(goldenNs) {
		t.Fatalf("decoded %d cases, want %d", len(decoded.Cases), len(goldenNs))
	}

	checkedIn, err := os.ReadFile(filepath.Join("..", "..", "internal", "fibonacci", "testdata", "sequence_golden.json"))
	if err != nil {
		t.Skipf("golden file not available: %v", err)
	}
	if string(checkedIn) != string(data) {
		t.Error("checked-in golden file is stale; run go run ./cmd/generate-golden")
	}
}

func TestWriteGolden(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "golden.json")
	n, err := writeGolden(path)
	if err != nil {
		t.Fatalf("writeGolden: %v", err)
	}
	if n != len(goldenNs) {
		t.Errorf("wrote %d cases, want %d", n, len(goldenNs))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !json.Valid(data) {
		t.Error("written file is not valid JSON")
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := writeGolden(filepath.Join(blocker, "golden.json")); err == nil {
		t.Error("expected an error when the parent is a file")
	}
}
