// internal/results/results_test.go
package results

import (
	"path/filepath"
	"testing"
)

func TestAddPathAndAccessors(t *testing.T) {
	t.Parallel()

	index := New()
	index.AddPath("algo_b", "problem", "b-1.json")
	index.AddPath("algo_a", "problem", "a-1.json")
	index.AddPath("algo_a", "problem", "a-2.json")

	algorithms := index.Algorithms()
	if len(algorithms) != 2 || algorithms[0] != "algo_a" || algorithms[1] != "algo_b" {
		t.Fatalf("expected sorted algorithms, got %v", algorithms)
	}
	if problems := index.Problems("algo_a"); len(problems) != 1 || problems[0] != "problem" {
		t.Fatalf("unexpected problems: %v", problems)
	}
	paths := index.Paths("algo_a", "problem")
	if len(paths) != 2 || paths[0] != "a-1.json" || paths[1] != "a-2.json" {
		t.Fatalf("expected paths in run order, got %v", paths)
	}
}

func TestContains(t *testing.T) {
	t.Parallel()

	index := New()
	index.AddPath("algo", "problem", "run-1.json")
	if !index.Contains("algo", "problem", 0) {
		t.Fatalf("expected run 0 to be recorded")
	}
	if index.Contains("algo", "problem", 1) {
		t.Fatalf("expected run 1 to be absent")
	}
	if index.Contains("ghost", "problem", 0) {
		t.Fatalf("expected unknown algorithm to be absent")
	}
}

func TestSetPathOverwrites(t *testing.T) {
	t.Parallel()

	index := New()
	index.SetPath("algo", "problem", 2, "run-3.json")
	paths := index.Paths("algo", "problem")
	if len(paths) != 3 || paths[2] != "run-3.json" {
		t.Fatalf("expected the run list to grow to the index, got %v", paths)
	}

	index.SetPath("algo", "problem", 2, "run-3b.json")
	paths = index.Paths("algo", "problem")
	if len(paths) != 3 || paths[2] != "run-3b.json" {
		t.Fatalf("expected the entry to be overwritten, got %v", paths)
	}
}

func TestResultsFileRoundTrip(t *testing.T) {
	t.Parallel()

	index := New()
	index.AddPath("algo", "problem", "run-1.json")
	index.AddPath("algo", "problem", "run-2.json")

	path := filepath.Join(t.TempDir(), "results.json")
	if err := index.ToFile(path); err != nil {
		t.Fatalf("ToFile error: %v", err)
	}

	loaded, err := FromFile(path)
	if err != nil {
		t.Fatalf("FromFile error: %v", err)
	}
	paths := loaded.Paths("algo", "problem")
	if len(paths) != 2 || paths[1] != "run-2.json" {
		t.Fatalf("unexpected loaded paths: %v", paths)
	}
}

func TestFromFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := FromFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing results index")
	}
}

func TestPathsReturnsCopy(t *testing.T) {
	t.Parallel()

	index := New()
	index.AddPath("algo", "problem", "run-1.json")
	paths := index.Paths("algo", "problem")
	paths[0] = "mutated"
	if index.Paths("algo", "problem")[0] != "run-1.json" {
		t.Fatalf("expected the index to be unaffected by mutations of the returned slice")
	}
}
