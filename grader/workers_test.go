package grader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arjunmahishi/autograder/css"
	"github.com/arjunmahishi/autograder/som"
)

// TestRunWorkers tests the generic worker pool for concurrency correctness.
// Run with -race flag to detect race conditions: go test -race
func TestRunWorkers(t *testing.T) {
	tests := []struct {
		name      string
		fileCount int
		jobs      int
	}{
		{"single_file_single_worker", 1, 1},
		{"multiple_files_single_worker", 5, 1},
		{"multiple_files_multiple_workers", 10, 4},
		{"more_workers_than_files", 3, 10},
		{"many_files_high_concurrency", 50, 16},
		{"zero_jobs_defaults_to_one", 5, 0},
		{"empty_files", 0, 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tmpDir := t.TempDir()

			// Generate test files and collect expected selectors
			expected := generateTestFiles(t, tmpDir, tc.fileCount)

			if tc.fileCount == 0 {
				results := runWorkers([]FileJob{}, tc.jobs, firstSelector)
				require.Empty(t, results)
				return
			}

			s := newScanner(scannerConfig{
				root:     tmpDir,
				exts:     supportedExts([]string{"css"}),
				maxBytes: 2 * 1024 * 1024,
			})

			files, err := s.collect()
			require.NoError(t, err)
			require.Len(t, files, tc.fileCount)

			results := runWorkers(files, tc.jobs, firstSelector)
			require.Len(t, results, tc.fileCount, "should have one result per file")

			// Sort both slices for comparison (order may vary due to concurrency)
			sort.Strings(results)
			sort.Strings(expected)

			require.Equal(t, expected, results, "every selector should be found exactly once")
		})
	}
}

func TestScannerIgnoresAndLimits(t *testing.T) {
	tmpDir := t.TempDir()
	write := func(rel, content string) {
		p := filepath.Join(tmpDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	}
	write("a.css", "a {}")
	write("pages/index.HTML", "<p></p>")
	write("node_modules/lib/x.css", "x {}")
	write("notes.txt", "hi")
	write("big.css", "b { color: red; }\n"+fmt.Sprintf("%0200d", 0))

	s := newScanner(scannerConfig{
		root:     tmpDir,
		exts:     supportedExts(nil),
		maxBytes: 100,
	})
	files, err := s.collect()
	require.NoError(t, err)

	var got []string
	for _, f := range files {
		got = append(got, f.DisplayPath)
	}
	require.ElementsMatch(t, []string{"a.css", "pages/index.HTML"}, got)
}

// generateTestFiles creates N stylesheets, each with a unique selector.
// Returns the expected selectors.
func generateTestFiles(t *testing.T, dir string, count int) []string {
	t.Helper()

	var expected []string
	for i := range count {
		selector := fmt.Sprintf(".rule%d", i)
		filePath := filepath.Join(dir, fmt.Sprintf("file_%d.css", i))

		content := fmt.Sprintf("%s {\n  color: red;\n}\n", selector)
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))

		expected = append(expected, selector)
	}

	return expected
}

// firstSelector parses a stylesheet and returns the descriptor of its first
// rule.
func firstSelector(job FileJob) string {
	data, err := os.ReadFile(job.AbsPath)
	if err != nil {
		return "read error: " + err.Error()
	}
	m, err := css.Parse(string(data))
	if err != nil {
		return "parse error: " + err.Error()
	}
	root := m.Structure().Root
	if len(root) == 0 {
		return "(empty)"
	}
	return som.Descriptor(root[0].Key)
}
