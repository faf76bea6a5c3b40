package huml_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-huml"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden loads every document in testdata/*.yaml with formatting and
// dumps it back with formatting preserved. Inputs that fail to load have
// the error message as their golden file.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			var actual string
			docs, err := huml.LoadAllWithFormatting(src)
			if err != nil {
				actual = err.Error()
			} else {
				actual, err = huml.DumpsAll(docs, huml.PreserveFormatting())
				require.NoError(t, err)
			}

			goldenFile := strings.TrimSuffix(file, ".yaml") + ".golden"
			// To refresh the golden files run: go test -run TestGolden -update
			if *update {
				err := os.WriteFile(goldenFile, []byte(actual), 0o644)
				require.NoError(t, err)
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")
			require.Equal(t, string(expected), actual, "Output does not match golden file.")
		})
	}
}

// TestGoldenIdempotent checks that dumping the golden output again changes
// nothing.
func TestGoldenIdempotent(t *testing.T) {
	files, err := filepath.Glob("testdata/*.golden")
	require.NoError(t, err)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)
			docs, err := huml.LoadAllWithFormatting(src)
			if err != nil {
				t.Skip("golden file holds an error message")
			}
			out, err := huml.DumpsAll(docs, huml.PreserveFormatting())
			require.NoError(t, err)
			require.Equal(t, string(src), out)
		})
	}
}
