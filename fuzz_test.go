package huml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KimNorgaard/go-huml"
	"github.com/KimNorgaard/go-huml/internal/testutil"
)

func FuzzRoundTrip(f *testing.F) {
	// Seed the corpus with the golden inputs.
	seedFiles, err := filepath.Glob("testdata/*.yaml")
	if err != nil {
		f.Fatalf("failed to find seed files: %v", err)
	}

	for _, file := range seedFiles {
		data, err := os.ReadFile(file)
		if err != nil {
			f.Fatalf("failed to read seed file %s: %v", file, err)
		}
		f.Add(data)
	}
	f.Add(testutil.Manifests())

	f.Add([]byte("{}"))
	f.Add([]byte("[]"))
	f.Add([]byte("null"))
	f.Add([]byte(`"a simple string"`))
	f.Add([]byte("12345"))
	f.Add([]byte("on"))
	f.Add([]byte("a: |+\n  kept\n\n"))
	f.Add([]byte("- [1, {a: b}]\n- - x\n  - y\n"))
	f.Add([]byte("# head\n---\na: 1\n"))
	f.Add([]byte("a: |+\n  x\n\n\nb: 1\n"))
	f.Add([]byte("? " + strings.Repeat("k", 1100) + "\n: v\n"))
	f.Add([]byte("a: x__HUML_EMPTY_000005__\n"))
	for name, value := range multilineEdgeCases {
		out, err := huml.Dumps(map[string]any{name: value})
		if err != nil {
			f.Fatalf("failed to dump seed %s: %v", name, err)
		}
		f.Add([]byte(out))
	}

	f.Fuzz(func(t *testing.T, originalData []byte) {
		// Invalid input only has to fail without panicking.
		docs1, err := huml.LoadAllWithFormatting(originalData)
		if err != nil {
			return
		}

		// Whatever loads must dump, with and without recorded formatting.
		for _, opts := range [][]huml.Option{nil, {huml.PreserveFormatting()}} {
			out, err := huml.DumpsAll(docs1, opts...)
			require.NoError(t, err, "DumpsAll failed for a successfully loaded value")

			docs2, err := huml.LoadAllWithFormatting([]byte(out))
			require.NoError(t, err, "Load failed on our own output:\n%s", out)

			require.Len(t, docs2, len(docs1), "document count changed:\n%s", out)
			for i := range docs1 {
				require.True(t, huml.Equal(docs1[i], docs2[i]), "document %d changed after a round trip:\n%s", i, out)
			}
		}
	})
}
