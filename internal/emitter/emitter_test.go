package emitter_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
	"github.com/KimNorgaard/go-huml/internal/emitter"
	"github.com/KimNorgaard/go-huml/internal/marker"
)

func render(t *testing.T, v any, cfg emitter.Config) string {
	t.Helper()
	table := marker.NewTable()
	out, err := emitter.New(cfg, table).Document(v)
	require.NoError(t, err)
	return marker.Expand(out, table)
}

func ordered(kv ...any) *annotated.Map {
	m := annotated.NewMap()
	for i := 0; i < len(kv); i += 2 {
		m.Set(kv[i].(string), kv[i+1])
	}
	return m
}

func TestDocument(t *testing.T) {
	testCases := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "Scalars",
			value:    ordered("s", "text", "i", 42, "f", 1.0, "b", false, "n", nil),
			expected: "s: text\ni: 42\nf: 1.0\nb: false\nn: null\n",
		},
		{
			name:     "Strings that need quotes",
			value:    ordered("num", "123", "flag", "true", "old", "yes", "colon", "a: b"),
			expected: "num: \"123\"\nflag: \"true\"\nold: \"yes\"\ncolon: 'a: b'\n",
		},
		{
			name:     "Nested mapping",
			value:    ordered("outer", ordered("inner", ordered("leaf", 1))),
			expected: "outer:\n  inner:\n    leaf: 1\n",
		},
		{
			name:     "Scalar sequence",
			value:    ordered("ports", []any{80, 443}),
			expected: "ports:\n  - 80\n  - 443\n",
		},
		{
			name:     "Empty containers stay compact",
			value:    []any{map[string]any{}, []any{}, "scalar"},
			expected: "- {}\n- []\n- scalar\n",
		},
		{
			name:     "Empty values",
			value:    ordered("m", map[string]any{}, "s", []any{}),
			expected: "m: {}\ns: []\n",
		},
		{
			name: "Block sequence",
			value: ordered("containers", []any{
				ordered("name", "web", "ports", []any{80}),
				"sidecar",
			}),
			expected: "containers:\n  -\n    name: web\n    ports:\n      - 80\n  - sidecar\n",
		},
		{
			name:     "Nested sequences",
			value:    ordered("matrix", []any{[]any{"a", "b"}, []any{}}),
			expected: "matrix:\n  -\n    - a\n    - b\n  - []\n",
		},
		{
			name:     "Literal block",
			value:    ordered("script", "echo a\necho b\n", "note", "one\ntwo"),
			expected: "script: |\n  echo a\n  echo b\nnote: |-\n  one\n  two\n",
		},
		{
			name:     "Literal block in sequence",
			value:    ordered("args", []any{"a\nb"}),
			expected: "args:\n  - |-\n    a\n    b\n",
		},
		{
			name:     "Literal block with blank line",
			value:    ordered("a", ordered("b", "x\n\ny")),
			expected: "a:\n  b: |-\n    x\n\n    y\n",
		},
		{
			name:     "Root scalar",
			value:    "hello",
			expected: "hello\n",
		},
		{
			name:     "Root null",
			value:    nil,
			expected: "null\n",
		},
		{
			name:     "Root empty map",
			value:    annotated.NewMap(),
			expected: "{}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, render(t, tc.value, emitter.Config{}))
		})
	}
}

func TestDocument_KeyOrder(t *testing.T) {
	v := map[string]any{"ports": []any{80, 443}, "name": "web", "image": "nginx"}
	out := render(t, v, emitter.Config{Style: emitter.NewHumanFriendly([]string{"name", "image"})})
	require.Equal(t, "name: web\nimage: nginx\nports:\n  - 80\n  - 443\n", out)

	// Non-priority keys keep insertion order.
	m := ordered("zeta", 1, "kind", "Pod", "alpha", 2, "apiVersion", "v1")
	require.Equal(t, "apiVersion: v1\nkind: Pod\nzeta: 1\nalpha: 2\n", render(t, m, emitter.Config{}))
}

func TestDocument_Indent(t *testing.T) {
	v := ordered("a", ordered("b", []any{ordered("c", "x\ny")}))
	out := render(t, v, emitter.Config{Indent: 4})
	require.Equal(t, "a:\n    b:\n        -\n            c: |-\n                x\n                y\n", out)
}

func TestDocument_KeyTags(t *testing.T) {
	docs, err := annotated.Load([]byte("200: ok\n'300': quoted\n"))
	require.NoError(t, err)
	require.Equal(t, "200: ok\n\"300\": quoted\n", render(t, docs[0], emitter.Config{}))
}

func TestDocument_PreserveFormatting(t *testing.T) {
	src := `# header
name: web # the name

# Image
image: nginx
spec:


  replicas: 3
args:
  - a # first

  - b
# trailing
`
	docs, err := annotated.Load([]byte(src))
	require.NoError(t, err)
	v := docs[0]

	t.Run("Both", func(t *testing.T) {
		cfg := emitter.Config{PreserveComments: true, PreserveEmptyLines: true}
		// End-of-line comments are always separated by two spaces.
		expected := strings.NewReplacer(" # the name", "  # the name", " # first", "  # first").Replace(src)
		require.Equal(t, expected, render(t, v, cfg))
	})

	t.Run("CommentsOnly", func(t *testing.T) {
		cfg := emitter.Config{PreserveComments: true}
		expected := "# header\nname: web  # the name\n# Image\nimage: nginx\nspec:\n  replicas: 3\nargs:\n  - a  # first\n  - b\n# trailing\n"
		require.Equal(t, expected, render(t, v, cfg))
	})

	t.Run("EmptyLinesOnly", func(t *testing.T) {
		cfg := emitter.Config{PreserveEmptyLines: true}
		expected := "name: web\n\nimage: nginx\nspec:\n\n\n  replicas: 3\nargs:\n  - a\n\n  - b\n"
		require.Equal(t, expected, render(t, v, cfg))
	})

	t.Run("Neither", func(t *testing.T) {
		expected := "name: web\nimage: nginx\nspec:\n  replicas: 3\nargs:\n  - a\n  - b\n"
		require.Equal(t, expected, render(t, v, emitter.Config{}))
	})
}

func TestDocument_PreserveFlagsInertOnPlainValues(t *testing.T) {
	v := map[string]any{"a": 1, "b": []any{"x"}}
	cfg := emitter.Config{PreserveComments: true, PreserveEmptyLines: true}
	require.Equal(t, render(t, v, emitter.Config{}), render(t, v, cfg))
}

func TestDocument_Unsupported(t *testing.T) {
	table := marker.NewTable()
	_, err := emitter.New(emitter.Config{}, table).Document(map[string]any{"c": make(chan int)})
	require.Error(t, err)
}

// flowStyle lays out every sequence in flow form.
type flowStyle struct{ *emitter.HumanFriendly }

func (flowStyle) SequenceStyle([]emitter.Shape) emitter.SequenceStyle { return emitter.SequenceFlow }

// inlineStyle never gives container items their own dash line.
type inlineStyle struct{ *emitter.HumanFriendly }

func (inlineStyle) SequenceStyle([]emitter.Shape) emitter.SequenceStyle { return emitter.SequenceInline }

// reverseStyle writes keys in reverse and single-quotes every string.
type reverseStyle struct{}

func (reverseStyle) KeyOrder(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[len(keys)-1-i] = k
	}
	return out
}

func (reverseStyle) SequenceStyle([]emitter.Shape) emitter.SequenceStyle { return emitter.SequenceBlock }

func (reverseStyle) ScalarStyle(string) yaml.Style { return yaml.SingleQuotedStyle }

func TestDocument_CustomStyle(t *testing.T) {
	v := ordered("b", []any{1, ordered("x", "y")}, "a", "text")

	t.Run("Flow", func(t *testing.T) {
		cfg := emitter.Config{Style: flowStyle{emitter.NewHumanFriendly(nil)}}
		require.Equal(t, "b: [1, {x: y}]\na: text\n", render(t, v, cfg))
	})

	t.Run("Inline", func(t *testing.T) {
		cfg := emitter.Config{Style: inlineStyle{emitter.NewHumanFriendly(nil)}}
		require.Equal(t, "b:\n  - 1\n  - {x: y}\na: text\n", render(t, v, cfg))
	})

	t.Run("Strategy", func(t *testing.T) {
		cfg := emitter.Config{Style: reverseStyle{}}
		require.Equal(t, "a: 'text'\nb:\n  - 1\n  -\n    x: 'y'\n", render(t, v, cfg))
	})
}

func TestHumanFriendly(t *testing.T) {
	h := emitter.NewHumanFriendly([]string{"name", "image", "name"})
	require.Equal(t, []string{"name", "image", "name"}, h.PriorityKeys())
	require.Equal(t, []string{"name", "image", "b", "a"}, h.KeyOrder([]string{"b", "image", "a", "name"}))

	require.Equal(t, emitter.SequenceInline, h.SequenceStyle([]emitter.Shape{emitter.ShapeScalar, emitter.ShapeEmptyContainer}))
	require.Equal(t, emitter.SequenceBlock, h.SequenceStyle([]emitter.Shape{emitter.ShapeScalar, emitter.ShapeMapping}))
	require.Equal(t, emitter.SequenceBlock, h.SequenceStyle([]emitter.Shape{emitter.ShapeSequence}))
	require.Equal(t, emitter.SequenceInline, h.SequenceStyle(nil))

	require.Equal(t, yaml.LiteralStyle, h.ScalarStyle("a\nb"))
	require.Equal(t, yaml.DoubleQuotedStyle, h.ScalarStyle("off"))
	require.Equal(t, yaml.Style(0), h.ScalarStyle("plain"))

	require.Equal(t, emitter.DefaultPriorityKeys(), emitter.NewHumanFriendly(nil).PriorityKeys())
}

func TestDocument_ExplicitKeys(t *testing.T) {
	long := strings.Repeat("k", 200)
	v := ordered("outer", ordered(long, 1, "short", []any{ordered("a", 1)}))
	expected := "outer:\n  ? " + long + "\n  : 1\n  short:\n    -\n      a: 1\n"
	require.Equal(t, expected, render(t, v, emitter.Config{}))

	nested := ordered(long, ordered("a", 1))
	require.Equal(t, "? "+long+"\n:\n  a: 1\n", render(t, nested, emitter.Config{}))
}

func TestDocument_LeadingNewlineLiteral(t *testing.T) {
	v := ordered("args", []any{"\nx"}, "only", "\n")
	require.Equal(t, "args:\n  - |2-\n\n    x\nonly: |2+\n\n...\n", render(t, v, emitter.Config{}))
}
