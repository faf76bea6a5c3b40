package annotated_test

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
	herrors "github.com/KimNorgaard/go-huml/errors"
)

func loadOne(t *testing.T, src string) any {
	t.Helper()
	docs, err := annotated.Load([]byte(src))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	return docs[0]
}

func loadMap(t *testing.T, src string) *annotated.Map {
	t.Helper()
	m, ok := loadOne(t, src).(*annotated.Map)
	require.True(t, ok, "expected a mapping")
	return m
}

func TestLoad_EmptyLines(t *testing.T) {
	m := loadMap(t, "key1: value1\n\nkey2: value2\n\n\nkey3: value3\n")

	require.Equal(t, []string{"key1", "key2", "key3"}, m.Keys())
	require.Equal(t, 0, m.KeyFormatting("key1").EmptyLinesBefore)
	require.Equal(t, 1, m.KeyFormatting("key2").EmptyLinesBefore)
	require.Equal(t, 2, m.KeyFormatting("key3").EmptyLinesBefore)
	require.False(t, m.KeyComments("key3").HasComments())
}

func TestLoad_Comments(t *testing.T) {
	src := `# header
name: web # the name

# Image
# second
image: nginx
`
	m := loadMap(t, src)

	name := m.KeyMetadata("name")
	require.Equal(t, []string{"# header"}, name.Comments.CommentsBefore)
	require.Equal(t, "# the name", name.Comments.EOLComment)
	require.Equal(t, 0, name.Formatting.EmptyLinesBefore)

	image := m.KeyMetadata("image")
	require.Equal(t, []string{"# Image", "# second"}, image.Comments.CommentsBefore)
	require.Equal(t, "", image.Comments.EOLComment)
	require.Equal(t, 1, image.Formatting.EmptyLinesBefore)
	require.Equal(t, []string{"", "# Image", "# second"}, image.Leading)
}

func TestLoad_NestedComments(t *testing.T) {
	src := `spec:
  # replicas
  replicas: 3
metadata: # meta
  name: x
`
	m := loadMap(t, src)
	require.Equal(t, "# meta", m.KeyComments("metadata").EOLComment)

	spec, _ := m.Get("spec")
	require.Equal(t, []string{"# replicas"}, spec.(*annotated.Map).KeyComments("replicas").CommentsBefore)
}

func TestLoad_SequenceItems(t *testing.T) {
	src := `containers:
  # first
  -
    name: web
  - name: db # database
    ports: [1, 2]
args:
  - a # first arg

  - b
`
	m := loadMap(t, src)

	raw, _ := m.Get("containers")
	containers := raw.(*annotated.Seq)
	require.Equal(t, 2, containers.Len())
	require.Equal(t, []string{"# first"}, containers.ItemComments(0).CommentsBefore)
	require.False(t, containers.ItemComments(1).HasComments())

	db := containers.At(1).(*annotated.Map)
	require.Equal(t, "# database", db.KeyComments("name").EOLComment)
	ports, _ := db.Get("ports")
	require.False(t, ports.(*annotated.Seq).HasMetadata(), "flow collections carry no metadata")

	raw, _ = m.Get("args")
	args := raw.(*annotated.Seq)
	require.Equal(t, "# first arg", args.ItemComments(0).EOLComment)
	require.Equal(t, 1, args.ItemFormatting(1).EmptyLinesBefore)
}

func TestLoad_DashLineComment(t *testing.T) {
	src := "items:\n  -  # web\n    name: web\n"
	m := loadMap(t, src)
	raw, _ := m.Get("items")
	require.Equal(t, "# web", raw.(*annotated.Seq).ItemComments(0).EOLComment)
}

func TestLoad_BlockScalarBody(t *testing.T) {
	src := `script: |
  # not a comment

  echo hi
# real
next: 1
`
	m := loadMap(t, src)
	script, _ := m.Get("script")
	require.Equal(t, "# not a comment\n\necho hi\n", script)
	require.False(t, m.KeyComments("script").HasComments())
	require.Equal(t, []string{"# real"}, m.KeyComments("next").CommentsBefore)
	require.Equal(t, 0, m.KeyFormatting("next").EmptyLinesBefore)
}

func TestLoad_KeptBlockScalar(t *testing.T) {
	m := loadMap(t, "a: |+\n  x\n\n\n# c\nb: >+\n  y\n\nc: 1\n")
	a, _ := m.Get("a")
	require.Equal(t, "x\n\n\n", a)
	require.Equal(t, []string{"# c"}, m.KeyComments("b").CommentsBefore)
	require.Equal(t, 0, m.KeyFormatting("b").EmptyLinesBefore)

	b, _ := m.Get("b")
	require.Equal(t, "y\n\n", b)
	require.Equal(t, 0, m.KeyFormatting("c").EmptyLinesBefore)
}

func TestLoad_HeadComments(t *testing.T) {
	m := loadMap(t, "\n# one\n\n# two\n\n--- # start\n# about a\na: 1\n")
	require.Equal(t, []string{"# one", "", "# two"}, m.HeadComments())
	require.Equal(t, []string{"# about a"}, m.KeyComments("a").CommentsBefore)
	require.True(t, m.HasMetadata())

	s, ok := loadOne(t, "# list\n---\n- x\n").(*annotated.Seq)
	require.True(t, ok)
	require.Equal(t, []string{"# list"}, s.HeadComments())

	require.Empty(t, loadMap(t, "# about a\na: 1\n").HeadComments())
}

func TestLoad_KeyCollisionMessage(t *testing.T) {
	_, err := annotated.Load([]byte("true: 1\n\"true\": 2\n"))
	require.EqualError(t, err, `yaml: line 2: mapping key "true" (!!str) collides with key "true" (!!bool) once keys are strings`)
}

func TestLoad_FootComments(t *testing.T) {
	m := loadMap(t, "a: 1\n\n# trailing\n# end\n")
	require.Equal(t, []string{"# trailing", "# end"}, m.FootComments())
	require.True(t, m.HasMetadata())
}

func TestLoad_MultipleDocuments(t *testing.T) {
	docs, err := annotated.Load([]byte("a: 1\n---\n# c\nb: 2\n---\n- x\n"))
	require.NoError(t, err)
	require.Len(t, docs, 3)

	second := docs[1].(*annotated.Map)
	require.Equal(t, []string{"# c"}, second.KeyComments("b").CommentsBefore)
	require.IsType(t, &annotated.Seq{}, docs[2])
}

func TestLoad_Empty(t *testing.T) {
	docs, err := annotated.Load(nil)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestLoad_Scalars(t *testing.T) {
	m := loadMap(t, "s: text\ni: 42\nf: 1.5\nb: true\nn: null\nq: \"123\"\n")
	for key, want := range map[string]any{
		"s": "text",
		"i": 42,
		"f": 1.5,
		"b": true,
		"n": nil,
		"q": "123",
	} {
		got, ok := m.Get(key)
		require.True(t, ok, key)
		require.Equal(t, want, got, key)
	}
}

func TestLoad_KeyTags(t *testing.T) {
	m := loadMap(t, "200: ok\n'300': quoted\nname: x\n")
	require.Equal(t, "!!int", m.KeyTag("200"))
	require.Equal(t, "!!str", m.KeyTag("300"))
	require.Equal(t, "!!str", m.KeyTag("name"))
}

func TestLoad_Alias(t *testing.T) {
	m := loadMap(t, "base: &b\n  # about x\n  x: 1\ncopy: *b\n")
	base, _ := m.Get("base")
	copied, _ := m.Get("copy")
	require.True(t, annotated.Equal(base, copied))
	require.True(t, base.(*annotated.Map).HasMetadata())
	require.False(t, copied.(*annotated.Map).HasMetadata())
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		line int
	}{
		{name: "Duplicate key", src: "a: 1\nb: 2\na: 3\n", line: 3},
		{name: "Complex key", src: "? [a, b]\n: 1\n", line: 1},
		{name: "Keys equal as strings", src: "true: 1\n\"true\": 2\n", line: 2},
		{name: "Unterminated flow", src: "a: [1, 2\nb: 3\n"},
		{name: "Bad indentation", src: "a:\n  b: 1\n c: 2\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := annotated.Load([]byte(tc.src))
			require.Error(t, err)

			var se *herrors.SyntaxError
			require.True(t, errors.As(err, &se), "expected a SyntaxError, got %T", err)
			require.Positive(t, se.Line)
			if tc.line > 0 {
				require.Equal(t, tc.line, se.Line)
			}
			require.Contains(t, se.Error(), "yaml: line")
		})
	}
}

func TestLoad_EqualsPlainLoad(t *testing.T) {
	src := `apiVersion: v1
kind: Pod
# the pod
metadata:
  name: web
  labels: {app: web, tier: "1"}
spec:

  containers:
    - name: web
      image: nginx
      ports:
        - 80
        - 443
      command: ["sh", "-c"]
      env: []
    -
      name: sidecar
      args:
        - |
          multi
          line
`
	got := loadOne(t, src)

	var plain any
	require.NoError(t, yaml.Unmarshal([]byte(src), &plain))
	require.True(t, annotated.Equal(got, plain), "loaded value differs from plain load:\n%s", spew.Sdump(got))
}
