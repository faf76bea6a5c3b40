package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/KimNorgaard/go-huml"
)

// source records where a document came from, for file naming.
type source struct {
	path     string
	position int
}

// manifestFilename names a document after its kind, type and metadata.name,
// e.g. "deployment-web.yaml", falling back to the source file name or
// "stdin-N.yaml".
func manifestFilename(doc any, src source) string {
	var parts []string
	if m, ok := doc.(*huml.Map); ok {
		for _, field := range []string{"kind", "type"} {
			if s := stringField(m, field); s != "" {
				parts = append(parts, strings.ToLower(s))
			}
		}
		if meta, ok := get(m, "metadata").(*huml.Map); ok {
			if s := stringField(meta, "name"); s != "" {
				parts = append(parts, strings.ToLower(s))
			}
		}
	}
	if len(parts) > 0 {
		return norm.NFC.String(strings.Join(parts, "-")) + ".yaml"
	}
	if src.path != "" {
		base := filepath.Base(src.path)
		return strings.TrimSuffix(base, filepath.Ext(base)) + ".yaml"
	}
	return "stdin-" + strconv.Itoa(src.position) + ".yaml"
}

func get(m *huml.Map, key string) any {
	v, _ := m.Get(key)
	return v
}

func stringField(m *huml.Map, key string) string {
	s, _ := get(m, key).(string)
	return s
}

// writeDirectory writes every document to its own file in dir. Names that
// are already taken get a -1, -2, ... suffix.
func writeDirectory(log *slog.Logger, dir string, docs []any, sources []source, auto bool, opts []huml.Option) error {
	dir = strings.TrimRight(dir, string(os.PathSeparator))
	if err := ensureDir(log, dir, auto); err != nil {
		return err
	}
	for i, doc := range docs {
		name := manifestFilename(doc, sources[i])
		path := filepath.Join(dir, name)
		for n := 1; exists(path); n++ {
			path = filepath.Join(dir, strings.TrimSuffix(name, ".yaml")+"-"+strconv.Itoa(n)+".yaml")
		}
		out, err := huml.Dumps(doc, opts...)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			return err
		}
		log.Debug("wrote document", "path", path)
	}
	return nil
}

// writeFile writes the whole stream to path.
func writeFile(log *slog.Logger, path, out string, auto bool) error {
	if auto {
		if err := ensureDir(log, filepath.Dir(path), true); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func ensureDir(log *slog.Logger, dir string, auto bool) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("not a directory: %s", dir)
	case !errors.Is(err, os.ErrNotExist):
		return err
	case !auto:
		return fmt.Errorf("directory does not exist: %s", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	log.Info("created directory", "path", dir)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
