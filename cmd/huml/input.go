package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// input is one source of documents: a file or stdin.
type input struct {
	path string // "" for stdin
	text string
	docs []any
}

func (in input) name() string {
	if in.path == "" {
		return "stdin"
	}
	return in.path
}

var inputExts = []string{".yaml", ".yml", ".json", ".msgpack", ".mpk"}

// expandInputs turns the comma separated --inputs value into file paths.
// Globs and directories only yield files with a YAML, JSON or MessagePack extension
// unless unsafe is set; files named explicitly are always kept.
func expandInputs(list string, unsafe bool) ([]string, error) {
	var paths []string
	accept := func(p string) bool {
		return unsafe || slices.Contains(inputExts, strings.ToLower(filepath.Ext(p)))
	}
	for item := range strings.SplitSeq(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.ContainsAny(item, "*?[") {
			matches, err := filepath.Glob(item)
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", item, err)
			}
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() && accept(m) {
					paths = append(paths, m)
				}
			}
			continue
		}
		info, err := os.Stat(item)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("file not found: %s", item)
			}
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, item)
			continue
		}
		var found []string
		err = filepath.WalkDir(item, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() && accept(path) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		slices.Sort(found)
		paths = append(paths, found...)
	}
	return paths, nil
}

// readFiles loads every path concurrently. Results keep the order of paths.
func readFiles(ctx context.Context, paths []string, format string) ([]input, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	results := make([]input, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			f := format
			switch strings.ToLower(filepath.Ext(path)) {
			case ".json":
				f = "json"
			case ".yaml", ".yml":
				f = "yaml"
			case ".msgpack", ".mpk":
				f = "msgpack"
			}
			docs, err := parseDocuments(string(data), f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", path, err)
			}
			results[i] = input{path: path, text: string(data), docs: docs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

var errStdinTerminal = errors.New("no input: stdin is a terminal, pipe data in or use --inputs")

// readStdin reads all of r, giving up when nothing arrives within timeout.
func readStdin(ctx context.Context, r io.Reader, timeout time.Duration) (string, error) {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", errStdinTerminal
	}
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(r)
		done <- result{data, err}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return string(res.data), res.err
	case <-timer.C:
		return "", fmt.Errorf("no input received within %dms", timeout.Milliseconds())
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
