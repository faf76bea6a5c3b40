package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-huml"
)

const configName = ".huml.toml"

// fileConfig is the content of a .huml.toml file.
type fileConfig struct {
	Indent             int      `toml:"indent"`
	PreserveEmptyLines bool     `toml:"preserve_empty_lines"`
	PreserveComments   bool     `toml:"preserve_comments"`
	PriorityKeys       []string `toml:"priority_keys"`
	KindOrder          []string `toml:"kind_order"`
}

// settings is the merged view of flags and the config file.
type settings struct {
	indent             int
	format             string
	timeoutMS          int
	inputs             string
	output             string
	auto               bool
	preserveEmptyLines bool
	preserveComments   bool
	k8s                bool
	check              bool
	diff               bool
	unsafeInputs       bool
	verbose            bool
	priorityKeys       []string
	kindOrder          []string
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// applyConfig fills s from the config file at path. Flags set on the
// command line win over the file.
func applyConfig(cmd *cobra.Command, path string, s *settings) error {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%s: unknown setting %q", path, undecoded[0].String())
	}
	flags := cmd.Flags()
	if meta.IsDefined("indent") && !flags.Changed("indent") {
		s.indent = cfg.Indent
	}
	if meta.IsDefined("preserve_empty_lines") && !flags.Changed("preserve-empty-lines") {
		s.preserveEmptyLines = cfg.PreserveEmptyLines
	}
	if meta.IsDefined("preserve_comments") && !flags.Changed("preserve-comments") {
		s.preserveComments = cfg.PreserveComments
	}
	if meta.IsDefined("priority_keys") {
		s.priorityKeys = cfg.PriorityKeys
	}
	if meta.IsDefined("kind_order") {
		s.kindOrder = cfg.KindOrder
	}
	return nil
}

func (s *settings) options() []huml.Option {
	opts := []huml.Option{huml.Indent(s.indent)}
	if s.preserveComments {
		opts = append(opts, huml.PreserveComments())
	}
	if s.preserveEmptyLines {
		opts = append(opts, huml.PreserveEmptyLines())
	}
	if s.priorityKeys != nil {
		opts = append(opts, huml.PriorityKeys(s.priorityKeys...))
	}
	if s.k8s {
		order := huml.DefaultKindOrder()
		if s.kindOrder != nil {
			order = huml.NewKindOrder("kind", s.kindOrder...)
		}
		opts = append(opts, huml.SortByKind(order))
	}
	return opts
}
