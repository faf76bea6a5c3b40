// Command huml converts YAML or JSON into human-friendly YAML.
//
//	cat config.yaml | huml
//	echo '{"name": "web", "ports": [80, 443]}' | huml -f json
//	kubectl get deployment -o yaml | huml --k8s
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KimNorgaard/go-huml"
)

var version = "dev"

var errorColor = color.New(color.FgRed, color.Bold)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "huml",
		Short: "Convert YAML or JSON input to human-friendly YAML",
		Long: `huml reads YAML, JSON, JSON Lines or MessagePack from stdin or from files
and writes YAML with well-known keys first, compact scalar lists and
literal multi-line strings.`,
		Args:    cobra.NoArgs,
		Version: version,
		RunE:    runHuml,
	}
	flags := cmd.Flags()
	flags.Int("indent", 2, "indentation level")
	flags.StringP("format", "f", "auto", "input format (auto|yaml|json|msgpack)")
	flags.IntP("timeout", "t", 50, "stdin timeout in milliseconds")
	flags.StringP("inputs", "i", "", "comma-delimited list of files, globs or directories to process")
	flags.StringP("output", "o", "", "output file, or directory when it ends with a path separator")
	flags.Bool("auto", false, "create output directories that do not exist")
	flags.BoolP("preserve-empty-lines", "P", false, "keep blank lines from YAML input")
	flags.BoolP("preserve-comments", "C", false, "keep comments from YAML input")
	flags.Bool("k8s", false, "order documents by Kubernetes kind")
	flags.Bool("check", false, "report inputs that are not formatted and exit non-zero")
	flags.Bool("diff", false, "print a unified diff instead of the formatted output")
	flags.Bool("unsafe-inputs", false, "accept files of any extension from globs and directories")
	flags.Bool("verbose", false, "log debug information")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errorColor.Fprint(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{}
	var err error
	get := func(name string, dst *bool) {
		if err == nil {
			*dst, err = flags.GetBool(name)
		}
	}
	get("auto", &s.auto)
	get("preserve-empty-lines", &s.preserveEmptyLines)
	get("preserve-comments", &s.preserveComments)
	get("k8s", &s.k8s)
	get("check", &s.check)
	get("diff", &s.diff)
	get("unsafe-inputs", &s.unsafeInputs)
	get("verbose", &s.verbose)
	if err != nil {
		return nil, err
	}
	if s.indent, err = flags.GetInt("indent"); err != nil {
		return nil, err
	}
	if s.timeoutMS, err = flags.GetInt("timeout"); err != nil {
		return nil, err
	}
	if s.format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	if s.inputs, err = flags.GetString("inputs"); err != nil {
		return nil, err
	}
	if s.output, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	switch s.format {
	case "auto", "yaml", "json", "msgpack":
	default:
		return nil, fmt.Errorf("invalid format %q (want auto, yaml, json or msgpack)", s.format)
	}
	if s.check && s.output != "" {
		return nil, fmt.Errorf("--check cannot be used with --output")
	}
	return s, nil
}

func runHuml(cmd *cobra.Command, _ []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	s, err := readSettings(cmd)
	if err != nil {
		return err
	}
	if path, ok, err := findConfig("."); err != nil {
		return err
	} else if ok {
		if err := applyConfig(cmd, path, s); err != nil {
			return err
		}
	}

	level := slog.LevelInfo
	if s.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	inputs, err := loadInputs(cmd, s)
	if err != nil {
		return err
	}
	var docs []any
	var sources []source
	for _, in := range inputs {
		log.Debug("loaded input", "source", in.name(), "documents", len(in.docs))
		for i, d := range in.docs {
			docs = append(docs, d)
			sources = append(sources, source{path: in.path, position: i})
		}
	}
	if len(docs) == 0 {
		return fmt.Errorf("no documents to process")
	}

	opts := s.options()
	if s.check || s.diff {
		return reportChanges(cmd.OutOrStdout(), inputs, opts, s.check, s.diff)
	}
	if strings.HasSuffix(s.output, string(os.PathSeparator)) {
		if s.k8s {
			docs, sources = sortWithSources(docs, sources, s)
		}
		return writeDirectory(log, s.output, docs, sources, s.auto, opts)
	}
	out, err := huml.DumpsAll(docs, opts...)
	if err != nil {
		return err
	}
	if s.output != "" {
		return writeFile(log, s.output, out, s.auto)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func loadInputs(cmd *cobra.Command, s *settings) ([]input, error) {
	if s.inputs != "" {
		paths, err := expandInputs(s.inputs, s.unsafeInputs)
		if err != nil {
			return nil, err
		}
		return readFiles(cmd.Context(), paths, s.format)
	}
	text, err := readStdin(cmd.Context(), cmd.InOrStdin(), time.Duration(s.timeoutMS)*time.Millisecond)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" && s.format != "msgpack" {
		return nil, fmt.Errorf("no input provided")
	}
	docs, err := parseDocuments(text, s.format)
	if err != nil {
		return nil, err
	}
	return []input{{text: text, docs: docs}}, nil
}

// sortWithSources applies the kind order to docs and keeps sources aligned.
func sortWithSources(docs []any, sources []source, s *settings) ([]any, []source) {
	order := huml.DefaultKindOrder()
	if s.kindOrder != nil {
		order = huml.NewKindOrder("kind", s.kindOrder...)
	}
	outDocs := make([]any, len(docs))
	outSources := make([]source, len(docs))
	for i, j := range order.Permutation(docs) {
		outDocs[i], outSources[i] = docs[j], sources[j]
	}
	return outDocs, outSources
}

// reportChanges compares every input with its formatted form.
func reportChanges(w io.Writer, inputs []input, opts []huml.Option, check, diff bool) error {
	changed := false
	for _, in := range inputs {
		out, err := huml.DumpsAll(in.docs, opts...)
		if err != nil {
			return fmt.Errorf("%s: %w", in.name(), err)
		}
		d, err := unifiedDiff(in.name(), in.text, out)
		if err != nil {
			return err
		}
		if d == "" {
			continue
		}
		changed = true
		if check && !diff {
			fmt.Fprintln(w, in.name())
			continue
		}
		if _, err := io.WriteString(w, d); err != nil {
			return err
		}
	}
	if check && changed {
		return fmt.Errorf("formatting changes required")
	}
	return nil
}
