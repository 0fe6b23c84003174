package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/bjaus/repr"
)

var (
	// Global flags
	verbose   bool
	maxDepth  int
	maxWidth  int
	utc       bool
	qualified bool
	typeOnly  bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "repr [file...]",
	Short: "Render YAML or JSON documents as repr text",
	Long: `repr decodes every YAML or JSON document in the given files (or stdin
when no files are named) and prints each one on its own line using the
repr rendering rules: maps as { k: v }, lists as [a, b], nested strings
quoted, timestamps as wall-clock times.

A mapping that repeats a key is rejected. Merge keys (<<) are not
expanded and render as ordinary "<<" entries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRender,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().IntVar(&maxDepth, "max-depth", repr.DefaultMaxDepth, "Nesting depth rendered before eliding with ...")
	rootCmd.Flags().IntVar(&maxWidth, "max-width", repr.DefaultMaxTextWidth, "Truncate strings wider than this many columns (0: no limit)")
	rootCmd.Flags().BoolVar(&utc, "utc", false, "Render timestamps in UTC instead of local time")
	rootCmd.Flags().BoolVar(&qualified, "qualified", false, "Qualify type names with their package")
	rootCmd.Flags().BoolVar(&typeOnly, "type", false, "Print the Go type of each document instead of its value")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runRender renders every document of every source to the command output.
func runRender(cmd *cobra.Command, args []string) error {
	out := bufio.NewWriter(cmd.OutOrStdout())
	p := repr.New(out, printerOptions()...)

	if len(args) == 0 {
		return renderDocuments(p, cmd.InOrStdin(), "stdin")
	}
	for _, name := range args {
		if err := renderFile(p, name); err != nil {
			return err
		}
	}
	return nil
}

func printerOptions() []repr.PrinterOption {
	opts := []repr.PrinterOption{
		repr.WithMaxDepth(maxDepth),
		repr.WithMaxTextWidth(maxWidth),
		repr.WithQualifiedNames(qualified),
	}
	if utc {
		opts = append(opts, repr.WithLocation(time.UTC))
	}
	if logger != nil {
		opts = append(opts, repr.WithLogger(logger))
	}
	return opts
}

func renderFile(p *repr.Printer, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()
	return renderDocuments(p, f, name)
}

// renderDocuments prints one line per document in r.
func renderDocuments(p *repr.Printer, r io.Reader, source string) error {
	dec := yaml.NewDecoder(r)
	for i := 0; ; i++ {
		var doc yaml.Node
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to decode %s: %w", source, err)
		}
		v, err := nodeValue(&doc)
		if err != nil {
			return fmt.Errorf("failed to decode %s document %d: %w", source, i, err)
		}
		if logger != nil {
			logger.Debug("Rendering document",
				zap.String("source", source),
				zap.Int("index", i),
				zap.Stringer("category", repr.Classify(v)),
			)
		}
		if typeOnly {
			if err := p.PrintType(reflect.TypeOf(v)); err != nil {
				return err
			}
			if err := p.Println(); err != nil {
				return err
			}
			continue
		}
		if err := p.Println(v); err != nil {
			return err
		}
	}
}

// nodeValue converts a YAML node into plain Go values. Unlike decoding into
// an interface, timestamps become time.Time and mappings whose keys are not
// all strings keep their key types.
func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return nodeValue(n.Content[0])
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil
	case yaml.MappingNode:
		return mappingValue(n)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			var t time.Time
			if err := n.Decode(&t); err == nil {
				return t, nil
			}
		}
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func mappingValue(n *yaml.Node) (any, error) {
	keys := make([]any, 0, len(n.Content)/2)
	values := make([]any, 0, len(n.Content)/2)
	allStrings := true
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, err := nodeValue(n.Content[i])
		if err != nil {
			return nil, err
		}
		v, err := nodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		if _, ok := k.(string); !ok {
			allStrings = false
		}
		keys = append(keys, k)
		values = append(values, v)
	}
	if allStrings {
		m := make(map[string]any, len(keys))
		for i, k := range keys {
			if _, dup := m[k.(string)]; dup {
				return nil, duplicateKey(n, i, k)
			}
			m[k.(string)] = values[i]
		}
		return m, nil
	}
	m := make(map[any]any, len(keys))
	for i, k := range keys {
		if k != nil && !reflect.TypeOf(k).Comparable() {
			return nil, fmt.Errorf("line %d: unsupported mapping key %v", n.Content[2*i].Line, repr.Sprint(k))
		}
		if _, dup := m[k]; dup {
			return nil, duplicateKey(n, i, k)
		}
		m[k] = values[i]
	}
	return m, nil
}

func duplicateKey(n *yaml.Node, i int, k any) error {
	return fmt.Errorf("line %d: duplicate mapping key %v", n.Content[2*i].Line, repr.Render(k))
}
