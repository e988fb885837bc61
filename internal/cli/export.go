package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/factbase/internal/datalog"
	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/store"
	"github.com/roach88/factbase/internal/symbol"
)

// Export targets.
const (
	ExportASP    = "asp"
	ExportMangle = "mangle"
	ExportJSON   = "json"
)

// ExportTargets lists the accepted --to values.
var ExportTargets = []string{ExportASP, ExportMangle, ExportJSON}

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	To          string   // export target
	Output      string   // output file path; stdout if empty
	Index       []string // extra "label.field" indexes
	SkipUnknown bool     // skip facts that match no predicate
}

// ExportResult describes a completed export written to a file.
type ExportResult struct {
	To      string   `json:"to"`
	Path    string   `json:"path"`
	Facts   int      `json:"facts"`
	Skipped []string `json:"skipped,omitempty"`
}

func (r ExportResult) String() string {
	return fmt.Sprintf("✓ Exported %d fact(s) to %s (%s)", r.Facts, r.Path, r.To)
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export <schemas-dir> <facts-file>",
		Short: "Load facts and export them as ASP or Mangle",
		Long: `Load ASP facts against compiled predicate declarations and export the
resulting fact base.

ASP output lists each predicate's facts in insertion order, one predicate
block per schema. Mangle output is read back from a Mangle fact store, so
duplicate facts collapse and each block is sorted. JSON output writes one
canonical JSON object per fact, in ASP order.

Examples:
  factbase export ./schemas facts.lp
  factbase export ./schemas facts.lp --to mangle -o facts.mg`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", ExportASP, "export target (asp|mangle|json)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringSliceVar(&opts.Index, "index", nil, "extra label.field indexes")
	cmd.Flags().BoolVar(&opts.SkipUnknown, "skip-unknown", false, "skip facts that match no predicate")

	return cmd
}

func runExport(opts *ExportOptions, schemasDir, factsFile string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if !slices.Contains(ExportTargets, opts.To) {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag,
			fmt.Sprintf("invalid export target %q: must be one of %v", opts.To, ExportTargets))
	}

	registry, err := LoadSchemas(schemasDir)
	if err != nil {
		return failLoad(formatter, err)
	}

	indexes := make([]*predicate.Field, 0, len(opts.Index))
	for _, ref := range opts.Index {
		f, err := registry.Field(ref)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidFlag, err.Error())
		}
		indexes = append(indexes, f)
	}

	loaded, err := LoadFacts(factsFile, registry, opts.SkipUnknown)
	if err != nil {
		return failLoad(formatter, err)
	}
	for _, s := range loaded.Skipped {
		formatter.VerboseLog("Skipped %s", s)
	}

	fb := store.New(store.WithIndex(indexes...), store.WithLogger(formatter.Logger()))
	fb.Add(loaded.Facts...)

	var buf bytes.Buffer
	switch opts.To {
	case ExportMangle:
		err = writeMangle(&buf, fb)
	case ExportJSON:
		err = writeJSON(&buf, fb)
	default:
		err = fb.WriteASP(&buf)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error())
	}

	if opts.Output == "" {
		_, err := formatter.Writer.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, fmt.Sprintf("failed to write output file: %v", err))
	}
	return formatter.Success(ExportResult{
		To:      opts.To,
		Path:    opts.Output,
		Facts:   fb.Len(),
		Skipped: loaded.Skipped,
	})
}

// writeMangle copies fb into a Mangle fact store and writes its atoms back
// out, one predicate block per schema with a blank line between blocks.
func writeMangle(w io.Writer, fb *store.FactBase) error {
	fs, err := datalog.Load(fb)
	if err != nil {
		return err
	}

	first := true
	for _, s := range fb.Schemas() {
		facts, err := datalog.Facts(fs, s)
		if err != nil {
			return err
		}
		if len(facts) == 0 {
			continue
		}
		if !first {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		first = false
		for _, f := range facts {
			atom, err := datalog.ToAtom(f)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s.\n", atom); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeJSON writes the canonical JSON form of every fact, one per line.
func writeJSON(w io.Writer, fb *store.FactBase) error {
	for _, s := range fb.Schemas() {
		for _, f := range fb.Facts(s) {
			data, err := symbol.MarshalCanonical(f.Symbol())
			if err != nil {
				return fmt.Errorf("%s: %w", f, err)
			}
			if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
				return err
			}
		}
	}
	return nil
}
