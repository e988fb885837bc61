package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/factbase/internal/compiler"
	"github.com/roach88/factbase/internal/predicate"
)

// CheckResult holds the outcome of checking a schemas directory.
type CheckResult struct {
	Valid      bool                       `json:"valid"`
	Predicates []PredicateInfo            `json:"predicates,omitempty"`
	Errors     []compiler.ValidationError `json:"errors,omitempty"`
}

// PredicateInfo summarises one compiled schema.
type PredicateInfo struct {
	Label   string   `json:"label"`
	Name    string   `json:"name"`
	Arity   int      `json:"arity"`
	Tuple   bool     `json:"tuple,omitempty"`
	Fields  []string `json:"fields"`
	Indexed []string `json:"indexed,omitempty"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <schemas-dir>",
		Short: "Check predicate declarations",
		Long: `Compile CUE predicate declarations and report every problem found.

Checks predicate and field names, field types, defaults and complex
field references (including reference cycles).

Exit codes:
  0 - All declarations valid
  1 - One or more declarations invalid
  2 - Command error (missing directory, CUE syntax, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, schemasDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	registry, err := LoadSchemas(schemasDir)
	if err != nil {
		return failLoad(formatter, err)
	}
	formatter.VerboseLog("Compiled %d predicate(s) from %s", registry.Len(), schemasDir)

	result := CheckResult{Valid: true}
	for _, s := range registry.Schemas() {
		result.Predicates = append(result.Predicates, describe(s))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ %d predicate(s) valid\n", len(result.Predicates))
	for _, p := range result.Predicates {
		sig := p.Name
		if p.Tuple {
			sig = "(tuple)"
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s/%d (%s)", p.Label, sig, p.Arity, strings.Join(p.Fields, ", "))
		if len(p.Indexed) > 0 {
			fmt.Fprintf(formatter.Writer, " indexed: %s", strings.Join(p.Indexed, ", "))
		}
		fmt.Fprintln(formatter.Writer)
	}
	return nil
}

func describe(s *predicate.Schema) PredicateInfo {
	info := PredicateInfo{
		Label:  s.Label(),
		Name:   s.Name(),
		Arity:  s.Arity(),
		Tuple:  s.IsTuple(),
		Fields: []string{},
	}
	for _, f := range s.Fields() {
		info.Fields = append(info.Fields, f.Name()+" "+f.Type().Kind())
	}
	for _, f := range s.IndexedFields() {
		info.Indexed = append(info.Indexed, f.Name())
	}
	return info
}

// outputValidationErrors outputs every declaration error.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   CheckResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Check failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d\n", err.Pos.Filename(), err.Pos.Line())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("check failed with %d error(s)", len(errs)))
}
