package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/roach88/factbase/internal/compiler"
	"github.com/roach88/factbase/internal/predicate"
	"github.com/roach88/factbase/internal/symbol"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load or compile failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeFactSyntax  = "E006" // Facts file does not parse
	ErrCodeUnknownFact = "E007" // Fact matches no declared predicate
	ErrCodeWriteFailed = "E008" // File write error
	ErrCodeInvalidFlag = "E009" // Flag value out of range
)

// LoadError represents an error that occurred while loading schemas or facts.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchemas compiles the CUE declarations in dir.
//
// Declaration problems are returned as compiler.ValidationErrors so callers
// can report each one; everything else is a *LoadError.
func LoadSchemas(dir string) (*compiler.Registry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schemas directory not found: %s", dir)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	files, err := compiler.FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	registry, err := compiler.LoadDir(dir)
	if err != nil {
		var verrs compiler.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, convertCompileError(err)
	}
	return registry, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    ErrCodeLoadFailed,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{Code: ErrCodeLoadFailed, Message: err.Error()}
}

// FactsResult holds the facts read from a facts file.
type FactsResult struct {
	Facts   []*predicate.Fact
	Skipped []string // facts that matched no predicate, when skipping
}

// LoadFacts parses an ASP facts file and unifies each fact with the
// registry's predicates. A fact that matches none is an error unless
// skipUnknown is set.
func LoadFacts(path string, registry *compiler.Registry, skipUnknown bool) (*FactsResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("facts file not found: %s", path)}
	}
	defer file.Close()

	syms, err := symbol.ParseFacts(file)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeFactSyntax, Message: fmt.Sprintf("%s: %v", path, err)}
	}

	result := &FactsResult{}
	u := registry.Unifier()
	for _, sym := range syms {
		f, ok := u.Unify(sym)
		if !ok {
			if skipUnknown {
				result.Skipped = append(result.Skipped, sym.String())
				continue
			}
			return nil, &LoadError{Code: ErrCodeUnknownFact, Message: fmt.Sprintf("fact %s matches no declared predicate", sym)}
		}
		result.Facts = append(result.Facts, f)
	}
	return result, nil
}

// failLoad reports a load error through the formatter. Declaration
// problems are check failures (exit 1); the rest are command errors (exit 2).
func failLoad(formatter *OutputFormatter, err error) error {
	var verrs compiler.ValidationErrors
	if errors.As(err, &verrs) {
		return outputValidationErrors(formatter, verrs)
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Error())
	}
	return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error())
}
