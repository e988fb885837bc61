package store

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WriteASP writes every stored fact as an ASP statement "<fact>." on its own
// line. Partitions are written in creation order, separated by a blank
// line; facts within a partition keep insertion order. Empty partitions
// are skipped.
func (fb *FactBase) WriteASP(w io.Writer) error {
	bw := bufio.NewWriter(w)
	first := true
	for _, p := range fb.order {
		if len(p.facts) == 0 {
			continue
		}
		if !first {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("write asp: %w", err)
			}
		}
		first = false
		for _, f := range p.facts {
			if _, err := fmt.Fprintf(bw, "%s.\n", f); err != nil {
				return fmt.Errorf("write asp: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write asp: %w", err)
	}
	return nil
}

// ASP returns the WriteASP output as a string.
func (fb *FactBase) ASP() string {
	var b strings.Builder
	// strings.Builder never fails
	_ = fb.WriteASP(&b)
	return b.String()
}

// String renders the fact base in ASP form.
func (fb *FactBase) String() string {
	return fb.ASP()
}
