package symbol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical renders a symbol as deterministic JSON.
//
// Numbers encode as JSON integers and strings as NFC-normalized JSON strings.
// Functions encode as {"args":[...],"name":"f"} with keys in sorted order;
// tuples carry an empty name. Infimum and Supremum encode as
// {"special":"inf"} and {"special":"sup"}.
//
// The output is stable across runs; the CLI's json export writes it.
func MarshalCanonical(s Symbol) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeCanonical(&buf, s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCanonical(buf *bytes.Buffer, s Symbol) error {
	switch v := s.(type) {
	case nil:
		return fmt.Errorf("nil symbol is forbidden in canonical JSON")
	case Number:
		fmt.Fprintf(buf, "%d", int64(v))
	case Str:
		return writeCanonicalString(buf, string(v))
	case Function:
		buf.WriteString(`{"args":[`)
		for i, arg := range v.Args {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeCanonical(buf, arg); err != nil {
				return fmt.Errorf("args[%d]: %w", i, err)
			}
		}
		buf.WriteString(`],"name":`)
		return writeCanonicalString(buf, v.Name)
	case Infimum:
		buf.WriteString(`{"special":"inf"}`)
	case Supremum:
		buf.WriteString(`{"special":"sup"}`)
	default:
		return fmt.Errorf("unsupported symbol type %T", s)
	}
	return nil
}

// writeCanonicalString writes s as a JSON string.
// NFC normalization happens here, at the serialization boundary.
func writeCanonicalString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false) // <, >, & stay literal
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return err
	}
	// json.Encoder adds a trailing newline
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
