package queryir

// Simplify returns an equivalent comparator with static sub-expressions
// folded. c is not modified.
//
// Comparisons involving placeholders are left alone: their value is only
// known once bindings are supplied.
func Simplify(c Comparator) Comparator {
	switch n := c.(type) {
	case StaticValue:
		return n
	case *FieldCompare:
		return simplifyCompare(n)
	case *BoolOp:
		return simplifyBool(n)
	default:
		return c
	}
}

func simplifyCompare(c *FieldCompare) Comparator {
	if !c.IsStatic() || c.hasPlaceholder() {
		return c
	}
	// Literal-only or self comparison: no fact or bindings needed.
	return StaticValue{Value: c.Eval(nil, nil)}
}

func simplifyBool(o *BoolOp) Comparator {
	if o.Kind == KindNot {
		child := Simplify(o.Children[0])
		if s, ok := child.(StaticValue); ok {
			return StaticValue{Value: !s.Value}
		}
		return &BoolOp{Kind: KindNot, Children: []Comparator{child}}
	}

	// AND is absorbed by false, OR by true.
	absorbing := o.Kind == KindOr
	var kept []Comparator
	for _, child := range o.Children {
		sc := Simplify(child)
		if s, ok := sc.(StaticValue); ok {
			if s.Value == absorbing {
				return s
			}
			continue
		}
		kept = append(kept, sc)
	}

	switch len(kept) {
	case 0:
		return StaticValue{Value: !absorbing}
	case 1:
		return kept[0]
	default:
		return &BoolOp{Kind: o.Kind, Children: kept}
	}
}
