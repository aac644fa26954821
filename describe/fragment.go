package describe

import "strings"

// ============================================================================
// FRAGMENTS — Typed output segments
// ============================================================================
// The generator never decides presentation. It emits a flat sequence of
// typed fragments; renderers turn them into a plain string or styled
// output. Fragments.String() is the joined plain-text form.
// ============================================================================

// FragmentKind classifies a fragment for styling.
type FragmentKind string

const (
	// KindText is plain connective text.
	KindText FragmentKind = "text"
	// KindField is a resolved field label.
	KindField FragmentKind = "field"
	// KindMetric is a resolved metric name.
	KindMetric FragmentKind = "metric"
	// KindSegment is a resolved segment name.
	KindSegment FragmentKind = "segment"
)

// Fragment is one typed span of description output.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Fragments is an ordered description output sequence.
type Fragments []Fragment

// String joins the fragment texts with no separator.
func (fs Fragments) String() string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(f.Text)
	}
	return b.String()
}

func text(s string) Fragment {
	return Fragment{Kind: KindText, Text: s}
}

// joinFragments concatenates non-empty fragment sequences with a separator.
func joinFragments(parts []Fragments, sep string) Fragments {
	var out Fragments
	for _, p := range parts {
		if len(p) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, text(sep))
		}
		out = append(out, p...)
	}
	return out
}

// joinConjunction joins fragment sequences with the conjunction-list rule:
// one item stands alone, two join with the bare conjunction, three or more
// are comma-separated with the conjunction before the last (Oxford comma).
func joinConjunction(items []Fragments, conjunction string) Fragments {
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	case 2:
		out := append(Fragments{}, items[0]...)
		out = append(out, text(" "+conjunction+" "))
		return append(out, items[1]...)
	}
	var out Fragments
	for i, item := range items {
		switch {
		case i == 0:
		case i == len(items)-1:
			out = append(out, text(", "+conjunction+" "))
		default:
			out = append(out, text(", "))
		}
		out = append(out, item...)
	}
	return out
}
