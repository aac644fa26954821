package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/lens/describe"
)

// ============================================================================
// RENDER — Fragments → display strings
// ============================================================================
// The generator emits typed fragments; this is the thin step that decides
// presentation. Plain loses the typing, Styled maps metric/segment/field
// kinds onto terminal styles.
// ============================================================================

var (
	metricStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true)
	segmentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	fieldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Plain joins fragments into an unstyled string.
func Plain(fs describe.Fragments) string {
	return fs.String()
}

// Styled joins fragments into a terminal string with metric, segment, and
// field labels styled.
func Styled(fs describe.Fragments) string {
	out := ""
	for _, f := range fs {
		switch f.Kind {
		case describe.KindMetric:
			out += metricStyle.Render(f.Text)
		case describe.KindSegment:
			out += segmentStyle.Render(f.Text)
		case describe.KindField:
			out += fieldStyle.Render(f.Text)
		default:
			out += f.Text
		}
	}
	return out
}
