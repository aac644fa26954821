package render

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spektr-org/lens/describe"
)

func TestPlain(t *testing.T) {
	fs := describe.Fragments{
		{Kind: describe.KindText, Text: "Orders, "},
		{Kind: describe.KindMetric, Text: "Revenue"},
		{Kind: describe.KindText, Text: ", Filtered by "},
		{Kind: describe.KindSegment, Text: "Expensive Things"},
	}
	assert.Equal(t, "Orders, Revenue, Filtered by Expensive Things", Plain(fs))
}

func TestStyledKeepsText(t *testing.T) {
	// Style escapes depend on the terminal profile; the label text must
	// survive regardless.
	fs := describe.Fragments{
		{Kind: describe.KindText, Text: "Filtered by "},
		{Kind: describe.KindSegment, Text: "Expensive Things"},
		{Kind: describe.KindField, Text: "Status"},
		{Kind: describe.KindMetric, Text: "Revenue"},
	}
	got := Styled(fs)
	assert.Contains(t, got, "Filtered by ")
	assert.Contains(t, got, "Expensive Things")
	assert.Contains(t, got, "Status")
	assert.Contains(t, got, "Revenue")
}

func TestEmpty(t *testing.T) {
	assert.Equal(t, "", Plain(nil))
	assert.Equal(t, "", Styled(nil))
}
