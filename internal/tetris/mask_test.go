package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateClockwise(t *testing.T) {
	tests := []struct {
		name     string
		in       Mask
		expected Mask
	}{
		{"T points right", ParseMask(".#.", "###"), ParseMask("#.", "##", "#.")},
		{"I becomes vertical", ParseMask("####"), ParseMask("#", "#", "#", "#")},
		{"I back to horizontal", ParseMask("#", "#", "#", "#"), ParseMask("####")},
		{"J", ParseMask("#..", "###"), ParseMask("##", "#.", "#.")},
		{"L", ParseMask("..#", "###"), ParseMask("#.", "#.", "##")},
		{"O unchanged", ParseMask("##", "##"), ParseMask("##", "##")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Rotate(tc.in)
			assert.True(t, tc.expected.Equal(got), "Rotate =\n%s\nexpected\n%s", got, tc.expected)
		})
	}
}

func TestRotateSwapsDimensions(t *testing.T) {
	for _, typ := range Types {
		m := DefinitionFor(typ).Shape
		r := Rotate(m)
		assert.Equal(t, m.Cols(), r.Rows(), "%s rows after rotation", typ)
		assert.Equal(t, m.Rows(), r.Cols(), "%s cols after rotation", typ)
		assert.Equal(t, m.Count(), r.Count(), "%s cell count after rotation", typ)
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	for _, typ := range Types {
		m := DefinitionFor(typ).Shape
		got := Rotate(Rotate(Rotate(Rotate(m))))
		assert.True(t, m.Equal(got), "%s after four rotations:\n%s", typ, got)
	}
}

func TestRotateDoesNotModifyInput(t *testing.T) {
	m := ParseMask(".#.", "###")
	before := m.Clone()
	_ = Rotate(m)
	assert.True(t, before.Equal(m))
}

func TestMaskHelpers(t *testing.T) {
	m := NewMask([][]int{{0, 1}, {1, 1}})

	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 2, m.Cols())
	assert.True(t, m.At(0, 1))
	assert.False(t, m.At(0, 0))
	assert.False(t, m.At(-1, 0))
	assert.False(t, m.At(0, 5))
	assert.Equal(t, ".#\n##", m.String())

	require.False(t, Mask{}.Rectangular())
	require.False(t, Mask{{true}, {true, true}}.Rectangular())
	require.False(t, m.Equal(ParseMask(".#")))
}
