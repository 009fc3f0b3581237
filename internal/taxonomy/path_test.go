package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPathKeyRoundTripsNamesWithSeparators(t *testing.T) {
	t.Parallel()

	p := NewPath("Technology", "AI/ML", "Vision > Video")
	require.Equal(t, p, ParseKey(p.Key()))
	require.NotEqual(t, NewPath("Technology", "AI", "ML").Key(), NewPath("Technology", "AI/ML").Key())
	require.Nil(t, ParseKey(""))
}

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	p := NewPath("A", "B", "C")
	require.Equal(t, "C", p.Leaf())
	require.Equal(t, NewPath("A", "B"), p.Parent())
	require.Nil(t, NewPath("A").Parent())
	require.Empty(t, Path(nil).Leaf())
	require.True(t, Path(nil).IsEmpty())
	require.True(t, p.HasPrefix(NewPath("A", "B")))
	require.True(t, p.HasPrefix(nil))
	require.False(t, p.HasPrefix(NewPath("A", "C")))
	require.False(t, NewPath("A").HasPrefix(p))
	require.True(t, p.Equal(NewPath("A", "B", "C")))
	require.Equal(t, "A / B / C", p.String())
}

func TestAppendDoesNotAlias(t *testing.T) {
	t.Parallel()

	base := make(Path, 1, 8)
	base[0] = "A"
	left := base.Append("L")
	right := base.Append("R")
	require.Equal(t, NewPath("A", "L"), left)
	require.Equal(t, NewPath("A", "R"), right)

	clone := left.Clone()
	clone[0] = "Z"
	require.Equal(t, "A", left[0])
	require.Nil(t, Path(nil).Clone())
}

func TestSplitDisplay(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		raw  string
		sep  string
		want Path
	}{
		"default separator": {raw: "Technology/Web Development", want: NewPath("Technology", "Web Development")},
		"trims segments":    {raw: " Technology /  Web Development / ", want: NewPath("Technology", "Web Development")},
		"custom separator":  {raw: "Technology > AI/ML", sep: ">", want: NewPath("Technology", "AI/ML")},
		"empty":             {raw: "  ", want: nil},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, SplitDisplay(tc.raw, tc.sep))
		})
	}
}
