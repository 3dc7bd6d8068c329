package scoring

import (
	"encoding/json"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGross(t *testing.T) {
	tests := []struct {
		raw  string
		want Gross
	}{
		{raw: "", want: Gross{}},
		{raw: "  ", want: Gross{}},
		{raw: "x", want: Gross{}},
		{raw: "4.5", want: Gross{}},
		{raw: "5", want: Strokes(5)},
		{raw: " 7 ", want: Strokes(7)},
		{raw: "0", want: Strokes(0)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGross(tt.raw))
		})
	}
}

func TestNet(t *testing.T) {
	_, ok := Net(Gross{}, 1)
	assert.False(t, ok)

	net, ok := Net(Strokes(6), 2)
	require.True(t, ok)
	assert.Equal(t, 4, net)
}

func TestStablefordPoints(t *testing.T) {
	tests := []struct {
		net  int
		want int
	}{
		{net: -1, want: 6},
		{net: 0, want: 6},
		{net: 1, want: 5},
		{net: 2, want: 4},
		{net: 3, want: 3},
		{net: 4, want: 2},
		{net: 5, want: 1},
		{net: 6, want: 0},
		{net: 11, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StablefordPoints(tt.net, 4), "net %d on a par 4", tt.net)
	}
}

func TestComputePlayerRound_EndToEnd(t *testing.T) {
	holes := DefaultHoles()
	// Hole 8 on the default card is a par 4 with stroke index 5.
	require.Equal(t, Hole{Number: 8, Par: 4, StrokeIndex: 5}, holes[7])

	p := Player{Name: "Ann", CourseHandicap: 20}
	p.Gross[7] = Strokes(5)

	r := ComputePlayerRound(p, holes, 100, FormatStableford)

	assert.Equal(t, 20, r.PlayingHandicap)
	assert.Equal(t, 1, r.StrokesReceived[7])
	require.NotNil(t, r.PerHoleNet[7])
	assert.Equal(t, 4, *r.PerHoleNet[7])
	assert.Equal(t, 2, r.PerHolePoints[7])
	assert.Equal(t, 2, r.Front)
	assert.Equal(t, 0, r.Back)
	assert.Equal(t, 2, r.Total)
	assert.Equal(t, 5, r.GrossTotal)
	assert.Equal(t, -15.0, r.DTHNet)
	assert.Equal(t, 1, r.HolesPlayed)
	assert.Equal(t, "1", r.Thru())
}

func TestComputePlayerRound_MissingHolesExcluded(t *testing.T) {
	holes := DefaultHoles()
	p := Player{Name: "Bob", CourseHandicap: 0}
	for i := 0; i < 10; i++ {
		p.Gross[i] = Strokes(holes[i].Par)
	}

	r := ComputePlayerRound(p, holes, 100, FormatStableford)

	assert.Equal(t, 10, r.HolesPlayed)
	assert.Equal(t, 18, r.Front)
	assert.Equal(t, 2, r.Back)
	assert.Equal(t, 20, r.Total)
	for i := 10; i < HoleCount; i++ {
		assert.Nil(t, r.PerHoleNet[i], "hole %d", i+1)
		assert.Equal(t, 0, r.PerHolePoints[i], "hole %d", i+1)
	}
	// A genuine zero-point hole still has a net score.
	p.Gross[10] = Strokes(9)
	r = ComputePlayerRound(p, holes, 100, FormatStableford)
	require.NotNil(t, r.PerHoleNet[10])
	assert.Equal(t, 0, r.PerHolePoints[10])
	assert.Equal(t, 11, r.HolesPlayed)
}

func TestComputePlayerRound_MedalSumsNet(t *testing.T) {
	holes := DefaultHoles()
	p := Player{Name: "Cat", CourseHandicap: 18}
	for i := range p.Gross {
		p.Gross[i] = Strokes(holes[i].Par + 1)
	}

	r := ComputePlayerRound(p, holes, 100, FormatMedal)

	// One stroke a hole at 18: net par everywhere.
	assert.Equal(t, 36, r.Front)
	assert.Equal(t, 36, r.Back)
	assert.Equal(t, 72, r.Total)
	assert.Equal(t, 90, r.GrossTotal)
	assert.Equal(t, 72.0, r.DTHNet)
	assert.True(t, r.Finished())
	assert.Equal(t, "F", r.Thru())
}

func TestComputePlayerRound_DTHNetUsesCourseHandicap(t *testing.T) {
	holes := DefaultHoles()
	p := Player{Name: "Dee", CourseHandicap: 20.4}
	for i := range p.Gross {
		p.Gross[i] = Strokes(5)
	}

	r := ComputePlayerRound(p, holes, 85, FormatMedal)

	assert.Equal(t, 17, r.PlayingHandicap)
	assert.InDelta(t, 69.6, r.DTHNet, 1e-9)
	assert.Equal(t, 90-17, r.Total)
}

func TestComputePlayerRound_Idempotent(t *testing.T) {
	f := gofakeit.New(42)
	holes := DefaultHoles()

	for n := 0; n < 25; n++ {
		p := Player{Name: f.Name(), CourseHandicap: f.Float64Range(0, 40)}
		for i := range p.Gross {
			if f.Bool() {
				p.Gross[i] = Strokes(f.IntRange(1, 10))
			}
		}
		allowance := float64(f.IntRange(50, 100))

		first, err := json.Marshal(ComputePlayerRound(p, holes, allowance, FormatStableford))
		require.NoError(t, err)
		second, err := json.Marshal(ComputePlayerRound(p, holes, allowance, FormatStableford))
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestThru(t *testing.T) {
	assert.Equal(t, "-", PlayerRound{}.Thru())
	assert.Equal(t, "9", PlayerRound{HolesPlayed: 9}.Thru())
	assert.Equal(t, "F", PlayerRound{HolesPlayed: 18}.Thru())
}
