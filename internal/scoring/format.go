package scoring

// Format is the competition type. It decides which statistic a player's totals are
// built from and how players are combined into teams.
type Format string

const (
	FormatMedal      Format = "medal_strokeplay"      // Individual, lowest net total wins
	FormatFourBall   Format = "four_ball_better_ball" // 4BBB: fixed pairs, best Stableford score per hole counts
	FormatAlliance   Format = "alliance"              // Whole group, best two Stableford scores per hole count
	FormatStableford Format = "individual_stableford" // Individual, highest points total wins
)

// Valid reports whether f is one of the known formats.
func (f Format) Valid() bool {
	switch f {
	case FormatMedal, FormatFourBall, FormatAlliance, FormatStableford:
		return true
	}
	return false
}

// UsesPoints reports whether totals for f are Stableford points (true) or net strokes.
func (f Format) UsesPoints() bool {
	return f != FormatMedal
}

// DefaultAllowance is the handicap allowance percentage a competition of type f uses
// when none has been set.
func (f Format) DefaultAllowance() float64 {
	switch f {
	case FormatFourBall, FormatAlliance:
		return 85
	case FormatStableford:
		return 95
	default:
		return 100
	}
}
