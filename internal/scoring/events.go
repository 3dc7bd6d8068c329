package scoring

// Category is the kind of notable result a hole produced, judged on gross against par.
type Category string

const (
	CategoryNone          Category = ""
	CategoryEagleOrBetter Category = "eagle_or_better"
	CategoryBirdie        Category = "birdie"
	CategoryBogey         Category = "bogey"
	CategoryDoubleBogey   Category = "double_bogey"
	CategoryBlowup        Category = "blowup" // Triple bogey or worse
)

// Classify puts a gross score into a Category. Handicap plays no part; this drives
// celebration popups and cell colours only. An unplayed hole or a par is CategoryNone.
func Classify(g Gross, par int) Category {
	if !g.Played {
		return CategoryNone
	}
	switch diff := g.Strokes - par; {
	case diff <= -2:
		return CategoryEagleOrBetter
	case diff == -1:
		return CategoryBirdie
	case diff == 0:
		return CategoryNone
	case diff == 1:
		return CategoryBogey
	case diff == 2:
		return CategoryDoubleBogey
	default:
		return CategoryBlowup
	}
}

// Detect compares a cell before and after an edit. It returns the new category and true
// when the new entry is notable and its category differs from the old entry's, which is
// when the caller may announce it.
func Detect(old, updated Gross, par int) (Category, bool) {
	next := Classify(updated, par)
	if next == CategoryNone || next == Classify(old, par) {
		return CategoryNone, false
	}
	return next, true
}
