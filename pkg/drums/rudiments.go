package drums

import "sort"

// Hand is a sticking assignment.
type Hand int

const (
	Right Hand = iota
	Left
)

// RudimentNote is one stroke of a figure. Position is relative to the
// figure's span, [0,1). Grace strokes share their parent's position;
// the generator floats them ahead of it when the figure is placed.
type RudimentNote struct {
	Hand     Hand
	Position float64
	Accent   bool
	Grace    bool
}

// RudimentFigure is a named, standardized sticking figure. Figures are
// loaded once and never mutated; they are independent of any Pattern.
type RudimentFigure struct {
	Name     string
	Category RudimentCategory
	Sticking string
	Notes    []RudimentNote
}

func evenStrokes(sticking []Hand, accents ...int) []RudimentNote {
	accented := make(map[int]bool, len(accents))
	for _, i := range accents {
		accented[i] = true
	}
	notes := make([]RudimentNote, 0, len(sticking))
	for i, h := range sticking {
		notes = append(notes, RudimentNote{
			Hand:     h,
			Position: float64(i) / float64(len(sticking)),
			Accent:   accented[i],
		})
	}
	return notes
}

// graced prefixes the stroke at index i with n grace strokes on the
// opposite hand.
func graced(notes []RudimentNote, i, n int) []RudimentNote {
	parent := notes[i]
	grace := RudimentNote{Hand: 1 - parent.Hand, Position: parent.Position, Grace: true}
	out := make([]RudimentNote, 0, len(notes)+n)
	out = append(out, notes[:i]...)
	for j := 0; j < n; j++ {
		out = append(out, grace)
	}
	out = append(out, notes[i:]...)
	return out
}

var r, l = Right, Left

var rudimentFigures = map[string]RudimentFigure{
	"single_stroke_roll": {
		Name:     "single_stroke_roll",
		Category: CategoryRolls,
		Sticking: "RLRLRLRL",
		Notes:    evenStrokes([]Hand{r, l, r, l, r, l, r, l}, 0),
	},
	"double_stroke_roll": {
		Name:     "double_stroke_roll",
		Category: CategoryRolls,
		Sticking: "RRLLRRLL",
		Notes:    evenStrokes([]Hand{r, r, l, l, r, r, l, l}, 0),
	},
	"five_stroke_roll": {
		Name:     "five_stroke_roll",
		Category: CategoryRolls,
		Sticking: "RRLLR",
		Notes: []RudimentNote{
			{Hand: r, Position: 0},
			{Hand: r, Position: 0.125},
			{Hand: l, Position: 0.25},
			{Hand: l, Position: 0.375},
			{Hand: r, Position: 0.5, Accent: true},
		},
	},
	"paradiddle": {
		Name:     "paradiddle",
		Category: CategoryDiddles,
		Sticking: "RLRRLRLL",
		Notes:    evenStrokes([]Hand{r, l, r, r, l, r, l, l}, 0, 4),
	},
	"double_paradiddle": {
		Name:     "double_paradiddle",
		Category: CategoryDiddles,
		Sticking: "RLRLRRLRLRLL",
		Notes:    evenStrokes([]Hand{r, l, r, l, r, r, l, r, l, r, l, l}, 0, 6),
	},
	"flam": {
		Name:     "flam",
		Category: CategoryFlams,
		Sticking: "lR rL lR rL",
		Notes: graced(graced(graced(graced(
			evenStrokes([]Hand{r, l, r, l}, 0, 1, 2, 3),
			3, 1), 2, 1), 1, 1), 0, 1),
	},
	"flam_tap": {
		Name:     "flam_tap",
		Category: CategoryFlams,
		Sticking: "lRR rLL",
		Notes: graced(graced(
			evenStrokes([]Hand{r, r, l, l}, 0, 2),
			2, 1), 0, 1),
	},
	"flam_accent": {
		Name:     "flam_accent",
		Category: CategoryFlams,
		Sticking: "lRLR rLRL",
		Notes: graced(graced(
			evenStrokes([]Hand{r, l, r, l, r, l}, 0, 3),
			3, 1), 0, 1),
	},
	"drag": {
		Name:     "drag",
		Category: CategoryDrags,
		Sticking: "llR rrL",
		Notes: graced(graced(
			evenStrokes([]Hand{r, l, r, l}, 0, 1, 2, 3),
			2, 2), 0, 2),
	},
	"single_drag_tap": {
		Name:     "single_drag_tap",
		Category: CategoryDrags,
		Sticking: "llRL rrLR",
		Notes: graced(graced(
			evenStrokes([]Hand{r, l, l, r}, 1, 3),
			2, 2), 0, 2),
	},
}

// GetRudiment looks up a figure by name.
func GetRudiment(name string) (RudimentFigure, error) {
	fig, ok := rudimentFigures[name]
	if !ok {
		return RudimentFigure{}, unknownPattern("rudiment", name)
	}
	return fig, nil
}

// ListByCategory returns the figures in a category, sorted by name.
// CategoryMixed returns the entire library.
func ListByCategory(cat RudimentCategory) []RudimentFigure {
	var figs []RudimentFigure
	for _, fig := range rudimentFigures {
		if cat == CategoryMixed || fig.Category == cat {
			figs = append(figs, fig)
		}
	}
	sort.Slice(figs, func(i, j int) bool { return figs[i].Name < figs[j].Name })
	return figs
}

// RudimentNames lists every registered figure name, sorted.
func RudimentNames() []string {
	return sortedKeys(rudimentFigures)
}

// RudimentPattern renders a figure as a standalone one-bar snare
// Pattern at static velocities, for practice-library export. The
// figure spans the whole bar; grace strokes float ahead of their
// parents as in generated fills.
func RudimentPattern(fig RudimentFigure, tempo float64) *Pattern {
	bar := Bar{Index: 0}
	strokeDur := float64(BeatsPerBar) / float64(len(fig.Notes)) * 0.9
	for i, note := range fig.Notes {
		offset := note.Position
		ev := Event{Instrument: Snare, Offset: offset, Duration: strokeDur, Velocity: 90}
		switch {
		case note.Grace:
			lead := 1
			for j := i + 1; j < len(fig.Notes) && fig.Notes[j].Grace; j++ {
				lead++
			}
			ev.Offset -= float64(lead) * graceLead / BeatsPerBar
			if ev.Offset < 0 {
				ev.Offset = 0
			}
			ev.Duration = graceLead
			ev.Velocity = 40
			ev.Grace = true
		case note.Accent:
			ev.Velocity = 110
		}
		bar.Events = append(bar.Events, ev)
	}
	sortEvents(bar.Events)
	return &Pattern{
		Tempo:       tempo,
		Style:       StylePopPunk,
		Bars:        []Bar{bar},
		Complexity:  1,
		Description: fig.Name + " (" + string(fig.Category) + ") - " + fig.Sticking,
	}
}
