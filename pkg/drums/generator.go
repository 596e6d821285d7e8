package drums

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

const (
	// grooveDuration is the nominal length of a groove hit, in beats.
	grooveDuration = 0.1

	// graceLead is how far a grace note floats ahead of its parent,
	// in beats. Grace notes borrow time from silence, never from the
	// parent's duration.
	graceLead = 0.03

	// shiftChance scales the per-hit probability that syncopation
	// displaces a shiftable hit.
	shiftChance = 0.3
)

// Generate turns Parameters into a Pattern. A fresh random source is
// created per call, so concurrent invocations share no mutable state.
// With an explicit seed the result is bit-for-bit reproducible.
func Generate(p Parameters) (*Pattern, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	kickRec, err := LookupTemplate(p.Style, p.Section, KickTemplate, p.KickPattern)
	if err != nil {
		return nil, err
	}
	hihatRec, err := LookupTemplate(p.Style, p.Section, HihatTemplate, p.HihatPattern)
	if err != nil {
		return nil, err
	}
	snareRec, err := LookupTemplate(p.Style, p.Section, SnareTemplate, string(p.Style))
	if err != nil {
		return nil, err
	}

	density, variation, fillFreq := p.Density, p.Variation, p.FillFrequency
	if prof, ok := SectionFor(p.Section); ok {
		density = clamp01(density * prof.DensityMult)
		variation = clamp01(variation * prof.VariationMult)
		fillFreq = clamp01(fillFreq * prof.FillMult)
	}

	var seed int64
	if p.Seed != nil {
		seed = *p.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g := &generation{
		params:    p,
		rng:       rng,
		density:   density,
		variation: variation,
		kick:      kickRec,
		hihat:     hihatRec,
		snare:     snareRec,
		optional:  concatOptional(kickRec, snareRec, hihatRec),
	}

	figures := ListByCategory(figureCategory(p.RudimentType))
	bars := make([]Bar, 0, p.Bars)
	for barIdx := 0; barIdx < p.Bars; barIdx++ {
		boundary := (barIdx+1)%PhraseLength == 0
		fill := p.FillsOnly || (boundary && rng.Float64() < fillFreq)

		bar := g.buildBar(barIdx)
		if fill {
			g.applyFill(&bar, figures)
		}
		sortEvents(bar.Events)
		bars = append(bars, bar)
	}

	return &Pattern{
		Tempo:       p.Tempo,
		Style:       p.Style,
		Section:     p.Section,
		Bars:        bars,
		Complexity:  complexity(density, variation, p.Syncopation),
		Description: describe(p, density),
		Params:      p,
	}, nil
}

func validate(p Parameters) error {
	if p.Tempo <= 0 {
		return invalidParameterf("tempo must be positive, got %g", p.Tempo)
	}
	if p.Bars < 1 {
		return invalidParameterf("bars must be at least 1, got %d", p.Bars)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"density", p.Density},
		{"variation", p.Variation},
		{"syncopation", p.Syncopation},
		{"fill_frequency", p.FillFrequency},
		{"rudiment_intensity", p.RudimentIntensity},
	} {
		if f.value < 0 || f.value > 1 {
			return invalidParameterf("%s must be in [0,1], got %g", f.name, f.value)
		}
	}
	switch p.RudimentType {
	case "", CategoryMixed, CategoryRolls, CategoryDiddles, CategoryFlams, CategoryDrags:
	default:
		return unknownPattern("rudiment category", string(p.RudimentType))
	}
	return nil
}

// generation holds the per-call working state: the resolved templates,
// the seeded random source, and the previous bar's optional-hit set.
type generation struct {
	params    Parameters
	rng       *rand.Rand
	density   float64
	variation float64

	kick, hihat, snare TemplateRecord
	optional           []OptionalSlot

	prevDecisions []bool
}

func concatOptional(recs ...TemplateRecord) []OptionalSlot {
	var slots []OptionalSlot
	for _, rec := range recs {
		slots = append(slots, rec.Optional...)
	}
	return slots
}

func (g *generation) control(scale ControlScale) float64 {
	switch scale {
	case ScaleSyncopation:
		return g.params.Syncopation
	case ScaleVariation:
		return g.variation
	default:
		return g.density
	}
}

// buildBar runs the two-phase algorithm for one bar: the deterministic
// phase places every mandatory slot, then the probabilistic phase draws
// the optional slots, perturbs the set against the previous bar, and
// applies syncopation shifts.
func (g *generation) buildBar(barIdx int) Bar {
	bar := Bar{Index: barIdx}

	// Optional-hit decisions are drawn first so the variation pass can
	// compare whole sets between consecutive bars.
	decisions := make([]bool, len(g.optional))
	for i, slot := range g.optional {
		decisions[i] = g.rng.Float64() < clamp01(slot.Weight*g.control(slot.Scale))
	}
	if barIdx > 0 && len(decisions) > 0 && g.rng.Float64() < g.variation {
		if equalBools(decisions, g.prevDecisions) {
			i := g.rng.Intn(len(decisions))
			decisions[i] = !decisions[i]
		}
	}
	g.prevDecisions = decisions

	// Deterministic phase: mandatory hits always land.
	for _, rec := range []TemplateRecord{g.kick, g.snare, g.hihat} {
		for _, slot := range rec.Mandatory {
			bar.Events = append(bar.Events, g.materialize(slot, barIdx, false, 0))
		}
	}

	// Probabilistic phase: included optional hits.
	for i, slot := range g.optional {
		if !decisions[i] {
			continue
		}
		ev := g.materialize(slot.Slot, barIdx, slot.Ghost, 0)
		if slot.Open > 0 && ev.Instrument == HihatClosed {
			if g.rng.Float64() < slot.Open*g.variation {
				ev.Instrument = HihatOpen
			}
		}
		if slot.Shiftable && g.params.Syncopation > 0 {
			if g.rng.Float64() < g.params.Syncopation*shiftChance {
				deltas := g.hihat.SyncDeltas
				if len(deltas) > 0 {
					shifted := ev.Offset + deltas[g.rng.Intn(len(deltas))]/BeatsPerBar
					if shifted >= 0 && shifted < 1 {
						ev.Offset = shifted
					}
				}
			}
		}
		bar.Events = append(bar.Events, ev)
	}

	// Phrase-opening crash after the first bar.
	if barIdx > 0 && barIdx%PhraseLength == 0 {
		bar.Events = append(bar.Events, Event{
			Instrument: Crash,
			Offset:     0,
			Duration:   grooveDuration,
			Velocity:   g.velocity(Crash, barIdx, 0, true, false, 0),
		})
	}

	return bar
}

func (g *generation) materialize(slot Slot, barIdx int, ghost bool, fillProgress float64) Event {
	inst := slot.Instrument
	if slot.Rim > 0 && g.rng.Float64() < slot.Rim {
		inst = Rim
	}
	return Event{
		Instrument: inst,
		Offset:     slot.Beat / BeatsPerBar,
		Duration:   grooveDuration,
		Velocity:   g.velocity(inst, barIdx, slot.Beat, slot.Accent, ghost, fillProgress),
	}
}

// applyFill replaces the tail of the bar with a rudiment figure scaled
// to the replaced span and orchestrated across the kit.
func (g *generation) applyFill(bar *Bar, figures []RudimentFigure) {
	if len(figures) == 0 {
		return
	}
	bar.Fill = true

	spanBeats := 1.0
	if g.density >= 0.6 {
		spanBeats = 2.0
	}
	fillStart := (BeatsPerBar - spanBeats) / BeatsPerBar

	kept := bar.Events[:0]
	for _, ev := range bar.Events {
		if ev.Offset < fillStart {
			kept = append(kept, ev)
		}
	}
	bar.Events = kept

	fig := figures[g.rng.Intn(len(figures))]
	strokeDur := spanBeats / float64(len(fig.Notes)) * 0.9

	for i, note := range fig.Notes {
		offset := fillStart + note.Position*spanBeats/BeatsPerBar
		if note.Grace {
			// Consecutive graces stack further ahead of the parent.
			lead := 1
			for j := i + 1; j < len(fig.Notes) && fig.Notes[j].Grace; j++ {
				lead++
			}
			offset -= float64(lead) * graceLead / BeatsPerBar
			if offset < 0 {
				offset = 0
			}
			bar.Events = append(bar.Events, Event{
				Instrument: Snare,
				Offset:     offset,
				Duration:   graceLead,
				Velocity:   g.velocity(Snare, bar.Index, offset*BeatsPerBar, false, true, 0),
				Grace:      true,
			})
			continue
		}
		inst := g.orchestrate(fig, note)
		// The stroke landing on beat 4 carries the backbeat, which
		// survives every fill; it always renders on the snare.
		if math.Abs(offset-0.75) < 1e-9 {
			inst = Snare
		}
		bar.Events = append(bar.Events, Event{
			Instrument: inst,
			Offset:     offset,
			Duration:   strokeDur,
			Velocity:   g.velocity(inst, bar.Index, offset*BeatsPerBar, note.Accent, false, note.Position),
		})
	}
}

// orchestrate maps a stroke to a kit voice: rolls stay on the snare,
// accented strokes hit the snare, and off-hand strokes walk down the
// toms as the figure progresses.
func (g *generation) orchestrate(fig RudimentFigure, note RudimentNote) Instrument {
	if fig.Category == CategoryRolls || note.Accent || note.Hand == Right {
		return Snare
	}
	if g.params.RudimentIntensity < 0.3 {
		return Snare
	}
	switch {
	case note.Position < 0.34:
		return TomHigh
	case note.Position < 0.67:
		return TomMid
	default:
		return TomLow
	}
}

// velocity humanizes a hit per the style's voice profiles: Gaussian
// jitter, downbeat emphasis, fill crescendo, and fatigue decay over
// long patterns.
func (g *generation) velocity(inst Instrument, barIdx int, beat float64, accent, ghost bool, fillProgress float64) uint8 {
	if !g.params.humanized() {
		switch {
		case ghost:
			return 40
		case accent:
			return 110
		default:
			return 100
		}
	}

	profiles := velocityProfiles[g.params.Style]
	prof, ok := profiles[profileKey(inst, ghost)]
	if !ok {
		prof = VoiceVelocity{Base: 90, Variation: 15, Accent: 20}
	}

	v := prof.Base
	if accent {
		v += prof.Accent * (0.7 + 0.6*g.params.RudimentIntensity)
	}
	v += g.rng.NormFloat64() * prof.Variation / 2.5
	if beat == 0 && !ghost {
		v += float64(3 + g.rng.Intn(6))
	}
	if fillProgress > 0 {
		v += fillProgress * 20
	}
	if barIdx > 4 {
		fatigue := float64(barIdx-4) * 0.5
		if fatigue > 8 {
			fatigue = 8
		}
		v -= fatigue
	}

	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}

func profileKey(inst Instrument, ghost bool) string {
	switch inst {
	case Kick:
		return "kick"
	case Snare:
		if ghost {
			return "ghost_snare"
		}
		return "snare"
	case Rim:
		if ghost {
			return "ghost_snare"
		}
		return "rim"
	case HihatClosed, HihatOpen, HihatPedal, Ride:
		return "hihat"
	default:
		return "snare"
	}
}

func figureCategory(cat RudimentCategory) RudimentCategory {
	if cat == "" {
		return CategoryMixed
	}
	return cat
}

func complexity(density, variation, syncopation float64) int {
	score := (density + variation + syncopation) / 3
	switch {
	case score < 0.3:
		return 1
	case score < 0.5:
		return 2
	case score < 0.7:
		return 3
	case score < 0.85:
		return 4
	default:
		return 5
	}
}

func describe(p Parameters, density float64) string {
	if prof, ok := SectionFor(p.Section); ok {
		return fmt.Sprintf("%s %s - %s (%g BPM, %d bars, density %.2f)", titleCase(string(p.Section)), p.Style, prof.Description, p.Tempo, p.Bars, density)
	}
	return fmt.Sprintf("Generated %s pattern - %d bars @ %g BPM, density %.2f", p.Style, p.Bars, p.Tempo, density)
}

func titleCase(s string) string {
	out := []byte(s)
	upper := true
	for i, c := range out {
		if upper && c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
		upper = c == '_'
		if c == '_' {
			out[i] = '-'
		}
	}
	return string(out)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// voicePriority breaks ties between events at the same position so
// both Pattern ordering and encoded output are deterministic:
// kick, snare, hihat, toms, cymbals.
func voicePriority(inst Instrument) int {
	switch inst {
	case Kick:
		return 0
	case Snare, Rim:
		return 1
	case HihatClosed, HihatOpen, HihatPedal:
		return 2
	case TomHigh, TomMid, TomLow, TomFloor:
		return 3
	default:
		return 4
	}
}

func sortEvents(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Offset != events[j].Offset {
			return events[i].Offset < events[j].Offset
		}
		return voicePriority(events[i].Instrument) < voicePriority(events[j].Instrument)
	})
}
