package drums

import "sort"

// ControlScale names the parameter that scales an optional slot's weight.
type ControlScale int

const (
	ScaleDensity ControlScale = iota
	ScaleSyncopation
	ScaleVariation
)

// Slot is a fixed hit position inside a bar, in beats [0,4).
type Slot struct {
	Instrument Instrument
	Beat       float64
	Accent     bool

	// Rim is the chance the hit renders on the rim instead of the
	// slot's instrument (reggae/ska cross-stick backbeat).
	Rim float64
}

// OptionalSlot is a candidate hit included with probability Weight
// scaled by the control named in Scale.
type OptionalSlot struct {
	Slot
	Weight float64
	Scale  ControlScale
	Ghost  bool

	// Open is the chance (scaled by variation) the hit renders on the
	// open hi-hat instead of the closed one.
	Open float64

	// Shiftable marks hits eligible for syncopation displacement.
	Shiftable bool
}

// TemplateRecord is the resolved rule set for one named pattern: hits
// that must always appear, weighted candidates, and the offset deltas
// (in beats) syncopation may apply to shiftable hits.
type TemplateRecord struct {
	Mandatory  []Slot
	Optional   []OptionalSlot
	SyncDeltas []float64
}

// TemplateKind selects which registry a name is resolved against.
type TemplateKind int

const (
	KickTemplate TemplateKind = iota
	HihatTemplate
	SnareTemplate
)

var defaultSyncDeltas = []float64{-0.25, 0.25} // ±1/16 note

var kickTemplates = map[string]TemplateRecord{
	"punk": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
			{Instrument: Kick, Beat: 2},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 1.5}, Weight: 1.0, Scale: ScaleSyncopation},
			{Slot: Slot{Instrument: Kick, Beat: 3.5}, Weight: 0.5, Scale: ScaleSyncopation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"four_floor": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
			{Instrument: Kick, Beat: 1},
			{Instrument: Kick, Beat: 2},
			{Instrument: Kick, Beat: 3},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"half_time": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
			{Instrument: Kick, Beat: 3},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 2.5}, Weight: 0.5, Scale: ScaleVariation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"double": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
			{Instrument: Kick, Beat: 0.5},
			{Instrument: Kick, Beat: 2},
			{Instrument: Kick, Beat: 2.5},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 0.25}, Weight: 0.3, Scale: ScaleVariation},
			{Slot: Slot{Instrument: Kick, Beat: 0.75}, Weight: 0.3, Scale: ScaleVariation},
			{Slot: Slot{Instrument: Kick, Beat: 2.25}, Weight: 0.3, Scale: ScaleVariation},
			{Slot: Slot{Instrument: Kick, Beat: 2.75}, Weight: 0.3, Scale: ScaleVariation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"skank": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 2}, Weight: 0.6, Scale: ScaleVariation},
			{Slot: Slot{Instrument: Kick, Beat: 2.5}, Weight: 0.35, Scale: ScaleSyncopation},
			{Slot: Slot{Instrument: Kick, Beat: 3.5}, Weight: 0.35, Scale: ScaleSyncopation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"one_drop": {
		Mandatory: []Slot{
			// No kick on the one; that is the whole point of a one-drop.
			{Instrument: Kick, Beat: 2, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 3.5}, Weight: 0.5, Scale: ScaleVariation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"d_beat": {
		Mandatory: []Slot{
			{Instrument: Kick, Beat: 0, Accent: true},
			{Instrument: Kick, Beat: 2, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Kick, Beat: 1.5}, Weight: 1.0, Scale: ScaleSyncopation},
			{Slot: Slot{Instrument: Kick, Beat: 3.5}, Weight: 1.0, Scale: ScaleSyncopation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
}

func eighthGrid(open float64) []OptionalSlot {
	slots := make([]OptionalSlot, 0, 8)
	for i := 0; i < 8; i++ {
		beat := float64(i) * 0.5
		slots = append(slots, OptionalSlot{
			Slot:      Slot{Instrument: HihatClosed, Beat: beat, Accent: i%4 == 0},
			Weight:    1.0,
			Scale:     ScaleDensity,
			Open:      open,
			Shiftable: true,
		})
	}
	return slots
}

var hihatTemplates = map[string]TemplateRecord{
	"eighth": {
		Optional:   eighthGrid(0.2),
		SyncDeltas: defaultSyncDeltas,
	},
	"sixteenth": {
		Optional: func() []OptionalSlot {
			slots := make([]OptionalSlot, 0, 16)
			for i := 0; i < 16; i++ {
				slots = append(slots, OptionalSlot{
					Slot:      Slot{Instrument: HihatClosed, Beat: float64(i) * 0.25, Accent: i%4 == 0},
					Weight:    1.0,
					Scale:     ScaleDensity,
					Shiftable: true,
				})
			}
			return slots
		}(),
		SyncDeltas: []float64{-0.125, 0.125},
	},
	"ride": {
		Optional: func() []OptionalSlot {
			slots := make([]OptionalSlot, 0, 8)
			for i := 0; i < 8; i++ {
				slots = append(slots, OptionalSlot{
					Slot:      Slot{Instrument: Ride, Beat: float64(i) * 0.5, Accent: i%2 == 0},
					Weight:    0.9,
					Scale:     ScaleDensity,
					Shiftable: true,
				})
			}
			return slots
		}(),
		SyncDeltas: defaultSyncDeltas,
	},
	"open_closed": {
		Mandatory: []Slot{
			{Instrument: HihatClosed, Beat: 0, Accent: true},
			{Instrument: HihatClosed, Beat: 1, Accent: true},
			{Instrument: HihatClosed, Beat: 2, Accent: true},
			{Instrument: HihatClosed, Beat: 3, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: HihatOpen, Beat: 0.5}, Weight: 1.0, Scale: ScaleDensity, Shiftable: true},
			{Slot: Slot{Instrument: HihatOpen, Beat: 1.5}, Weight: 1.0, Scale: ScaleDensity, Shiftable: true},
			{Slot: Slot{Instrument: HihatOpen, Beat: 2.5}, Weight: 1.0, Scale: ScaleDensity, Shiftable: true},
			{Slot: Slot{Instrument: HihatOpen, Beat: 3.5}, Weight: 1.0, Scale: ScaleDensity, Shiftable: true},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"skank": {
		// Offbeats only, the choppy upbeat feel.
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: HihatClosed, Beat: 0.5, Accent: true}, Weight: 1.0, Scale: ScaleDensity, Open: 0.25, Shiftable: true},
			{Slot: Slot{Instrument: HihatClosed, Beat: 1.5, Accent: true}, Weight: 1.0, Scale: ScaleDensity, Open: 0.25, Shiftable: true},
			{Slot: Slot{Instrument: HihatClosed, Beat: 2.5, Accent: true}, Weight: 1.0, Scale: ScaleDensity, Open: 0.25, Shiftable: true},
			{Slot: Slot{Instrument: HihatClosed, Beat: 3.5, Accent: true}, Weight: 1.0, Scale: ScaleDensity, Open: 0.25, Shiftable: true},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	"swing": {
		Mandatory: []Slot{
			{Instrument: HihatClosed, Beat: 0, Accent: true},
			{Instrument: HihatClosed, Beat: 1, Accent: true},
			{Instrument: HihatClosed, Beat: 2, Accent: true},
			{Instrument: HihatClosed, Beat: 3, Accent: true},
		},
		Optional: []OptionalSlot{
			// Swung upbeat lands on the third triplet of each beat.
			{Slot: Slot{Instrument: HihatClosed, Beat: 0.667}, Weight: 1.0, Scale: ScaleDensity, Open: 0.15},
			{Slot: Slot{Instrument: HihatClosed, Beat: 1.667}, Weight: 1.0, Scale: ScaleDensity, Open: 0.15},
			{Slot: Slot{Instrument: HihatClosed, Beat: 2.667}, Weight: 1.0, Scale: ScaleDensity, Open: 0.15},
			{Slot: Slot{Instrument: HihatClosed, Beat: 3.667}, Weight: 1.0, Scale: ScaleDensity, Open: 0.15},
		},
		SyncDeltas: defaultSyncDeltas,
	},
}

// snareTemplates keys by style. The beat-2/beat-4 backbeat is mandatory
// for every style; reggae/ska renders it mostly on the rim.
var snareTemplates = map[Style]TemplateRecord{
	StylePopPunk: {
		Mandatory: []Slot{
			{Instrument: Snare, Beat: 1, Accent: true},
			{Instrument: Snare, Beat: 3, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Snare, Beat: 1.75}, Weight: 0.4, Scale: ScaleVariation, Ghost: true},
			{Slot: Slot{Instrument: Snare, Beat: 3.75}, Weight: 1.0, Scale: ScaleSyncopation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	StyleSingerSongwriter: {
		Mandatory: []Slot{
			{Instrument: Snare, Beat: 1, Accent: true},
			{Instrument: Snare, Beat: 3, Accent: true},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Rim, Beat: 2}, Weight: 0.3, Scale: ScaleVariation},
		},
		SyncDeltas: defaultSyncDeltas,
	},
	StyleReggaeSka: {
		Mandatory: []Slot{
			{Instrument: Snare, Beat: 1, Accent: true, Rim: 0.6},
			{Instrument: Snare, Beat: 3, Accent: true, Rim: 0.7},
		},
		Optional: []OptionalSlot{
			{Slot: Slot{Instrument: Snare, Beat: 2.5}, Weight: 0.3, Scale: ScaleVariation, Ghost: true},
		},
		SyncDeltas: defaultSyncDeltas,
	},
}

// VoiceVelocity describes how one voice is humanized: a base level, a
// jitter span, and an accent boost.
type VoiceVelocity struct {
	Base      float64
	Variation float64
	Accent    float64
}

var velocityProfiles = map[Style]map[string]VoiceVelocity{
	StylePopPunk: {
		"kick":        {Base: 110, Variation: 10, Accent: 15},
		"snare":       {Base: 105, Variation: 12, Accent: 15},
		"hihat":       {Base: 75, Variation: 15, Accent: 20},
		"ghost_snare": {Base: 45, Variation: 10},
	},
	StyleSingerSongwriter: {
		"kick":        {Base: 85, Variation: 20, Accent: 25},
		"snare":       {Base: 80, Variation: 25, Accent: 30},
		"hihat":       {Base: 60, Variation: 20, Accent: 25},
		"ghost_snare": {Base: 35, Variation: 12},
	},
	StyleReggaeSka: {
		"kick":        {Base: 95, Variation: 18, Accent: 20},
		"snare":       {Base: 90, Variation: 22, Accent: 25},
		"rim":         {Base: 85, Variation: 20, Accent: 22},
		"hihat":       {Base: 70, Variation: 18, Accent: 28},
		"ghost_snare": {Base: 40, Variation: 15},
	},
}

// SectionProfile scales the control parameters for a song section.
type SectionProfile struct {
	DensityMult   float64
	VariationMult float64
	FillMult      float64
	Description   string
}

var sectionProfiles = map[Section]SectionProfile{
	SectionIntro:     {0.6, 0.7, 0.8, "Building, sparse groove"},
	SectionVerse:     {0.75, 0.6, 0.5, "Groove-focused, supportive"},
	SectionPreChorus: {0.9, 0.8, 1.2, "Building tension and energy"},
	SectionChorus:    {1.1, 0.7, 0.9, "Full energy, powerful and driving"},
	SectionBridge:    {0.85, 1.3, 1.0, "Contrasting, transitional"},
	SectionBreakdown: {0.3, 0.4, 0.2, "Minimal, stripped down"},
	SectionOutro:     {0.7, 0.9, 1.5, "Ending with impact or fade"},
}

// LookupTemplate resolves the rule set for a named pattern. Style and
// section membership are validated first so an unknown style never
// reports as an unknown pattern.
func LookupTemplate(style Style, section Section, kind TemplateKind, name string) (TemplateRecord, error) {
	if _, ok := velocityProfiles[style]; !ok {
		return TemplateRecord{}, unknownStyle(string(style))
	}
	if section != SectionNone {
		if _, ok := sectionProfiles[section]; !ok {
			return TemplateRecord{}, unknownPattern("section", string(section))
		}
	}
	switch kind {
	case KickTemplate:
		rec, ok := kickTemplates[name]
		if !ok {
			return TemplateRecord{}, unknownPattern("kick pattern", name)
		}
		return rec, nil
	case HihatTemplate:
		rec, ok := hihatTemplates[name]
		if !ok {
			return TemplateRecord{}, unknownPattern("hihat pattern", name)
		}
		return rec, nil
	case SnareTemplate:
		return snareTemplates[style], nil
	}
	return TemplateRecord{}, unknownPattern("template kind", name)
}

// SectionFor returns the intensity profile for a section, reporting
// whether one is registered.
func SectionFor(section Section) (SectionProfile, bool) {
	p, ok := sectionProfiles[section]
	return p, ok
}

// Styles lists the supported style names, sorted.
func Styles() []string {
	return sortedKeys(velocityProfiles)
}

// Sections lists the supported section names, sorted.
func Sections() []string {
	return sortedKeys(sectionProfiles)
}

// KickPatterns lists the registered kick pattern names, sorted.
func KickPatterns() []string {
	return sortedKeys(kickTemplates)
}

// HihatPatterns lists the registered hihat pattern names, sorted.
func HihatPatterns() []string {
	return sortedKeys(hihatTemplates)
}

func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}
