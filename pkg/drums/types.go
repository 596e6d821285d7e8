// Package drums generates drum patterns from musical control parameters
// and encodes them as standard MIDI files.
package drums

// Instrument identifies a drum kit voice.
type Instrument string

const (
	Kick        Instrument = "kick"
	Snare       Instrument = "snare"
	Rim         Instrument = "rim"
	HihatClosed Instrument = "hihat_closed"
	HihatOpen   Instrument = "hihat_open"
	HihatPedal  Instrument = "hihat_pedal"
	Ride        Instrument = "ride"
	Crash       Instrument = "crash"
	TomHigh     Instrument = "tom_high"
	TomMid      Instrument = "tom_mid"
	TomLow      Instrument = "tom_low"
	TomFloor    Instrument = "tom_floor"
	Tambourine  Instrument = "tambourine"
	Shaker      Instrument = "shaker"
)

// GMNotes maps each voice to its General MIDI percussion key number.
var GMNotes = map[Instrument]uint8{
	Kick:        36,
	Snare:       38,
	Rim:         37,
	HihatClosed: 42,
	HihatOpen:   46,
	HihatPedal:  44,
	Ride:        51,
	Crash:       49,
	TomHigh:     50,
	TomMid:      47,
	TomLow:      45,
	TomFloor:    41,
	Tambourine:  54,
	Shaker:      70,
}

// Style is a supported musical style.
type Style string

const (
	StylePopPunk          Style = "pop_punk"
	StyleSingerSongwriter Style = "singer_songwriter"
	StyleReggaeSka        Style = "reggae_ska"
)

// Section is a song section used to scale generation intensity.
type Section string

const (
	SectionNone      Section = ""
	SectionIntro     Section = "intro"
	SectionVerse     Section = "verse"
	SectionPreChorus Section = "pre_chorus"
	SectionChorus    Section = "chorus"
	SectionBridge    Section = "bridge"
	SectionBreakdown Section = "breakdown"
	SectionOutro     Section = "outro"
)

// RudimentCategory classifies rudiment figures.
type RudimentCategory string

const (
	CategoryRolls   RudimentCategory = "rolls"
	CategoryDiddles RudimentCategory = "diddles"
	CategoryFlams   RudimentCategory = "flams"
	CategoryDrags   RudimentCategory = "drags"
	CategoryMixed   RudimentCategory = "mixed"
)

// Parameters are the control inputs for a single generation run.
type Parameters struct {
	Tempo         float64 `json:"tempo"`
	Style         Style   `json:"style"`
	Section       Section `json:"section,omitempty"`
	Bars          int     `json:"bars"`
	Density       float64 `json:"density"`
	Variation     float64 `json:"variation"`
	Syncopation   float64 `json:"syncopation"`
	FillFrequency float64 `json:"fill_frequency"`
	KickPattern   string  `json:"kick_pattern"`
	HihatPattern  string  `json:"hihat_pattern"`

	// Seed makes generation reproducible when non-nil.
	Seed *int64 `json:"seed,omitempty"`

	// FillsOnly turns every bar into a fill bar (1-bar fill libraries).
	FillsOnly bool `json:"fills_only,omitempty"`

	// RudimentType restricts which figures fills draw from.
	RudimentType RudimentCategory `json:"rudiment_type,omitempty"`

	// RudimentIntensity scales fill subdivision and accents (0..1).
	RudimentIntensity float64 `json:"rudiment_intensity,omitempty"`

	// Humanize applies velocity profiles and jitter. Pointer so the JSON
	// zero value does not silence humanization; nil means on.
	Humanize *bool `json:"humanize,omitempty"`
}

// DefaultParameters mirrors the CLI defaults.
func DefaultParameters() Parameters {
	return Parameters{
		Tempo:             140,
		Style:             StylePopPunk,
		Bars:              4,
		Density:           0.7,
		Variation:         0.5,
		Syncopation:       0.3,
		FillFrequency:     0.25,
		KickPattern:       "punk",
		HihatPattern:      "eighth",
		RudimentType:      CategoryMixed,
		RudimentIntensity: 0.5,
	}
}

func (p Parameters) humanized() bool {
	return p.Humanize == nil || *p.Humanize
}

// Event is a single drum hit, positioned relative to its bar.
type Event struct {
	Instrument Instrument `json:"instrument"`
	Offset     float64    `json:"offset"`   // bar-relative, [0,1)
	Duration   float64    `json:"duration"` // beats, > 0
	Velocity   uint8      `json:"velocity"` // 1..127
	Grace      bool       `json:"grace,omitempty"`
}

// Bar is an ordered-by-offset collection of events.
type Bar struct {
	Index  int     `json:"index"`
	Fill   bool    `json:"fill"`
	Events []Event `json:"events"`
}

// Pattern is the result of a generation run. It is immutable once
// returned by Generate.
type Pattern struct {
	Tempo       float64    `json:"tempo"`
	Style       Style      `json:"style"`
	Section     Section    `json:"section,omitempty"`
	Bars        []Bar      `json:"bars"`
	Complexity  int        `json:"complexity"` // 1..5
	Description string     `json:"description"`
	Params      Parameters `json:"params"`
}

// NumBars returns the bar count.
func (p *Pattern) NumBars() int {
	return len(p.Bars)
}

// BeatsPerBar is fixed: all generation is in 4/4.
const BeatsPerBar = 4

// PhraseLength is the number of bars in a phrase; fills may only occur
// on the last bar of a phrase.
const PhraseLength = 4
