package drums

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func seeded(seed int64) *int64 {
	return &seed
}

func TestGenerateDeterminism(t *testing.T) {
	params := DefaultParameters()
	params.Seed = seeded(42)

	first, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Generate() with the same seed produced different patterns")
	}
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr error
	}{
		{"zero tempo", func(p *Parameters) { p.Tempo = 0 }, ErrInvalidParameter},
		{"negative tempo", func(p *Parameters) { p.Tempo = -120 }, ErrInvalidParameter},
		{"zero bars", func(p *Parameters) { p.Bars = 0 }, ErrInvalidParameter},
		{"density too high", func(p *Parameters) { p.Density = 1.5 }, ErrInvalidParameter},
		{"negative variation", func(p *Parameters) { p.Variation = -0.1 }, ErrInvalidParameter},
		{"syncopation too high", func(p *Parameters) { p.Syncopation = 2 }, ErrInvalidParameter},
		{"fill frequency too high", func(p *Parameters) { p.FillFrequency = 1.1 }, ErrInvalidParameter},
		{"unknown style", func(p *Parameters) { p.Style = "death_polka" }, ErrUnknownStyle},
		{"unknown kick", func(p *Parameters) { p.KickPattern = "moonwalk" }, ErrUnknownPattern},
		{"unknown hihat", func(p *Parameters) { p.HihatPattern = "moonwalk" }, ErrUnknownPattern},
		{"unknown section", func(p *Parameters) { p.Section = "drop" }, ErrUnknownPattern},
		{"unknown rudiment type", func(p *Parameters) { p.RudimentType = "polkas" }, ErrUnknownPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := DefaultParameters()
			tt.mutate(&params)
			_, err := Generate(params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEventRanges(t *testing.T) {
	combos := []Parameters{
		{Tempo: 140, Style: StylePopPunk, Bars: 8, Density: 1, Variation: 1, Syncopation: 1, FillFrequency: 1, KickPattern: "punk", HihatPattern: "sixteenth", Seed: seeded(1)},
		{Tempo: 85, Style: StyleSingerSongwriter, Bars: 8, Density: 0.3, Variation: 0.8, Syncopation: 0.2, FillFrequency: 0.5, KickPattern: "half_time", HihatPattern: "swing", Seed: seeded(2)},
		{Tempo: 95, Style: StyleReggaeSka, Bars: 8, Density: 0.7, Variation: 0.5, Syncopation: 0.6, FillFrequency: 1, KickPattern: "one_drop", HihatPattern: "skank", Seed: seeded(3)},
	}

	for _, params := range combos {
		t.Run(string(params.Style), func(t *testing.T) {
			pattern, err := Generate(params)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			for _, bar := range pattern.Bars {
				for _, ev := range bar.Events {
					if ev.Offset < 0 || ev.Offset >= 1 {
						t.Errorf("bar %d: offset %g out of [0,1)", bar.Index, ev.Offset)
					}
					if ev.Duration <= 0 {
						t.Errorf("bar %d: duration %g not positive", bar.Index, ev.Duration)
					}
					if ev.Velocity < 1 || ev.Velocity > 127 {
						t.Errorf("bar %d: velocity %d out of [1,127]", bar.Index, ev.Velocity)
					}
				}
			}
		})
	}
}

func hasSnareAt(bar Bar, offset float64) bool {
	for _, ev := range bar.Events {
		if ev.Instrument == Snare && !ev.Grace && ev.Offset == offset {
			return true
		}
	}
	return false
}

func TestBackbeatAlwaysPresent(t *testing.T) {
	styles := []Style{StylePopPunk, StyleSingerSongwriter}
	extremes := []float64{0, 1}

	for _, style := range styles {
		for _, density := range extremes {
			for _, variation := range extremes {
				for _, syncopation := range extremes {
					params := DefaultParameters()
					params.Style = style
					params.Bars = 8
					params.Density = density
					params.Variation = variation
					params.Syncopation = syncopation
					params.FillFrequency = 1
					params.Seed = seeded(99)

					pattern, err := Generate(params)
					if err != nil {
						t.Fatalf("Generate() error = %v", err)
					}
					for _, bar := range pattern.Bars {
						if !hasSnareAt(bar, 0.25) || !hasSnareAt(bar, 0.75) {
							t.Errorf("%s d=%g v=%g s=%g: bar %d missing backbeat",
								style, density, variation, syncopation, bar.Index)
						}
					}
				}
			}
		}
	}
}

func TestFillPlacement(t *testing.T) {
	params := DefaultParameters()
	params.Bars = 12
	params.Seed = seeded(5)

	params.FillFrequency = 1
	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, bar := range pattern.Bars {
		boundary := (bar.Index+1)%PhraseLength == 0
		if bar.Fill != boundary {
			t.Errorf("fill_frequency=1: bar %d fill = %v, want %v", bar.Index, bar.Fill, boundary)
		}
	}

	params.FillFrequency = 0
	pattern, err = Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, bar := range pattern.Bars {
		if bar.Fill {
			t.Errorf("fill_frequency=0: bar %d marked as fill", bar.Index)
		}
	}
}

func TestFillsOnlyMode(t *testing.T) {
	params := DefaultParameters()
	params.Bars = 2
	params.FillsOnly = true
	params.FillFrequency = 0
	params.Seed = seeded(11)

	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, bar := range pattern.Bars {
		if !bar.Fill {
			t.Errorf("fills-only: bar %d not marked as fill", bar.Index)
		}
	}
}

func avgHihatCount(t *testing.T, density float64) float64 {
	t.Helper()
	var total, bars int
	for seed := int64(0); seed < 200; seed++ {
		params := DefaultParameters()
		params.Density = density
		params.Variation = 0
		params.Syncopation = 0
		params.FillFrequency = 0
		params.Seed = seeded(seed)

		pattern, err := Generate(params)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, bar := range pattern.Bars {
			bars++
			for _, ev := range bar.Events {
				if ev.Instrument == HihatClosed || ev.Instrument == HihatOpen {
					total++
				}
			}
		}
	}
	return float64(total) / float64(bars)
}

func TestDensityMonotonicity(t *testing.T) {
	low := avgHihatCount(t, 0)
	mid := avgHihatCount(t, 0.5)
	high := avgHihatCount(t, 1)

	if low > mid || mid > high {
		t.Errorf("hi-hat density not monotonic: %.2f, %.2f, %.2f", low, mid, high)
	}
	if low != 0 {
		t.Errorf("density 0 produced %.2f hi-hat hits per bar, want 0", low)
	}
	if high != 8 {
		t.Errorf("density 1 produced %.2f hi-hat hits per bar, want 8", high)
	}
}

func TestSingleBarMinimalDensity(t *testing.T) {
	params := DefaultParameters()
	params.Bars = 1
	params.Density = 0
	params.FillFrequency = 0
	params.Seed = seeded(7)

	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(pattern.Bars) != 1 {
		t.Fatalf("got %d bars, want 1", len(pattern.Bars))
	}
	if !hasSnareAt(pattern.Bars[0], 0.25) || !hasSnareAt(pattern.Bars[0], 0.75) {
		t.Error("single sparse bar missing backbeat")
	}
}

func TestSectionScaling(t *testing.T) {
	params := DefaultParameters()
	params.Section = SectionBreakdown
	params.Seed = seeded(3)

	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if pattern.Section != SectionBreakdown {
		t.Errorf("Section = %q, want %q", pattern.Section, SectionBreakdown)
	}
	if pattern.Description == "" {
		t.Error("empty description")
	}
}

func TestDescribeIncludesStyleAndTempo(t *testing.T) {
	for _, section := range []Section{SectionNone, SectionChorus} {
		params := DefaultParameters()
		params.Section = section
		params.Seed = seeded(3)

		pattern, err := Generate(params)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		for _, want := range []string{string(params.Style), "140 BPM", "4 bars", "density"} {
			if !strings.Contains(pattern.Description, want) {
				t.Errorf("section %q description %q missing %q", section, pattern.Description, want)
			}
		}
	}
}

func TestComplexityScore(t *testing.T) {
	tests := []struct {
		density, variation, syncopation float64
		want                            int
	}{
		{0, 0, 0, 1},
		{0.4, 0.4, 0.4, 2},
		{0.6, 0.6, 0.6, 3},
		{0.8, 0.8, 0.8, 4},
		{1, 1, 1, 5},
	}
	for _, tt := range tests {
		if got := complexity(tt.density, tt.variation, tt.syncopation); got != tt.want {
			t.Errorf("complexity(%g, %g, %g) = %d, want %d",
				tt.density, tt.variation, tt.syncopation, got, tt.want)
		}
	}
}

func TestBarEventsOrdered(t *testing.T) {
	params := DefaultParameters()
	params.Bars = 8
	params.FillFrequency = 1
	params.Seed = seeded(21)

	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, bar := range pattern.Bars {
		for i := 1; i < len(bar.Events); i++ {
			if bar.Events[i].Offset < bar.Events[i-1].Offset {
				t.Errorf("bar %d: events out of order at %d", bar.Index, i)
			}
		}
	}
}

func TestScenarioPopPunk(t *testing.T) {
	params := Parameters{
		Tempo:         160,
		Style:         StylePopPunk,
		Bars:          4,
		Density:       0.9,
		Variation:     0.5,
		Syncopation:   0.3,
		FillFrequency: 1,
		KickPattern:   "punk",
		HihatPattern:  "eighth",
		Seed:          seeded(7),
	}

	pattern, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(pattern.Bars) != 4 {
		t.Fatalf("got %d bars, want 4", len(pattern.Bars))
	}
	if !pattern.Bars[3].Fill {
		t.Error("final bar is not a fill bar")
	}

	enc := NewEncoder()
	first, err := enc.Encode(pattern)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	regenerated, err := Generate(params)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	second, err := enc.Encode(regenerated)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("same seed did not produce byte-identical MIDI output")
	}
}
