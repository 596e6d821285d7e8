package drums

import (
	"errors"
	"testing"
)

func TestLookupTemplate(t *testing.T) {
	tests := []struct {
		name    string
		style   Style
		section Section
		kind    TemplateKind
		pattern string
		wantErr error
	}{
		{"punk kick", StylePopPunk, SectionNone, KickTemplate, "punk", nil},
		{"one drop", StyleReggaeSka, SectionVerse, KickTemplate, "one_drop", nil},
		{"eighth hats", StylePopPunk, SectionChorus, HihatTemplate, "eighth", nil},
		{"swing hats", StyleSingerSongwriter, SectionNone, HihatTemplate, "swing", nil},
		{"unknown style", "speed_jazz", SectionNone, KickTemplate, "punk", ErrUnknownStyle},
		{"unknown kick", StylePopPunk, SectionNone, KickTemplate, "shuffle", ErrUnknownPattern},
		{"unknown hihat", StylePopPunk, SectionNone, HihatTemplate, "shuffle", ErrUnknownPattern},
		{"unknown section", StylePopPunk, "interlude", KickTemplate, "punk", ErrUnknownPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := LookupTemplate(tt.style, tt.section, tt.kind, tt.pattern)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LookupTemplate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupTemplate() error = %v", err)
			}
			if len(rec.Mandatory) == 0 && len(rec.Optional) == 0 {
				t.Error("empty template record")
			}
		})
	}
}

func TestSnareTemplatesHaveBackbeat(t *testing.T) {
	for style := range snareTemplates {
		rec, err := LookupTemplate(style, SectionNone, SnareTemplate, string(style))
		if err != nil {
			t.Fatalf("LookupTemplate(%s) error = %v", style, err)
		}
		var two, four bool
		for _, slot := range rec.Mandatory {
			switch slot.Beat {
			case 1:
				two = true
			case 3:
				four = true
			}
		}
		if !two || !four {
			t.Errorf("%s snare template missing backbeat slots", style)
		}
	}
}

func TestTemplateSlotRanges(t *testing.T) {
	check := func(t *testing.T, name string, rec TemplateRecord) {
		t.Helper()
		for _, slot := range rec.Mandatory {
			if slot.Beat < 0 || slot.Beat >= BeatsPerBar {
				t.Errorf("%s: mandatory beat %g out of range", name, slot.Beat)
			}
		}
		for _, slot := range rec.Optional {
			if slot.Beat < 0 || slot.Beat >= BeatsPerBar {
				t.Errorf("%s: optional beat %g out of range", name, slot.Beat)
			}
			if slot.Weight <= 0 || slot.Weight > 1 {
				t.Errorf("%s: weight %g out of (0,1]", name, slot.Weight)
			}
		}
	}
	for name, rec := range kickTemplates {
		check(t, "kick/"+name, rec)
	}
	for name, rec := range hihatTemplates {
		check(t, "hihat/"+name, rec)
	}
	for style, rec := range snareTemplates {
		check(t, "snare/"+string(style), rec)
	}
}

func TestEnumListings(t *testing.T) {
	if got := Styles(); len(got) != 3 {
		t.Errorf("Styles() = %v, want 3 entries", got)
	}
	if got := Sections(); len(got) != 7 {
		t.Errorf("Sections() = %v, want 7 entries", got)
	}
	if got := KickPatterns(); len(got) != 7 {
		t.Errorf("KickPatterns() = %v, want 7 entries", got)
	}
	if got := HihatPatterns(); len(got) != 6 {
		t.Errorf("HihatPatterns() = %v, want 6 entries", got)
	}
}
