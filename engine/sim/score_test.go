package sim

import "testing"

func TestParseScore(t *testing.T) {
	src := `
; one note for a minute
f 1 0 16384 10 1
i1 0 60
i 1 .  .
i1 + 2
e
i1 100 100
`
	events, err := ParseScore(src)
	if err != nil {
		t.Fatalf("ParseScore() error = %v", err)
	}

	want := []Event{
		{Instrument: "1", Start: 0, Duration: 60},
		{Instrument: "1", Start: 0, Duration: 60},
		{Instrument: "1", Start: 60, Duration: 2},
	}

	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, events[i], want[i])
		}
	}

	if got := ScoreEnd(events); got != 62 {
		t.Fatalf("ScoreEnd() = %v, want 62", got)
	}
}

func TestParseScoreQuotedInstrument(t *testing.T) {
	events, err := ParseScore(`i "Drone" 1 2`)
	if err != nil {
		t.Fatalf("ParseScore() error = %v", err)
	}
	if len(events) != 1 || events[0].Instrument != "Drone" || events[0].End() != 3 {
		t.Fatalf("events = %+v", events)
	}
}

func TestParseScoreErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "too few fields", src: "i1 0"},
		{name: "bad start", src: "i1 soon 1"},
		{name: "negative start", src: "i1 -1 1"},
		{name: "held note", src: "i1 0 -1"},
		{name: "carry without previous", src: "i1 . 1"},
		{name: "plus without previous", src: "i1 + 1"},
		{name: "plus duration", src: "i1 0 1\ni1 0 +"},
		{name: "tempo", src: "t 0 120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseScore(tt.src); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestScoreEndEmpty(t *testing.T) {
	if got := ScoreEnd(nil); got != 0 {
		t.Fatalf("ScoreEnd(nil) = %v, want 0", got)
	}
}
