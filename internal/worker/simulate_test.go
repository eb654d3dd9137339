package worker

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"recitesync/internal/config"
	"recitesync/internal/mushaf"
	"recitesync/internal/playback"
	"recitesync/internal/timing"
)

// fourVerses builds verses n=1..4 spanning [n*2000, n*2000+1800] ms, each
// with two 800 ms words.
func fourVerses() *timing.Index {
	var vs []timing.VerseSegment
	for n := 1; n <= 4; n++ {
		from := int64(n * 2000)
		vs = append(vs, timing.VerseSegment{
			Surah: 73, Ayah: n, TimestampFrom: from, TimestampTo: from + 1800,
			Words: []timing.WordSegment{
				{WordIndex: 1, StartTime: from, EndTime: from + 800},
				{WordIndex: 2, StartTime: from + 1000, EndTime: from + 1800},
			},
		})
	}
	return timing.New(vs)
}

func simOptions(start, end, verseRepeat, sectionRepeat int) SimOptions {
	return SimOptions{
		Index: fourVerses(),
		Settings: config.PlaybackSettings{
			StartVerse:    start,
			EndVerse:      end,
			Speed:         1.0,
			VerseRepeat:   verseRepeat,
			SectionRepeat: sectionRepeat,
		},
		Speeds:       config.Default().Speeds,
		PollInterval: 200 * time.Millisecond,
		Tick:         time.Millisecond,
	}
}

func outcomes(actions []playback.Action) []string {
	var out []string
	for _, a := range actions {
		out = append(out, a.Outcome.String())
	}
	return out
}

func TestSimulate(t *testing.T) {
	tests := []struct {
		name         string
		opts         SimOptions
		wantOutcomes string
		wantTargets  []float64
		wantFinal    float64
		wantEnded    bool
	}{
		{
			name:         "section plays once then stops at its start",
			opts:         simOptions(1, 2, 1, 1),
			wantOutcomes: "stop",
			wantTargets:  []float64{2},
			wantFinal:    2,
		},
		{
			name:         "section repeat loops before stopping",
			opts:         simOptions(1, 2, 1, 2),
			wantOutcomes: "loop section,stop",
			wantTargets:  []float64{2, 2},
			wantFinal:    2,
		},
		{
			name:         "verse repeat replays each verse",
			opts:         simOptions(1, 2, 2, 1),
			wantOutcomes: "replay verse,replay verse,stop",
			wantTargets:  []float64{2, 4, 2},
			wantFinal:    2,
		},
		{
			name:         "audio ends inside the last verse",
			opts:         simOptions(3, 4, 1, 1),
			wantOutcomes: "",
			wantFinal:    9.8,
			wantEnded:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			res, err := Simulate(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Simulate: %v", err)
			}
			if got := strings.Join(outcomes(res.Actions), ","); got != tt.wantOutcomes {
				t.Errorf("outcomes = %q, want %q", got, tt.wantOutcomes)
			}
			for i, want := range tt.wantTargets {
				if i < len(res.Actions) && res.Actions[i].Target != want {
					t.Errorf("action %d target = %v, want %v", i, res.Actions[i].Target, want)
				}
			}
			if math.Abs(res.Final-tt.wantFinal) > 1e-9 {
				t.Errorf("Final = %v, want %v", res.Final, tt.wantFinal)
			}
			if res.Ended != tt.wantEnded {
				t.Errorf("Ended = %v, want %v", res.Ended, tt.wantEnded)
			}
		})
	}
}

func TestSimulate_Highlights(t *testing.T) {
	opts := simOptions(1, 2, 1, 1)
	verses := []mushaf.Verse{
		{Surah: 73, Ayah: 1, Words: []mushaf.Word{{Text: "a1"}, {Text: "a2"}}},
		{Surah: 73, Ayah: 2, Words: []mushaf.Word{{Text: "b1"}, {Text: "b2"}}},
	}
	opts.Page = mushaf.BuildPage(verses, nil, false)

	var (
		mu    sync.Mutex
		keys  []string
		lines []string
	)
	opts.OnHighlight = func(loc timing.WordLocation, line string) {
		mu.Lock()
		defer mu.Unlock()
		keys = append(keys, loc.Key())
		lines = append(lines, line)
	}

	res, err := Simulate(context.Background(), opts)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	want := []string{"73-1-1", "73-1-2", "73-2-1", "73-2-2", "73-3-1"}
	if strings.Join(keys, " ") != strings.Join(want, " ") {
		t.Errorf("highlighted %v, want %v", keys, want)
	}
	if res.Highlights != len(want) {
		t.Errorf("Highlights = %d, want %d", res.Highlights, len(want))
	}
	if lines[1] != "*a1* [a2]" {
		t.Errorf("line for 73-1-2 = %q, want %q", lines[1], "*a1* [a2]")
	}
	if lines[4] != "" {
		t.Errorf("line for off-page word = %q, want empty", lines[4])
	}
}

func TestSimulate_InfiniteSectionStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := Simulate(ctx, simOptions(1, 1, 1, config.Infinite))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Simulate error = %v, want DeadlineExceeded", err)
	}
}

func TestSimulate_Validation(t *testing.T) {
	opts := simOptions(1, 2, 1, 1)
	opts.PollInterval = 0
	if _, err := Simulate(context.Background(), opts); err == nil {
		t.Error("Simulate with zero poll interval succeeded")
	}

	opts = simOptions(1, 2, 1, 1)
	opts.Index = timing.New(nil)
	if _, err := Simulate(context.Background(), opts); err == nil {
		t.Error("Simulate with empty table succeeded")
	}

	opts = simOptions(9, 9, 1, 1)
	if _, err := Simulate(context.Background(), opts); !errors.Is(err, playback.ErrUnknownVerse) {
		t.Errorf("Simulate from unknown verse error = %v, want ErrUnknownVerse", err)
	}
}
