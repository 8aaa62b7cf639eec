package progress_test

import (
	"testing"

	"github.com/fitquest-health/fitquest/internal/app/progress"
	"github.com/fitquest-health/fitquest/internal/domain"
)

func TestLevels_TableShape(t *testing.T) {
	levels := progress.Levels()
	if len(levels) != 10 {
		t.Fatalf("expected 10 levels, got %d", len(levels))
	}
	if levels[0].XPThreshold != 0 {
		t.Errorf("first threshold must be 0, got %d", levels[0].XPThreshold)
	}
	for i := 1; i < len(levels); i++ {
		if levels[i].XPThreshold <= levels[i-1].XPThreshold {
			t.Errorf("thresholds not strictly increasing at level %d", levels[i].Level)
		}
		if levels[i].Level != levels[i-1].Level+1 {
			t.Errorf("levels not contiguous at index %d", i)
		}
	}
	if levels[9].Name != "Titan" || levels[9].XPThreshold != 5500 {
		t.Errorf("unexpected top level: %+v", levels[9])
	}
}

func TestLevelFor_Boundaries(t *testing.T) {
	levels := progress.Levels()

	cases := []struct {
		xp        int
		wantLevel int
		wantNext  int
	}{
		{0, 1, 100},
		{99, 1, 1},
		{100, 2, 200},   // Exactly at a threshold counts
		{299, 2, 1},
		{300, 3, 300},
		{5499, 9, 1},
		{5500, 10, 0},   // Max level: remainder capped at 0
		{999999, 10, 0},
	}
	for _, tc := range cases {
		def, next := progress.LevelFor(levels, tc.xp)
		if def.Level != tc.wantLevel {
			t.Errorf("LevelFor(%d) level = %d, want %d", tc.xp, def.Level, tc.wantLevel)
		}
		if next != tc.wantNext {
			t.Errorf("LevelFor(%d) toNext = %d, want %d", tc.xp, next, tc.wantNext)
		}
	}
}

func TestLevelFor_CustomTable(t *testing.T) {
	levels := []domain.LevelDefinition{
		{Level: 1, Name: "One", XPThreshold: 0},
		{Level: 2, Name: "Two", XPThreshold: 100},
		{Level: 3, Name: "Three", XPThreshold: 300},
	}

	def, next := progress.LevelFor(levels, 150)
	if def.Level != 2 {
		t.Errorf("expected level 2 at 150 XP, got %d", def.Level)
	}
	if next != 150 {
		t.Errorf("expected 150 XP to next level, got %d", next)
	}
}
