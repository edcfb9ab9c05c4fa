package ui

import (
	"testing"

	"github.com/five82/tracepanel/internal/tracelog"
)

func TestGetTheme_FallsBackToDefault(t *testing.T) {
	if got := GetTheme("nope").Name; got != DefaultThemeName {
		t.Fatalf("GetTheme(unknown) = %q, want %q", got, DefaultThemeName)
	}
	for _, name := range ThemeNames() {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestNextTheme_Cycles(t *testing.T) {
	names := ThemeNames()
	seen := map[string]bool{}
	cur := names[0]
	for range names {
		seen[cur] = true
		cur = NextTheme(cur)
	}
	if cur != names[0] || len(seen) != len(names) {
		t.Fatalf("NextTheme did not cycle through %v", names)
	}
	if got := NextTheme("unknown"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
}

func TestThemesDefineEveryLevelColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, l := range tracelog.Levels() {
			if th.LevelColors[l] == "" {
				t.Fatalf("%s: no color for %s", name, l)
			}
		}
	}
}

func TestLevelStyle_OutOfRange(t *testing.T) {
	s := GetTheme(DefaultThemeName).Styles()
	if got := s.LevelStyle(tracelog.Level(42)).Render("x"); got != s.Text.Render("x") {
		t.Fatalf("LevelStyle(out of range) = %q, want text style", got)
	}
}
