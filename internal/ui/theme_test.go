package ui

import (
	"reflect"
	"testing"
)

func TestThemeNames(t *testing.T) {
	want := []string{"Meadow", "Dusk", "Slate"}
	if got := ThemeNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("ThemeNames() = %v, want %v", got, want)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Meadow"); got != "Dusk" {
		t.Fatalf("NextTheme(Meadow) = %q, want Dusk", got)
	}
	if got := NextTheme("Slate"); got != "Meadow" {
		t.Fatalf("NextTheme(Slate) = %q, want Meadow", got)
	}
	if got := NextTheme("Unknown"); got != "Meadow" {
		t.Fatalf("NextTheme(Unknown) = %q, want Meadow", got)
	}
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name); got.Name != name {
			t.Fatalf("GetTheme(%s).Name = %q", name, got.Name)
		}
	}
	if got := GetTheme("Dracula"); got.Name != "Meadow" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Meadow (fallback)", got.Name)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		v := reflect.ValueOf(GetTheme(name))
		for i := 0; i < v.NumField(); i++ {
			if v.Field(i).String() == "" {
				t.Fatalf("theme %s: %s is empty", name, v.Type().Field(i).Name)
			}
		}
	}
}
