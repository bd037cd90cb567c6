package platform

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "linux", "linux"},
		{"uppercase", "Darwin", "darwin"},
		{"all caps", "FREEBSD", "freebsd"},
		{"trailing newline", "x86_64\n", "x86_64"},
		{"with spaces", "  i386  ", "i386"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeName(tt.input)
			if got != tt.want {
				t.Errorf("normalizeName() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	tests := []struct {
		os      string
		machine string
		want    string
	}{
		{"Darwin", "x86_64", "darwin x86_64"},
		{"Linux", "I386", "linux i386"},
		{"", "", " "},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := NewKey(tt.os, tt.machine).String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMappingKeys(t *testing.T) {
	want := []string{
		"darwin x86_64",
		"freebsd i386",
		"freebsd x86_64",
		"linux i386",
		"linux x86_64",
	}

	got := DefaultMapping().Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
