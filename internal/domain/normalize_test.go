package domain

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "PARIS", "paris"},
		{"accents", "São Paulo", "sao paulo"},
		{"acute", "Bogotá", "bogota"},
		{"cedilla", "Curaçao", "curacao"},
		{"umlaut", "Zürich", "zurich"},
		{"trim", "  Rome \t", "rome"},
		{"inner spaces kept", "New  York", "new  york"},
		{"empty", "", ""},
		{"precomposed and decomposed", "México", "mexico"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"São Paulo", "Bogotá", "  Kraków ", "ÅLESUND", "Île-de-France", "東京", ""}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeAccentInsensitive(t *testing.T) {
	pairs := [][2]string{
		{"São Paulo", "Sao Paulo"},
		{"Bogotá", "Bogota"},
		{"Montréal", "Montreal"},
	}
	for _, p := range pairs {
		if Normalize(p[0]) != Normalize(p[1]) {
			t.Errorf("Normalize(%q) != Normalize(%q)", p[0], p[1])
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Le Marais", "le-marais"},
		{"São Paulo", "sao-paulo"},
		{"  Times Square!! ", "times-square"},
		{"O'Hare", "o-hare"},
	}
	for _, tt := range tests {
		if got := Slug(tt.input); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
