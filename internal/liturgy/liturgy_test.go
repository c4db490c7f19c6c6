package liturgy

import (
	"testing"
	"time"
)

func TestFallback(t *testing.T) {
	want := Day{
		Saint:   "Santo do Dia",
		Season:  "Tempo Comum",
		Color:   "verde",
		Message: "Caminhemos com alegria seguindo os passos de Nosso Senhor Jesus Cristo.",
	}
	if got := Fallback(); got != want {
		t.Errorf("Fallback() = %+v, want %+v", got, want)
	}
	if !Fallback().Complete() {
		t.Error("fallback should be complete")
	}
	if Fallback().Liturgical() != Green {
		t.Errorf("fallback colour should be green, got %q", Fallback().Liturgical())
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"verde", Green},
		{"Green", Green},
		{"ROXO", Purple},
		{"violeta", Purple},
		{"branco", White},
		{" vermelho ", Red},
		{"rosa", Rose},
		{"azul", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPaletteLabels(t *testing.T) {
	tests := []struct {
		color Color
		label string
	}{
		{Green, "Tempo Comum"},
		{Purple, "Quaresma/Advento"},
		{White, "Festas e Solenidades"},
		{Red, "Paixão e Mártires"},
		{Rose, "Especial"},
		{"", "Especial"},
	}
	for _, tt := range tests {
		if got := Palette(tt.color).Label; got != tt.label {
			t.Errorf("Palette(%q).Label = %q, want %q", tt.color, got, tt.label)
		}
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2026, time.March, 7, 15, 0, 0, 0, time.Local)
	if got := FormatDate(d); got != "07/03/2026" {
		t.Errorf("FormatDate = %q", got)
	}

	parsed, err := ParseDate("25/12/2025")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if parsed.Day() != 25 || parsed.Month() != time.December || parsed.Year() != 2025 {
		t.Errorf("ParseDate = %v", parsed)
	}

	if _, err := ParseDate("2025-12-25"); err == nil {
		t.Error("Expected error for ISO date")
	}
}
