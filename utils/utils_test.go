package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	t.Setenv("ORACAO_TEST_DIR", "devocionais")

	tests := []struct {
		in   string
		want string
	}{
		{"~/oracao", filepath.Join(home, "oracao")},
		{"/tmp/$ORACAO_TEST_DIR", "/tmp/devocionais"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDataDir(t *testing.T) {
	if got := DataDir("  ", "/var/lib/oracao"); got != "/var/lib/oracao" {
		t.Errorf("Expected default, got %q", got)
	}
	if got := DataDir("/srv/oracao/", "/var/lib/oracao"); got != "/srv/oracao" {
		t.Errorf("Expected cleaned path, got %q", got)
	}
}

func TestWrap(t *testing.T) {
	text := "Pai Nosso que estais no céu santificado seja o vosso nome"
	if Wrap(text, 0) != text {
		t.Error("width 0 must not wrap")
	}
	for _, line := range strings.Split(Wrap(text, 20), "\n") {
		if len([]rune(line)) > 20 {
			t.Errorf("line %q exceeds 20 columns", line)
		}
	}
}
