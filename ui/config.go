package ui

// Config contains TUI-specific configuration.
type Config struct {
	GlamourMaxWidth uint
	GlamourStyle    string `env:"GLAMOUR_STYLE"`
	EnableMouse     bool

	// For debugging the UI
	GlamourEnabled bool `env:"ORACAO_ENABLE_GLAMOUR" envDefault:"true"`
	MockAudio      bool `env:"ORACAO_MOCK_AUDIO"`
}
