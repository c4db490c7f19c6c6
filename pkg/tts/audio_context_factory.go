package tts

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// IsCI detects if we're running in a CI environment or mock audio was
// requested explicitly.
func IsCI() bool {
	ciVars := []string{
		"CI",
		"CONTINUOUS_INTEGRATION",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"BUILDKITE",
	}

	for _, envVar := range ciVars {
		if val := os.Getenv(envVar); val != "" && val != "false" {
			log.Debug("CI environment detected", "variable", envVar, "value", val)
			return true
		}
	}

	if os.Getenv("ORACAO_MOCK_AUDIO") == "true" {
		log.Debug("Mock audio requested via environment variable")
		return true
	}

	return false
}

// NewAudioContext opens an audio context of the given type. The caller
// owns the context and must Close it; there is no process-wide instance.
func NewAudioContext(contextType AudioContextType, format Format) (AudioContextInterface, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	switch contextType {
	case AudioContextProduction:
		log.Debug("Creating production audio context", "format", format)
		return NewProductionAudioContext(format)

	case AudioContextMock:
		log.Debug("Creating mock audio context", "format", format)
		return NewMockAudioContext(format)

	case AudioContextAuto:
		if p := DetectPlatform(); p.ShouldUseMockAudio() {
			log.Info("Using mock audio context", "platform", p)
			return NewMockAudioContext(format)
		}

		prodCtx, err := NewProductionAudioContext(format)
		if err != nil {
			log.Warn("Failed to create production audio context, falling back to mock",
				"error", err)
			return NewMockAudioContext(format)
		}
		return prodCtx, nil

	default:
		return nil, fmt.Errorf("unknown audio context type: %v", contextType)
	}
}
