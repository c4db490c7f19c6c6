package tts

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// AudioSubsystem is the sound server or driver found on the machine.
type AudioSubsystem string

const (
	AudioSubsystemALSA       AudioSubsystem = "alsa"
	AudioSubsystemPulseAudio AudioSubsystem = "pulseaudio"
	AudioSubsystemCoreAudio  AudioSubsystem = "coreaudio"
	AudioSubsystemWASAPI     AudioSubsystem = "wasapi"
	AudioSubsystemNone       AudioSubsystem = "none"
)

// PlatformInfo describes whether this machine can play sound.
type PlatformInfo struct {
	OS             string
	AudioSubsystem AudioSubsystem
	HasAudioDevice bool
	IsCI           bool
}

// DetectPlatform probes the audio capabilities of the current machine.
func DetectPlatform() PlatformInfo {
	return detectPlatform(runtime.GOOS, "/")
}

// detectPlatform looks for devices below root so tests can fake /dev and /proc.
func detectPlatform(goos, root string) PlatformInfo {
	info := PlatformInfo{OS: goos, IsCI: IsCI()}

	switch goos {
	case "linux":
		info.AudioSubsystem = detectLinuxAudio(root)
		info.HasAudioDevice = info.AudioSubsystem == AudioSubsystemPulseAudio || hasLinuxDevice(root)
	case "darwin":
		info.AudioSubsystem = AudioSubsystemCoreAudio
		info.HasAudioDevice = true
	case "windows":
		info.AudioSubsystem = AudioSubsystemWASAPI
		info.HasAudioDevice = true
	default:
		info.AudioSubsystem = AudioSubsystemNone
	}

	log.Debug("Platform detected",
		"os", info.OS,
		"audio", info.AudioSubsystem,
		"has_device", info.HasAudioDevice,
		"is_ci", info.IsCI)
	return info
}

// detectLinuxAudio prefers a PulseAudio (or PipeWire) socket over raw ALSA.
func detectLinuxAudio(root string) AudioSubsystem {
	if os.Getenv("PULSE_SERVER") != "" {
		return AudioSubsystemPulseAudio
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		if _, err := os.Stat(filepath.Join(dir, "pulse", "native")); err == nil {
			return AudioSubsystemPulseAudio
		}
	}
	if _, err := os.Stat(filepath.Join(root, "proc", "asound")); err == nil {
		return AudioSubsystemALSA
	}
	return AudioSubsystemNone
}

// hasLinuxDevice looks for an ALSA playback device or a listed sound card.
func hasLinuxDevice(root string) bool {
	if entries, err := os.ReadDir(filepath.Join(root, "dev", "snd")); err == nil {
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), "pcm") {
				return true
			}
		}
	}

	cards, err := os.ReadFile(filepath.Join(root, "proc", "asound", "cards"))
	return err == nil && len(cards) > 0 && !strings.Contains(string(cards), "no soundcards")
}

// ShouldUseMockAudio reports whether playback has to be simulated.
func (p PlatformInfo) ShouldUseMockAudio() bool {
	return p.IsCI || p.AudioSubsystem == AudioSubsystemNone || !p.HasAudioDevice
}

func (p PlatformInfo) String() string {
	return fmt.Sprintf("Platform{OS: %s, Audio: %s, HasDevice: %v, IsCI: %v}",
		p.OS, p.AudioSubsystem, p.HasAudioDevice, p.IsCI)
}
