//go:build nocgo
// +build nocgo

package tts

import (
	"errors"
	"io"
)

// Stub implementations for builds without CGO

var errNoCGO = errors.New("audio not available in nocgo build")

// ProductionAudioContext stub for nocgo builds
type ProductionAudioContext struct{}

// NewProductionAudioContext always fails; AudioContextAuto falls back to the mock.
func NewProductionAudioContext(format Format) (*ProductionAudioContext, error) {
	return nil, errNoCGO
}

func (pac *ProductionAudioContext) NewPlayer(r io.Reader) (AudioPlayerInterface, error) {
	return nil, errNoCGO
}

func (pac *ProductionAudioContext) Close() error { return nil }

func (pac *ProductionAudioContext) IsReady() bool { return false }

func (pac *ProductionAudioContext) SampleRate() int { return SampleRate }

func (pac *ProductionAudioContext) ChannelCount() int { return Channels }
