package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/feeoracao/oracao/pkg/tts"
)

var (
	speakOut string

	speakCmd = &cobra.Command{
		Use:               "speak ID",
		Short:             "Read a prayer aloud",
		Long:              paragraph(fmt.Sprintf("\nRead a prayer aloud, or %s it as a WAV file with --out.", keyword("save"))),
		Example:           paragraph("oracao speak pai-nosso\noracao speak credo-apostolico --out credo.wav"),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completePrayerIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close() //nolint:errcheck

			p, err := a.catalog.Prayer(args[0])
			if err != nil {
				return err
			}

			if speakOut != "" {
				return saveSpeech(ctx, cmd.OutOrStdout(), a.gemini, p.Content, speakOut)
			}

			pl, err := a.newPlayer(viper.GetBool("audio.mock"))
			if err != nil {
				return err
			}
			defer pl.Close() //nolint:errcheck

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", keyword("▶"), p.Title)
			return speak(ctx, pl.Controller, p.Content)
		},
	}
)

func init() {
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "write a WAV file instead of playing")
}

// speak plays text and waits until playback ends or ctx is cancelled.
func speak(ctx context.Context, c *tts.Controller, text string) error {
	if err := c.Toggle(ctx, text); err != nil {
		return err
	}
	for {
		if c.State() == tts.StateIdle {
			return nil
		}
		select {
		case <-ctx.Done():
			c.Stop()
			return nil
		case s, ok := <-c.Changes():
			if !ok || s == tts.StateIdle {
				return nil
			}
		}
	}
}

// saveSpeech synthesizes text and writes it to path as WAV.
func saveSpeech(ctx context.Context, w io.Writer, synth tts.Synthesizer, text, path string) error {
	payload, err := synth.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("%w: %w", tts.ErrAudioUnavailable, err)
	}
	format := audioFormat()
	buf, err := tts.Decode(payload, format.SampleRate, format.Channels)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := tts.WriteWAV(f, buf); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	log.Debug("Saved speech", "path", path, "duration", buf.Duration())
	_, err = fmt.Fprintf(w, "Wrote %s (%s, %s)\n", path, buf.Duration().Round(100*time.Millisecond), humanize.Bytes(uint64(info.Size()))) //nolint:gosec
	return err
}
