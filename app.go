package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"github.com/feeoracao/oracao/internal/catalog"
	"github.com/feeoracao/oracao/internal/gemini"
	"github.com/feeoracao/oracao/internal/icons"
	"github.com/feeoracao/oracao/internal/journal"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/pkg/tts"
	"github.com/feeoracao/oracao/utils"
)

// zstd level of the data store. Journals are small, icons are already
// compressed, so the fastest level is enough.
const storeCompression = 1

// app holds the services shared by the TUI and the subcommands.
type app struct {
	store   *store.DiskStore
	gemini  *gemini.Client
	catalog *catalog.Catalog
	journal *journal.Journal
	icons   *icons.Service
}

func openApp(ctx context.Context) (*app, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	ds, err := store.NewDiskStore(dir, storeCompression)
	if err != nil {
		return nil, err
	}
	log.Debug("Opened data store", "dir", dir)

	cfg := geminiConfig()
	client, err := gemini.New(ctx, cfg)
	if err != nil {
		if !errors.Is(err, gemini.ErrNoAPIKey) {
			_ = ds.Close()
			return nil, err
		}
		log.Warn("No Gemini API key, running offline")
		client = gemini.Offline(cfg)
	}

	return &app{
		store:   ds,
		gemini:  client,
		catalog: catalog.Default(),
		journal: journal.New(ds),
		icons:   icons.New(ds, client),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// dataDir is the configured data_dir or the user data directory.
func dataDir() (string, error) {
	var def string
	dirs, err := gap.NewScope(gap.User, appName).DataDirs()
	if err == nil && len(dirs) > 0 {
		def = dirs[0]
	}
	dir := utils.DataDir(viper.GetString("data_dir"), def)
	if dir == "" {
		return "", errors.New("could not find a data directory")
	}
	return dir, nil
}

func geminiConfig() gemini.Config {
	cfg := gemini.DefaultConfig()
	cfg.APIKey = apiKey()
	if v := viper.GetString("gemini.text_model"); v != "" {
		cfg.TextModel = v
	}
	if v := viper.GetString("gemini.tts_model"); v != "" {
		cfg.SpeechModel = v
	}
	if v := viper.GetString("gemini.image_model"); v != "" {
		cfg.ImageModel = v
	}
	if v := viper.GetString("gemini.voice"); v != "" {
		cfg.Voice = v
	}
	if v := viper.GetInt("gemini.requests_per_minute"); v > 0 {
		cfg.RequestsPerMinute = v
	}
	if v := viper.GetDuration("gemini.timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg
}

// apiKey prefers the config file, then GEMINI_API_KEY, then API_KEY.
func apiKey() string {
	for _, k := range []string{
		viper.GetString("gemini.api_key"),
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("API_KEY"),
	} {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

// audioFormat is the format of every speech payload. The device is opened
// with it too, so buffers play without resampling.
func audioFormat() tts.Format {
	return tts.DefaultFormat()
}

// player is a controller together with the audio device it plays on.
type player struct {
	*tts.Controller
	device tts.AudioContextInterface
	cache  *store.MemoryCache
	once   sync.Once
}

func (a *app) newPlayer(mock bool) (*player, error) {
	kind := tts.AudioContextAuto
	if mock {
		kind = tts.AudioContextMock
	}
	device, err := tts.NewAudioContext(kind, audioFormat())
	if err != nil {
		return nil, fmt.Errorf("unable to open audio: %w", err)
	}

	opts := []tts.ControllerOption{tts.WithFormat(audioFormat())}
	var cache *store.MemoryCache
	if mb := viper.GetInt64("audio.cache_mb"); mb > 0 {
		cache = store.NewMemoryCache(mb << 20)
		opts = append(opts, tts.WithPayloadCache(cache))
	}
	c, err := tts.NewController(a.gemini, device, opts...)
	if err != nil {
		_ = device.Close()
		return nil, err
	}
	return &player{Controller: c, device: device, cache: cache}, nil
}

// Close stops playback and releases the device. It is safe to call twice.
func (p *player) Close() error {
	var err error
	p.once.Do(func() {
		if p.cache != nil {
			s := p.cache.Stats()
			log.Debug("Speech cache",
				"items", s.ItemCount,
				"size", s.Size,
				"hit_rate", s.HitRate,
				"evictions", s.Evictions)
		}
		err = errors.Join(p.Controller.Close(), p.device.Close())
	})
	return err
}
