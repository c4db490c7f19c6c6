// Package main provides the entry point for the oracao CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/feeoracao/oracao/internal/share"
	"github.com/feeoracao/oracao/internal/store"
	"github.com/feeoracao/oracao/ui"
	"github.com/feeoracao/oracao/utils"
)

const appName = "oracao"

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	configFile string
	style      string
	width      uint
	mouse      bool

	rootCmd = &cobra.Command{
		Use:   "oracao",
		Short: "Prayers, rosaries and a prayer journal in your terminal",
		Long: paragraph(
			fmt.Sprintf("\nPrayers, rosaries and a prayer journal, %s.", keyword("read aloud")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context())
		},
	}
)

// validateStyle checks if the style is a default style, if not, checks that
// the custom style exists.
func validateStyle(style string) error {
	if style != "auto" && styles.DefaultStyles[style] == nil {
		style = utils.ExpandPath(style)
		if _, err := os.Stat(style); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("specified style does not exist: %s", style)
		} else if err != nil {
			return fmt.Errorf("unable to stat file: %w", err)
		}
	}
	return nil
}

func validateOptions(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		viper.SetConfigFile(utils.ExpandPath(configFile))
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
	}

	// grab config values from Viper
	width = viper.GetUint("width")
	mouse = viper.GetBool("mouse")

	if err := validateAudioConfig(); err != nil {
		return fmt.Errorf("audio config validation failed: %w", err)
	}
	if err := validateGeminiConfig(); err != nil {
		return fmt.Errorf("gemini config validation failed: %w", err)
	}

	// validate the glamour style
	style = viper.GetString("style")
	if err := validateStyle(style); err != nil {
		return err
	}

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	// We want to use a special no-TTY style, when stdout is not a terminal
	// and there was no specific style passed by arg
	if !isTerminal && !cmd.Flags().Changed("style") {
		style = "notty"
	}

	// Detect terminal width
	if !cmd.Flags().Changed("width") { //nolint:nestif
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}

			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func validateAudioConfig() error {
	// older config files carry the speech format; only its value is accepted
	format := audioFormat()
	if viper.IsSet("audio.sample_rate") && viper.GetInt("audio.sample_rate") != format.SampleRate {
		return fmt.Errorf("sample_rate must be %d Hz, the rate of the speech service", format.SampleRate)
	}
	if viper.IsSet("audio.channels") && viper.GetInt("audio.channels") != format.Channels {
		return fmt.Errorf("channels must be %d, the layout of the speech service", format.Channels)
	}

	cacheMB := viper.GetInt("audio.cache_mb")
	if cacheMB < 0 || cacheMB > 4096 {
		return fmt.Errorf("cache_mb must be between 0 and 4096, got %d", cacheMB)
	}
	return nil
}

func validateGeminiConfig() error {
	if rpm := viper.GetInt("gemini.requests_per_minute"); rpm < 1 {
		return fmt.Errorf("requests_per_minute must be positive, got %d", rpm)
	}
	if timeout := viper.GetDuration("gemini.timeout"); timeout < time.Second {
		return fmt.Errorf("timeout must be at least 1s, got %s", timeout)
	}

	// the data dir must be creatable before anything is stored
	if dir := viper.GetString("data_dir"); dir != "" {
		parent := filepath.Dir(utils.ExpandPath(dir))
		if _, err := os.Stat(parent); errors.Is(err, fs.ErrNotExist) {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return fmt.Errorf("data_dir parent %q cannot be created: %w", parent, err)
			}
		}
	}
	return nil
}

// render writes markdown to w with the configured glamour style.
func render(w io.Writer, markdown string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		utils.GlamourStyle(style),
		glamour.WithWordWrap(int(width)), //nolint:gosec
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return fmt.Errorf("unable to create renderer: %w", err)
	}

	out, err := r.Render(markdown)
	if err != nil {
		return fmt.Errorf("unable to render markdown: %w", err)
	}
	if _, err = fmt.Fprint(w, out); err != nil {
		return fmt.Errorf("unable to write to writer: %w", err)
	}
	return nil
}

func runTUI(ctx context.Context) error {
	// Read environment to get debugging stuff
	cfg, err := env.ParseAs[ui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	// use style set in env, or auto if unset
	if err := validateStyle(cfg.GlamourStyle); err != nil {
		cfg.GlamourStyle = style
	}

	cfg.GlamourMaxWidth = width
	cfg.EnableMouse = mouse
	cfg.MockAudio = cfg.MockAudio || viper.GetBool("audio.mock")

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck

	svc := ui.Services{
		Catalog:   a.catalog,
		Journal:   a.journal,
		Content:   a.gemini,
		Icons:     a.icons,
		Clipboard: share.SystemClipboard{},
	}

	p, err := a.newPlayer(cfg.MockAudio)
	if err != nil {
		log.Error("Audio unavailable", "error", err)
	} else {
		defer p.Close() //nolint:errcheck
		svc.Audio = p
	}

	w, err := store.Watch(a.store, store.KeyJournal, store.KeyAppIcon, store.KeySupportIcon)
	if err != nil {
		log.Warn("Not watching the data directory", "error", err)
	} else {
		defer w.Close() //nolint:errcheck
		svc.StoreEvents = w.Events()
	}

	// Run Bubble Tea program
	if _, err := ui.NewProgram(ctx, cfg, svc).Run(); err != nil {
		return fmt.Errorf("unable to run tui program: %w", err)
	}

	return nil
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().StringVarP(&style, "style", "s", styles.AutoStyle, "style name or JSON path")
	rootCmd.PersistentFlags().UintVarP(&width, "width", "w", 0, "word-wrap at width (set to 0 to disable)")
	rootCmd.Flags().BoolVarP(&mouse, "mouse", "m", false, "enable mouse wheel")
	_ = rootCmd.Flags().MarkHidden("mouse")
	rootCmd.Flags().Bool("mock-audio", false, "simulate playback instead of using the sound card")

	// Config bindings
	_ = viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	_ = viper.BindPFlag("width", rootCmd.PersistentFlags().Lookup("width"))
	_ = viper.BindPFlag("mouse", rootCmd.Flags().Lookup("mouse"))
	_ = viper.BindPFlag("audio.mock", rootCmd.Flags().Lookup("mock-audio"))

	viper.SetDefault("style", styles.AutoStyle)
	viper.SetDefault("width", 0)
	viper.SetDefault("data_dir", "")

	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.requests_per_minute", 30)
	viper.SetDefault("gemini.timeout", "60s")

	viper.SetDefault("audio.mock", false)
	viper.SetDefault("audio.cache_mb", 64)

	rootCmd.AddCommand(
		configCmd, manCmd,
		prayersCmd, prayerCmd, rosariesCmd, rosaryCmd,
		liturgyCmd, reflectCmd, speakCmd,
		journalCmd, iconCmd,
	)
}

func tryLoadConfigFromDefaultPlaces() {
	// a .env next to the binary may carry GEMINI_API_KEY
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Could not parse .env file", "err", err)
	}

	scope := gap.NewScope(gap.User, appName)
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not load find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, appName)}, dirs...)
	}

	if c := os.Getenv("ORACAO_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName(appName)
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix(appName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", used)
		return
	}

	configFile = filepath.Join(dirs[0], appName+".yml")
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
		return
	}
	viper.SetConfigFile(configFile)
}
