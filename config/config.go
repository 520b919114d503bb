package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// EditorConfig holds the editing engine settings
type EditorConfig struct {
	Resolution      int     `json:"resolution"`   // grid unit in ticks
	Quantize        bool    `json:"quantize"`
	TicksPerCell    int     `json:"ticksPerCell"` // horizontal zoom: ticks per terminal column
	EdgeTolerance   float64 `json:"edgeTolerance"`
	DefaultVelocity int     `json:"defaultVelocity"`
	NumberOfKeys    int     `json:"numberOfKeys"`
	AutoScroll      bool    `json:"autoScroll"`
}

// MIDIConfig selects the output used for note preview and playback
type MIDIConfig struct {
	PreviewPort    string `json:"previewPort,omitempty"`
	PreviewChannel int    `json:"previewChannel"`
	PreviewMillis  int    `json:"previewMillis"`
}

type PlayerConfig struct {
	Tempo int `json:"tempo"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette          string `json:"palette,omitempty"` // .gpl path, built-in palette if empty
	VelocityLaneRows int    `json:"velocityLaneRows"`
}

// Config is the main configuration structure
type Config struct {
	Editor EditorConfig `json:"editor"`
	MIDI   MIDIConfig   `json:"midi"`
	Player PlayerConfig `json:"player"`
	UI     UIConfig     `json:"ui"`
	Debug  bool         `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Editor: EditorConfig{
			Resolution:      120,
			Quantize:        true,
			TicksPerCell:    120,
			EdgeTolerance:   4,
			DefaultVelocity: 100,
			NumberOfKeys:    128,
			AutoScroll:      true,
		},
		MIDI: MIDIConfig{
			PreviewMillis: 200,
		},
		Player: PlayerConfig{
			Tempo: 120,
		},
		UI: UIConfig{
			VelocityLaneRows: 4,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults, so missing keys keep their default
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fault.Wrap(err, fmsg.With("read config"))
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fault.Wrap(err,
			ftag.With(ftag.InvalidArgument),
			fmsg.WithDesc("parse config", "The config file "+path+" is not valid JSON"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the editor cannot run with
func (c *Config) Validate() error {
	e := c.Editor
	switch {
	case e.Resolution <= 0:
		return invalid("editor.resolution must be positive, got %d", e.Resolution)
	case e.TicksPerCell <= 0:
		return invalid("editor.ticksPerCell must be positive, got %d", e.TicksPerCell)
	case e.NumberOfKeys < 1 || e.NumberOfKeys > 128:
		return invalid("editor.numberOfKeys must be 1-128, got %d", e.NumberOfKeys)
	case e.EdgeTolerance < 0:
		return invalid("editor.edgeTolerance must not be negative, got %g", e.EdgeTolerance)
	case e.DefaultVelocity < 0 || e.DefaultVelocity > 127:
		return invalid("editor.defaultVelocity must be 0-127, got %d", e.DefaultVelocity)
	case c.MIDI.PreviewChannel < 0 || c.MIDI.PreviewChannel > 15:
		return invalid("midi.previewChannel must be 0-15, got %d", c.MIDI.PreviewChannel)
	case c.MIDI.PreviewMillis < 0:
		return invalid("midi.previewMillis must not be negative, got %d", c.MIDI.PreviewMillis)
	case c.Player.Tempo <= 0:
		return invalid("player.tempo must be positive, got %d", c.Player.Tempo)
	case c.UI.VelocityLaneRows < 0:
		return invalid("ui.velocityLaneRows must not be negative, got %d", c.UI.VelocityLaneRows)
	}
	return nil
}

func invalid(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return fault.New(msg, ftag.With(ftag.InvalidArgument), fmsg.WithDesc(msg, "Invalid configuration: "+msg))
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config dir"))
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.With("write config"))
	}
	return nil
}
