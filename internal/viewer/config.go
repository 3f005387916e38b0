package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/wandb/tschart/internal/observability"
	"github.com/wandb/tschart/internal/surface"
)

const (
	envConfigDir      = "TSCHART_CONFIG_DIR"
	viewerConfigDir   = "tschart"
	viewerConfigName  = "config.json"
	DefaultTimeZone   = "UTC"
	DefaultGridColor  = "#bbb"
	DefaultLabelColor = "#96a2aa"

	// Frame interval bounds, in milliseconds.
	MinFrameIntervalMs, MaxFrameIntervalMs = 8, 1000

	DefaultFrameIntervalMs = 16
)

// Config stores the viewer's persisted settings.
type Config struct {
	// FrameIntervalMs is how often pending repaints are flushed.
	FrameIntervalMs int `json:"frame_interval_ms"`

	// TimeZone is the IANA zone x-axis dates are printed in.
	TimeZone string `json:"time_zone"`

	GridColor  string `json:"grid_color"`
	LabelColor string `json:"label_color"`

	// ShowTooltip toggles the hover tooltip.
	ShowTooltip bool `json:"show_tooltip"`
}

func defaultConfig() Config {
	return Config{
		FrameIntervalMs: DefaultFrameIntervalMs,
		TimeZone:        DefaultTimeZone,
		GridColor:       DefaultGridColor,
		LabelColor:      DefaultLabelColor,
		ShowTooltip:     true,
	}
}

// FrameInterval returns the frame interval as a duration.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Location resolves TimeZone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ConfigManager manages the viewer configuration with thread-safe access
// and automatic persistence.
//
// All setter methods save changes immediately.
type ConfigManager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	config Config
	logger *observability.CoreLogger
}

// DefaultConfigPath returns $TSCHART_CONFIG_DIR/config.json, or the file
// under the user config directory.
func DefaultConfigPath(getenv func(string) string) (string, error) {
	if dir := getenv(envConfigDir); dir != "" {
		return filepath.Join(dir, viewerConfigName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, viewerConfigDir, viewerConfigName), nil
}

func NewConfigManager(
	fsys afero.Fs,
	path string,
	logger *observability.CoreLogger,
) *ConfigManager {
	cm := &ConfigManager{
		fs:     fsys,
		path:   path,
		config: defaultConfig(),
		logger: logger,
	}
	if err := cm.loadOrCreateConfig(); err != nil {
		cm.logger.Error(fmt.Sprintf("config: error loading or creating: %v", err))
	}
	return cm
}

// loadOrCreateConfig loads the configuration or stores and uses defaults.
func (cm *ConfigManager) loadOrCreateConfig() error {
	data, err := afero.ReadFile(cm.fs, cm.path)

	if errors.Is(err, fs.ErrNotExist) {
		if dir := filepath.Dir(cm.path); dir != "" {
			_ = cm.fs.MkdirAll(dir, 0o755)
		}
		return cm.save()
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &cm.config); err != nil {
		return err
	}

	cm.normalizeConfig()
	return nil
}

// normalizeConfig ensures all config values are within valid ranges.
func (cm *ConfigManager) normalizeConfig() {
	if cm.config.FrameIntervalMs == 0 {
		cm.config.FrameIntervalMs = DefaultFrameIntervalMs
	}
	cm.config.FrameIntervalMs = clamp(
		cm.config.FrameIntervalMs, MinFrameIntervalMs, MaxFrameIntervalMs)

	if _, err := time.LoadLocation(cm.config.TimeZone); err != nil || cm.config.TimeZone == "" {
		cm.config.TimeZone = DefaultTimeZone
	}
	if _, err := surface.ParseColor(cm.config.GridColor); err != nil {
		cm.config.GridColor = DefaultGridColor
	}
	if _, err := surface.ParseColor(cm.config.LabelColor); err != nil {
		cm.config.LabelColor = DefaultLabelColor
	}
}

func clamp(val, minimum, maximum int) int {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}

// save writes the configuration atomically via a temp file and rename.
//
// Must be called while holding the lock.
func (cm *ConfigManager) save() error {
	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return err
	}

	tempPath := cm.path + ".tmp"
	if err := afero.WriteFile(cm.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("config: write temp file: %v", err)
	}
	if err := cm.fs.Rename(tempPath, cm.path); err != nil {
		return fmt.Errorf("config: rename temp file: %v", err)
	}
	return nil
}

// Path returns the config file path.
func (cm *ConfigManager) Path() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.path
}

// Snapshot returns a copy of the current config.
func (cm *ConfigManager) Snapshot() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

func (cm *ConfigManager) FrameInterval() time.Duration {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.FrameInterval()
}

func (cm *ConfigManager) SetFrameIntervalMs(ms int) error {
	if ms < MinFrameIntervalMs || ms > MaxFrameIntervalMs {
		return fmt.Errorf(
			"frame interval must be between %d and %d ms, got %d",
			MinFrameIntervalMs, MaxFrameIntervalMs, ms)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.FrameIntervalMs = ms
	return cm.save()
}

func (cm *ConfigManager) SetTimeZone(name string) error {
	if _, err := time.LoadLocation(name); err != nil || name == "" {
		return fmt.Errorf("unknown time zone: %q", name)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.TimeZone = name
	return cm.save()
}

func (cm *ConfigManager) ShowTooltip() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.ShowTooltip
}

// ToggleTooltip flips the tooltip setting and returns the new value.
func (cm *ConfigManager) ToggleTooltip() (bool, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.ShowTooltip = !cm.config.ShowTooltip
	return cm.config.ShowTooltip, cm.save()
}

func (cm *ConfigManager) SetGridColor(hex string) error {
	if _, err := surface.ParseColor(hex); err != nil {
		return fmt.Errorf("grid color: %v", err)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.GridColor = hex
	return cm.save()
}

func (cm *ConfigManager) SetLabelColor(hex string) error {
	if _, err := surface.ParseColor(hex); err != nil {
		return fmt.Errorf("label color: %v", err)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.LabelColor = hex
	return cm.save()
}

func (cm *ConfigManager) SetShowTooltip(show bool) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.ShowTooltip = show
	return cm.save()
}

// Keys accepted by Set, in display order.
var Keys = []string{
	"frame-interval-ms",
	"time-zone",
	"grid-color",
	"label-color",
	"show-tooltip",
}

// Set parses value for the named key and persists it.
func (cm *ConfigManager) Set(key, value string) error {
	switch key {
	case "frame-interval-ms":
		ms, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("frame interval: %q is not a number", value)
		}
		return cm.SetFrameIntervalMs(ms)
	case "time-zone":
		return cm.SetTimeZone(value)
	case "grid-color":
		return cm.SetGridColor(value)
	case "label-color":
		return cm.SetLabelColor(value)
	case "show-tooltip":
		show, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show tooltip: %q is not a boolean", value)
		}
		return cm.SetShowTooltip(show)
	default:
		return fmt.Errorf("invalid config key: %s. Valid keys are: %v", key, Keys)
	}
}
