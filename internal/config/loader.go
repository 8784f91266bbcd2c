package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"
)

const (
	userDirName    = ".heist"
	configFileName = "config.yaml"
	localConfig    = "configs/heist.yaml"
)

// Format is a settings file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts "yaml", "yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("config: unknown format %q (want yaml or json)", s)
	}
}

// FormatForPath picks the encoding from the file extension; YAML unless .json.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a settings document into a generic mapping.
func Decode(data []byte, format Format) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("json decode: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return raw, nil
}

// Encode serializes cfg in key order.
func Encode(cfg GameConfig, format Format) ([]byte, error) {
	m := cfg.ToMap()
	if format == FormatJSON {
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json encode: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// Parse decodes data and overlays it onto the defaults.
func Parse(data []byte, format Format) (GameConfig, error) {
	cfg := DefaultGameConfig()
	raw, err := Decode(data, format)
	if err != nil {
		return cfg, err
	}
	if err := cfg.FromMap(raw); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads a single settings file. Keys the file omits keep their
// default values.
func LoadFile(path string) (GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultGameConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return DefaultGameConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically, creating parent directories.
func Save(path string, cfg GameConfig) error {
	data, err := Encode(cfg, FormatForPath(path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("config: create pending file: %w", err)
	}
	defer pending.Cleanup() //nolint:errcheck // no-op once committed

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("config: replace %s: %w", path, err)
	}
	return nil
}

// UserConfigPath returns ~/.heist/config.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, userDirName, configFileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Loader resolves the settings file and remembers which one it used.
type Loader struct {
	customPath  string
	searchPaths []string
	logger      *log.Logger

	mu     sync.Mutex
	source string
}

// NewLoader creates a loader. A non-empty customPath must exist; otherwise
// the user and local config locations are tried before the embedded default.
func NewLoader(customPath string, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	search := []string{}
	if p := UserConfigPath(); p != "" {
		search = append(search, p)
	}
	search = append(search, localConfig)
	return &Loader{
		customPath:  customPath,
		searchPaths: search,
		logger:      logger,
	}
}

// Load resolves the configuration.
// Search order: customPath -> ~/.heist/config.yaml -> ./configs/heist.yaml -> embedded default
// Only a missing file moves the search on; a file that exists but cannot be
// read or parsed is an error.
func (l *Loader) Load() (GameConfig, error) {
	if l.customPath != "" {
		path, err := ExpandHome(l.customPath)
		if err != nil {
			return DefaultGameConfig(), err
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return cfg, err
		}
		l.setSource(path)
		return cfg, nil
	}

	for _, path := range l.searchPaths {
		cfg, err := LoadFile(path)
		if err == nil {
			l.setSource(path)
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return cfg, err
		}
		l.logger.Debug("config not found", "path", path)
	}

	cfg, err := Parse(defaultHeistYAML, FormatYAML)
	if err != nil {
		cfg = DefaultGameConfig()
	}
	l.setSource("")
	return cfg, nil
}

// Source returns the file the last Load used, or "" for the embedded default.
func (l *Loader) Source() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source
}

// WritePath is where changes should be saved: the custom path, else the
// file last loaded, else the user config path.
func (l *Loader) WritePath() string {
	if l.customPath != "" {
		if p, err := ExpandHome(l.customPath); err == nil {
			return p
		}
		return l.customPath
	}
	if src := l.Source(); src != "" {
		return src
	}
	return UserConfigPath()
}

func (l *Loader) setSource(path string) {
	l.mu.Lock()
	l.source = path
	l.mu.Unlock()
}
