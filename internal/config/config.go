// Package config loads gridnav settings from YAML or TOML files with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/paulmach/orb"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full gridnav configuration.
type Config struct {
	Grid      GridConfig      `json:"grid" yaml:"grid" toml:"grid"`
	Obstacles ObstacleConfig  `json:"obstacles" yaml:"obstacles" toml:"obstacles"`
	Search    SearchConfig    `json:"search" yaml:"search" toml:"search"`
	Smoothing SmoothingConfig `json:"smoothing" yaml:"smoothing" toml:"smoothing"`
	Server    ServerConfig    `json:"server" yaml:"server" toml:"server"`
	Log       LogConfig       `json:"log" yaml:"log" toml:"log"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry" toml:"telemetry"`
}

// GridConfig describes the navigation grid.
type GridConfig struct {
	Width    int        `json:"width" yaml:"width" toml:"width"`
	Height   int        `json:"height" yaml:"height" toml:"height"`
	CellSize float64    `json:"cell_size" yaml:"cell_size" toml:"cell_size"`
	Origin   [2]float64 `json:"origin" yaml:"origin" toml:"origin"`
	Diagonal bool       `json:"diagonal" yaml:"diagonal" toml:"diagonal"`
	// Blocked lists cell coordinates as [x, y] pairs.
	Blocked [][2]int `json:"blocked" yaml:"blocked" toml:"blocked"`
}

// ObstacleConfig selects obstacle sources and cleanup.
type ObstacleConfig struct {
	// Files are GeoJSON files or directories holding *.geojson files.
	Files          []string `json:"files" yaml:"files" toml:"files"`
	SimplifyEps    float64  `json:"simplify_epsilon" yaml:"simplify_epsilon" toml:"simplify_epsilon"`
	PruneContained bool     `json:"prune_contained" yaml:"prune_contained" toml:"prune_contained"`
}

// SearchConfig selects the default strategy.
type SearchConfig struct {
	Algorithm string `json:"algorithm" yaml:"algorithm" toml:"algorithm"`
	Heuristic string `json:"heuristic" yaml:"heuristic" toml:"heuristic"`
}

// SmoothingConfig controls the path smoother.
type SmoothingConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled" toml:"enabled"`
	Radius  float64 `json:"radius" yaml:"radius" toml:"radius"`
}

// ServerConfig controls the HTTP service.
type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr" toml:"addr"`
	// GraphFile is loaded on startup when present and written after builds.
	GraphFile string `json:"graph_file" yaml:"graph_file" toml:"graph_file"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Format string `json:"format" yaml:"format" toml:"format"`
	Level  string `json:"level" yaml:"level" toml:"level"`
}

// TelemetryConfig controls metrics export.
type TelemetryConfig struct {
	// MetricExporter is "prometheus" or "none".
	MetricExporter string `json:"metric_exporter" yaml:"metric_exporter" toml:"metric_exporter"`
	ServiceName    string `json:"service_name" yaml:"service_name" toml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Width:    64,
			Height:   64,
			CellSize: 1,
			Diagonal: true,
		},
		Obstacles: ObstacleConfig{
			PruneContained: true,
		},
		Search: SearchConfig{
			Algorithm: search.AStar.String(),
			Heuristic: "octile",
		},
		Smoothing: SmoothingConfig{
			Enabled: true,
			Radius:  0.25,
		},
		Server: ServerConfig{
			Addr:      ":8080",
			GraphFile: "graph.json",
		},
		Log: LogConfig{
			Format: "text",
			Level:  "info",
		},
		Telemetry: TelemetryConfig{
			MetricExporter: "prometheus",
			ServiceName:    "gridnav",
		},
	}
}

// Load reads path on top of the defaults, applies GRIDNAV_* environment
// overrides and validates the result. An empty path loads defaults only.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, filepath.Ext(path))
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("GRIDNAV_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("GRIDNAV_GRAPH_FILE"); v != "" {
		cfg.Server.GraphFile = v
	}
	if v := os.Getenv("GRIDNAV_ALGORITHM"); v != "" {
		cfg.Search.Algorithm = v
	}
	if v := os.Getenv("GRIDNAV_HEURISTIC"); v != "" {
		cfg.Search.Heuristic = v
	}
	if v := os.Getenv("GRIDNAV_SMOOTHING"); v != "" {
		cfg.Smoothing.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("GRIDNAV_SMOOTHING_RADIUS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Smoothing.Radius = f
		}
	}
	if v := os.Getenv("GRIDNAV_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GRIDNAV_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("GRIDNAV_METRICS_EXPORTER"); v != "" {
		cfg.Telemetry.MetricExporter = v
	}
}

// Validate checks ranges and names. All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid size %dx%d must be positive", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid cell_size %g must be positive", c.Grid.CellSize))
	}
	for _, b := range c.Grid.Blocked {
		if b[0] < 0 || b[1] < 0 || b[0] >= c.Grid.Width || b[1] >= c.Grid.Height {
			errs = append(errs, fmt.Errorf("blocked cell %v outside grid", b))
		}
	}
	if c.Obstacles.SimplifyEps < 0 {
		errs = append(errs, fmt.Errorf("obstacles simplify_epsilon %g must not be negative", c.Obstacles.SimplifyEps))
	}
	if _, err := search.ParseStrategy(c.Search.Algorithm); err != nil {
		errs = append(errs, err)
	}
	if _, err := search.HeuristicByName(c.Search.Heuristic); err != nil {
		errs = append(errs, err)
	}
	if c.Smoothing.Radius < 0 {
		errs = append(errs, fmt.Errorf("smoothing radius %g must not be negative", c.Smoothing.Radius))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	switch c.Telemetry.MetricExporter {
	case "", "none", "prometheus":
	default:
		errs = append(errs, fmt.Errorf("unknown metric exporter %q", c.Telemetry.MetricExporter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// GridSpec converts the grid section to a graph grid spec. obstacles may be
// nil.
func (c GridConfig) GridSpec(obstacles graph.Blocker) graph.GridSpec {
	return graph.GridSpec{
		Width:     c.Width,
		Height:    c.Height,
		CellSize:  c.CellSize,
		Origin:    orb.Point(c.Origin),
		Diagonal:  c.Diagonal,
		Blocked:   c.BlockedCells(),
		Obstacles: obstacles,
	}
}

// BlockedCells returns the blocked cells as graph cells.
func (c GridConfig) BlockedCells() []graph.Cell {
	cells := make([]graph.Cell, 0, len(c.Blocked))
	for _, b := range c.Blocked {
		cells = append(cells, graph.Cell{X: b[0], Y: b[1]})
	}
	return cells
}
