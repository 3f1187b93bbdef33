package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "mdsite.yaml"

type Config struct {
	Content  string `yaml:"content"`  // directory with markdown files
	Static   string `yaml:"static"`   // directory copied into the public dir as is
	Template string `yaml:"template"` // path to the page template
	Public   string `yaml:"public"`   // output directory
	LogPath  string `yaml:"log"`
	Workers  int    `yaml:"workers"`
	// MaxFileSizeKB limits the size of markdown files that are converted
	MaxFileSizeKB int64         `yaml:"max_file_size_kb"`
	Interval      time.Duration `yaml:"interval"` // poll interval in watch mode
}

func Default() Config {
	return Config{
		Content:       "content",
		Static:        "static",
		Template:      "template.html",
		Public:        "public",
		Workers:       runtime.GOMAXPROCS(0),
		MaxFileSizeKB: 1024,
		Interval:      500 * time.Millisecond,
	}
}

// Load reads configuration from the yaml file and environment variables.
// A missing file isn't an error, defaults are used instead.
func Load(path string) (Config, error) {
	// variables from .env next to the config file don't override the ones already set
	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))

	cfg := Default()

	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, err
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	strs := map[string]*string{
		"MDSITE_CONTENT":  &c.Content,
		"MDSITE_STATIC":   &c.Static,
		"MDSITE_TEMPLATE": &c.Template,
		"MDSITE_PUBLIC":   &c.Public,
		"MDSITE_LOG":      &c.LogPath,
	}
	for key, ptr := range strs {
		if v := os.Getenv(key); v != "" {
			*ptr = v
		}
	}
	if v := os.Getenv("MDSITE_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MDSITE_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("MDSITE_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("MDSITE_INTERVAL: %w", err)
		}
		c.Interval = d
	}
	return nil
}

// Validate checks required fields and fixes out of range values
func (c *Config) Validate() error {
	if c.Content == "" {
		return errors.New("content directory is not set")
	}
	if c.Public == "" {
		return errors.New("public directory is not set")
	}
	if c.Template == "" {
		return errors.New("template is not set")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.MaxFileSizeKB <= 0 {
		c.MaxFileSizeKB = Default().MaxFileSizeKB
	}
	return nil
}
