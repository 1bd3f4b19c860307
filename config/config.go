package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config настройки бота
type Config struct {
	TelegramToken string        `yaml:"telegram_token"`
	CameraDevice  int           `yaml:"camera_device"`
	AnalysisDelay time.Duration `yaml:"analysis_delay"`
	MarkerCount   int           `yaml:"marker_count"`
	MarkerRadius  float64       `yaml:"marker_radius"`
	MarkerColor   string        `yaml:"marker_color"`
	MarkerWidth   float64       `yaml:"marker_width"`
	RenderBackend string        `yaml:"render_backend"`
	LogLevel      string        `yaml:"log_level"`
}

// Бэкенды отрисовки.
const (
	BackendRaster = "raster"
	BackendGoCV   = "gocv"
)

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		CameraDevice:  0,
		AnalysisDelay: 2 * time.Second,
		MarkerCount:   5,
		MarkerRadius:  20,
		MarkerColor:   "#ff0000",
		MarkerWidth:   3,
		RenderBackend: BackendRaster,
		LogLevel:      "info",
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile накладывает YAML-файл поверх значений по умолчанию
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// applyEnv переменные окружения имеют приоритет над файлом
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("TELEGRAM_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := getenv("MARKER_COLOR"); v != "" {
		c.MarkerColor = v
	}
	if v := getenv("RENDER_BACKEND"); v != "" {
		c.RenderBackend = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	var err error
	if v := getenv("CAMERA_DEVICE"); v != "" {
		if c.CameraDevice, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("CAMERA_DEVICE: %w", err)
		}
	}
	if v := getenv("ANALYSIS_DELAY"); v != "" {
		if c.AnalysisDelay, err = time.ParseDuration(v); err != nil {
			return fmt.Errorf("ANALYSIS_DELAY: %w", err)
		}
	}
	if v := getenv("MARKER_COUNT"); v != "" {
		if c.MarkerCount, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("MARKER_COUNT: %w", err)
		}
	}
	if v := getenv("MARKER_RADIUS"); v != "" {
		if c.MarkerRadius, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("MARKER_RADIUS: %w", err)
		}
	}
	if v := getenv("MARKER_WIDTH"); v != "" {
		if c.MarkerWidth, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("MARKER_WIDTH: %w", err)
		}
	}

	return nil
}

// Validate проверяет обязательные поля и диапазоны
func (c *Config) Validate() error {
	var errs []error
	if c.TelegramToken == "" {
		errs = append(errs, errors.New("TELEGRAM_TOKEN is required"))
	}
	if c.AnalysisDelay < 0 {
		errs = append(errs, errors.New("analysis delay must not be negative"))
	}
	if c.MarkerCount < 0 {
		errs = append(errs, errors.New("marker count must not be negative"))
	}
	if c.MarkerRadius <= 0 {
		errs = append(errs, errors.New("marker radius must be positive"))
	}
	if c.MarkerWidth <= 0 {
		errs = append(errs, errors.New("marker width must be positive"))
	}
	if c.RenderBackend != BackendRaster && c.RenderBackend != BackendGoCV {
		errs = append(errs, fmt.Errorf("unknown render backend %q", c.RenderBackend))
	}
	return errors.Join(errs...)
}
