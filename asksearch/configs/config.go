package configs

import (
	_ "embed"
	"fmt"
	"strings"

	"asksearch/asksearch/utils/logging"

	"github.com/magiconair/properties"
	"go.uber.org/zap"
)

//go:embed search.properties
var defaultProperties string

const (
	DefaultModel     = "deepseek/deepseek-r1-0528:free"
	DefaultTemp      = 0.7
	DefaultMaxTokens = 1000
)

type SearchConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int64
	Referer     string
	Title       string
}

// LoadSearchConfig reads the embedded search.properties, or path when it is set.
func LoadSearchConfig(path string) (*SearchConfig, error) {
	var (
		props *properties.Properties
		err   error
	)
	if path != "" {
		props, err = properties.LoadFile(path, properties.UTF8)
	} else {
		props, err = properties.LoadString(defaultProperties)
	}
	if err != nil {
		logging.ErrorLogger.Error("Search config load error", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("load search properties: %w", err)
	}

	cfg := &SearchConfig{
		Model:       strings.TrimSpace(props.GetString("model", DefaultModel)),
		Temperature: props.GetFloat64("temperature", DefaultTemp),
		MaxTokens:   int64(props.GetInt("max_tokens", DefaultMaxTokens)),
		Referer:     strings.TrimSpace(props.GetString("referer", "")),
		Title:       strings.TrimSpace(props.GetString("title", "")),
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		return nil, fmt.Errorf("temperature %v out of range [0, 2]", cfg.Temperature)
	}

	logging.AppLogger.Info("Search config loaded",
		zap.String("model", cfg.Model),
		zap.Float64("temperature", cfg.Temperature),
		zap.Int64("max_tokens", cfg.MaxTokens),
	)
	return cfg, nil
}

// Headers returns the attribution headers sent with every upstream request.
func (c *SearchConfig) Headers() map[string]string {
	headers := map[string]string{}
	if c.Referer != "" {
		headers["HTTP-Referer"] = c.Referer
	}
	if c.Title != "" {
		headers["X-Title"] = c.Title
	}
	return headers
}
