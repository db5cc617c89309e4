package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"
	DefaultEnvFile    = ".env"

	OpenMeteoAPI      = "open-meteo"
	OpenWeatherMapAPI = "openweathermap"
)

type Config struct {
	App     AppConfig     `yaml:"app"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Weather WeatherConfig `yaml:"weather"`
	Sentry  SentryConfig  `yaml:"sentry"`

	// GeocoderAPIKey overrides the api_key of the openweathermap entry.
	GeocoderAPIKey string `yaml:"-" envconfig:"OPENWEATHERMAP_API_KEY"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME"`
	Version string `yaml:"version" envconfig:"VERSION"`
	Env     string `yaml:"env" envconfig:"ENV"`
}

// ServerConfig timeouts are in seconds.
type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	AccessLog    bool   `yaml:"access_log" envconfig:"ACCESS_LOG"`
}

type LogConfig struct {
	Level string `yaml:"level" envconfig:"LEVEL"`
	// Format is "json" or "console"; it only affects stdout.
	Format string `yaml:"format" envconfig:"FORMAT"`
}

type WeatherConfig struct {
	DefaultLocation string `yaml:"default_location" envconfig:"DEFAULT_LOCATION"`
	DefaultCountry  string `yaml:"default_country" envconfig:"DEFAULT_COUNTRY"`
	// RequestTimeout bounds one whole search cycle, in seconds.
	RequestTimeout int                `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
	ForecastDays   int                `yaml:"forecast_days" envconfig:"FORECAST_DAYS"`
	APIs           []WeatherAPIConfig `yaml:"apis" ignored:"true"`
}

type WeatherAPIConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	// Timeout is the per-request HTTP timeout in seconds.
	Timeout int `yaml:"timeout"`
	// RateLimit is requests per second; zero disables throttling.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	Burst     int     `yaml:"burst,omitempty"`
	// CacheTTL is in seconds; zero disables caching.
	CacheTTL int `yaml:"cache_ttl,omitempty"`
	// Limit is the number of geocoder candidates requested.
	Limit int `yaml:"limit,omitempty"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// ConfigProvider loads and validates configuration.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider reads an optional .env file, then an optional YAML
// file, then environment variables, each layer overriding the previous one.
type FileConfigProvider struct {
	path    string
	envFile string
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	return &FileConfigProvider{
		path:    path,
		envFile: DefaultEnvFile,
	}
}

func (p *FileConfigProvider) WithEnvFile(envFile string) *FileConfigProvider {
	p.envFile = envFile
	return p
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-check",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
			AccessLog:    true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Weather: WeatherConfig{
			DefaultLocation: "Kolkata",
			RequestTimeout:  15,
			ForecastDays:    1,
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := defaultConfig()

	if p.envFile != "" {
		// a missing .env is normal outside local development
		_ = godotenv.Load(p.envFile)
	}

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	if key := strings.TrimSpace(cnf.GeocoderAPIKey); key != "" {
		for i := range cnf.Weather.APIs {
			if cnf.Weather.APIs[i].Name == OpenWeatherMapAPI {
				cnf.Weather.APIs[i].APIKey = key
			}
		}
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(cnf *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, cnf); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

func (p *FileConfigProvider) Validate(cnf *Config) error {
	var problems []string

	if strings.TrimSpace(cnf.App.Name) == "" {
		problems = append(problems, "app.name is required")
	}
	if strings.TrimSpace(cnf.Server.Port) == "" {
		problems = append(problems, "server.port is required")
	}
	if cnf.Server.ReadTimeout <= 0 || cnf.Server.WriteTimeout <= 0 || cnf.Server.IdleTimeout <= 0 {
		problems = append(problems, "server timeouts must be positive")
	}
	switch strings.ToLower(cnf.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not supported", cnf.Log.Level))
	}
	switch cnf.Log.Format {
	case "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("log.format %q must be json or console", cnf.Log.Format))
	}
	if strings.TrimSpace(cnf.Weather.DefaultLocation) == "" {
		problems = append(problems, "weather.default_location is required")
	}
	if cnf.Weather.RequestTimeout <= 0 {
		problems = append(problems, "weather.request_timeout must be positive")
	}
	if cnf.Weather.ForecastDays < 0 || cnf.Weather.ForecastDays > 16 {
		problems = append(problems, "weather.forecast_days must be between 0 and 16")
	}

	for i, api := range cnf.Weather.APIs {
		switch api.Name {
		case OpenMeteoAPI:
		case OpenWeatherMapAPI:
			if strings.TrimSpace(api.APIKey) == "" {
				problems = append(problems, fmt.Sprintf("weather.apis[%d] (%s): api_key is required", i, api.Name))
			}
		default:
			problems = append(problems, fmt.Sprintf("weather.apis[%d]: unknown api %q", i, api.Name))
		}
		if api.Timeout <= 0 {
			problems = append(problems, fmt.Sprintf("weather.apis[%d] (%s): timeout must be positive", i, api.Name))
		}
		if api.RateLimit < 0 || api.Burst < 0 || api.CacheTTL < 0 || api.Limit < 0 {
			problems = append(problems, fmt.Sprintf("weather.apis[%d] (%s): limits must not be negative", i, api.Name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}

	return nil
}

// NewConfig loads configuration from CONFIG_PATH, or config/config.yaml.
func NewConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	return NewConfigWithProvider(NewFileConfigProvider(path))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}
	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}
	return cnf, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) GetWeatherAPIByName(name string) (*WeatherAPIConfig, bool) {
	for i := range c.Weather.APIs {
		if c.Weather.APIs[i].Name == name {
			return &c.Weather.APIs[i], true
		}
	}
	return nil, false
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (s ServerConfig) IdleTimeoutDuration() time.Duration {
	return time.Duration(s.IdleTimeout) * time.Second
}

func (w WeatherConfig) RequestTimeoutDuration() time.Duration {
	return time.Duration(w.RequestTimeout) * time.Second
}

func (a WeatherAPIConfig) TimeoutDuration() time.Duration {
	return time.Duration(a.Timeout) * time.Second
}

func (a WeatherAPIConfig) CacheTTLDuration() time.Duration {
	return time.Duration(a.CacheTTL) * time.Second
}
