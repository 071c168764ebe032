package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"screentime/entity"
)

const (
	SourceGopsutil = "gopsutil"
	SourceWMI      = "wmi"

	ProviderHuggingFace = "huggingface"
	ProviderNone        = "none"
)

type Config struct {
	General    GeneralConfig     `toml:"general"`
	Filter     FilterConfig      `toml:"filter"`
	Categories map[string]string `toml:"categories"`
	Classifier ClassifierConfig  `toml:"classifier"`
}

type GeneralConfig struct {
	WindowDays int     `toml:"window_days"`
	BookHours  float64 `toml:"book_hours"`
	Source     string  `toml:"source"`
	Detailed   bool    `toml:"detailed"`
}

type FilterConfig struct {
	Ignore []string `toml:"ignore"`
}

type ClassifierConfig struct {
	Provider       string `toml:"provider"`
	Endpoint       string `toml:"endpoint"`
	Model          string `toml:"model"`
	TokenEnv       string `toml:"token_env"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultIgnore is the built-in list of system and noise processes.
var DefaultIgnore = []string{
	"svchost.exe", "RuntimeBroker.exe", "dllhost.exe",
	"SearchIndexer.exe", "conhost.exe", "LockApp.exe",
	"wlanext.exe", "unsecapp.exe", "WmiPrvSE.exe", "lsass.exe",
	"csrss.exe", "smss.exe", "wininit.exe", "winlogon.exe",
	"System Idle Process", "explorer.exe", "screentime.exe", "screentime",
}

// DefaultCategories maps well-known executables to category labels.
var DefaultCategories = map[string]string{
	"chrome.exe":             "Navegador",
	"firefox.exe":            "Navegador",
	"msedge.exe":             "Navegador",
	"opera.exe":              "Navegador",
	"brave.exe":              "Navegador",
	"Discord.exe":            "Comunicação",
	"Slack.exe":              "Comunicação",
	"Teams.exe":              "Comunicação",
	"ms-teams.exe":           "Comunicação",
	"Zoom.exe":               "Comunicação",
	"WhatsApp.exe":           "Comunicação",
	"Telegram.exe":           "Comunicação",
	"OUTLOOK.EXE":            "Comunicação",
	"steam.exe":              "Jogos",
	"EpicGamesLauncher.exe":  "Jogos",
	"Battle.net.exe":         "Jogos",
	"RiotClientServices.exe": "Jogos",
	"WINWORD.EXE":            "Produtividade",
	"EXCEL.EXE":              "Produtividade",
	"POWERPNT.EXE":           "Produtividade",
	"Code.exe":               "Produtividade",
	"notepad.exe":            "Produtividade",
	"Notion.exe":             "Produtividade",
	"Spotify.exe":            "Entretenimento",
	"vlc.exe":                "Entretenimento",
	"Netflix.exe":            "Entretenimento",
}

func DefaultConfig() Config {
	categories := make(map[string]string, len(DefaultCategories))
	for k, v := range DefaultCategories {
		categories[k] = v
	}
	return Config{
		General: GeneralConfig{
			WindowDays: 7,
			BookHours:  10,
			Source:     SourceGopsutil,
		},
		Filter: FilterConfig{
			Ignore: append([]string(nil), DefaultIgnore...),
		},
		Categories: categories,
		Classifier: ClassifierConfig{
			Provider:       ProviderHuggingFace,
			Model:          "facebook/bart-large-mnli",
			TokenEnv:       "HF_TOKEN",
			TimeoutSeconds: 30,
		},
	}
}

func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "screentime", "config.toml")
}

// Load overlays the file at path on the defaults. A missing file is not an error.
// Entries in [categories] are added to the built-in table.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // use defaults
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.General.WindowDays <= 0 {
		return fmt.Errorf("general.window_days must be positive, got %d", c.General.WindowDays)
	}
	if c.General.BookHours <= 0 {
		return fmt.Errorf("general.book_hours must be positive, got %g", c.General.BookHours)
	}
	switch c.General.Source {
	case SourceGopsutil, SourceWMI:
	default:
		return fmt.Errorf("general.source: unknown source %q", c.General.Source)
	}
	switch c.Classifier.Provider {
	case ProviderHuggingFace, ProviderNone:
	default:
		return fmt.Errorf("classifier.provider: unknown provider %q", c.Classifier.Provider)
	}
	if c.Classifier.TimeoutSeconds <= 0 {
		return fmt.Errorf("classifier.timeout_seconds must be positive, got %d", c.Classifier.TimeoutSeconds)
	}
	_, err := c.CategoryTable()
	return err
}

// CategoryTable converts the label strings into categories.
func (c Config) CategoryTable() (map[string]entity.Category, error) {
	table := make(map[string]entity.Category, len(c.Categories))
	for app, label := range c.Categories {
		cat, ok := entity.ParseCategory(label)
		if !ok {
			return nil, fmt.Errorf("categories.%q: unknown label %q (want one of %v)", app, label, entity.Labels())
		}
		table[app] = cat
	}
	return table, nil
}

// Token reads the classifier token from the configured environment variable.
func (c ClassifierConfig) Token() string {
	if c.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.TokenEnv)
}

func (c ClassifierConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
