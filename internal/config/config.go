package config

import (
	"fmt"
	"os"
	"strings"

	"rfm-segment/pkg/models"
	"rfm-segment/pkg/params"
	"rfm-segment/pkg/scoring"

	"github.com/spf13/viper"
)

// ConfigPaths sont les fichiers de configuration cherchés dans le répertoire courant.
var ConfigPaths = []string{".rfmrc.yaml", ".rfmrc.yml", ".rfmrc.json"}

// Config représente la configuration de rfm
type Config struct {
	Input      string                  `mapstructure:"input"`
	DSN        string                  `mapstructure:"dsn"`
	Table      string                  `mapstructure:"table"`
	IDColumn   string                  `mapstructure:"id_column"`
	Strategy   string                  `mapstructure:"strategy"`
	Params     string                  `mapstructure:"params"`
	Rules      map[string][]RuleConfig `mapstructure:"rules"`
	Thresholds string                  `mapstructure:"thresholds"`
	Format     string                  `mapstructure:"format"`
	Output     string                  `mapstructure:"output"`
	Lang       string                  `mapstructure:"lang"`
	Describe   bool                    `mapstructure:"describe"`
	Verbose    bool                    `mapstructure:"verbose"`
	Quantile   QuantileConfig          `mapstructure:"quantile"`
}

// RuleConfig est une règle déclarée dans le fichier de configuration
type RuleConfig struct {
	Type  string `mapstructure:"type"`
	Min   int    `mapstructure:"min"`
	Max   int    `mapstructure:"max"`
	Bound int    `mapstructure:"bound"`
	Score int    `mapstructure:"score"`
}

// QuantileConfig paramètre la stratégie quantile
type QuantileConfig struct {
	MaxRetries int   `mapstructure:"max_retries"`
	Seed       int64 `mapstructure:"seed"`
}

// SetDefaults enregistre les valeurs par défaut
func SetDefaults(v *viper.Viper) {
	v.SetDefault("id_column", "role_id")
	v.SetDefault("strategy", string(models.StrategyRule))
	v.SetDefault("format", "console")
	v.SetDefault("lang", "en")
	v.SetDefault("describe", false)
	v.SetDefault("verbose", false)
	v.SetDefault("quantile.max_retries", scoring.DefaultMaxRetries)
	v.SetDefault("quantile.seed", 0)
}

// ReadConfigFile lit path, ou le premier fichier de ConfigPaths présent
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		return v.ReadInConfig()
	}
	for _, p := range ConfigPaths {
		if _, err := os.Stat(p); err == nil {
			v.SetConfigFile(p)
			return v.ReadInConfig()
		}
	}
	return nil
}

// LoadConfig charge la configuration : défauts, fichier, environnement, flags
func LoadConfig(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix("RFM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Format != "console" && cfg.Format != "json" && cfg.Format != "yaml" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'yaml'", cfg.Format)
	}
	if cfg.Strategy != string(models.StrategyRule) && cfg.Strategy != string(models.StrategyQuantile) {
		return fmt.Errorf("invalid strategy: %s. Must be 'rule' or 'quantile'", cfg.Strategy)
	}
	if cfg.Lang != "en" && cfg.Lang != "zh" {
		return fmt.Errorf("invalid lang: %s. Must be 'en' or 'zh'", cfg.Lang)
	}
	if cfg.Quantile.MaxRetries < 1 {
		return fmt.Errorf("quantile.max_retries must be at least 1")
	}
	if cfg.DSN != "" && cfg.Table == "" {
		return fmt.Errorf("table is required with dsn")
	}
	return nil
}

// ValidateSource vérifie qu'une seule source d'entrée est renseignée
func (c *Config) ValidateSource() error {
	switch {
	case c.Input == "" && c.DSN == "":
		return fmt.Errorf("an input file or a dsn is required")
	case c.Input != "" && c.DSN != "":
		return fmt.Errorf("input and dsn are mutually exclusive")
	}
	return nil
}

// RuleSets renvoie les règles du run : le fichier de paramètres s'il est
// fourni, sinon les règles du fichier de configuration.
func (c *Config) RuleSets() (map[models.Dimension]models.RuleSet, error) {
	if c.Params != "" {
		return params.ParseFile(c.Params)
	}
	out := map[models.Dimension]models.RuleSet{}
	for key, rules := range c.Rules {
		dim, ok := models.ParseDimension(strings.ToUpper(key))
		if !ok {
			return nil, fmt.Errorf("%w: rules.%s: unknown category", models.ErrConfiguration, key)
		}
		rs := out[dim]
		for i, r := range rules {
			kind, ok := params.ParseKind(r.Type)
			if !ok {
				return nil, fmt.Errorf("%w: rules.%s[%d]: unsupported type %q", models.ErrConfiguration, key, i, r.Type)
			}
			switch kind {
			case models.Interval:
				rs = rs.With(models.NewInterval(r.Min, r.Max, r.Score))
			case models.GreaterThan:
				rs = rs.With(models.NewGreaterThan(r.Bound, r.Score))
			case models.LessThan:
				rs = rs.With(models.NewLessThan(r.Bound, r.Score))
			}
		}
		out[dim] = rs
	}
	return out, nil
}

// Run construit la configuration explicite passée au moteur
func (c *Config) Run() (models.Config, error) {
	sc := models.ScoringConfig{
		Strategy: models.Strategy(c.Strategy),
		IDColumn: c.IDColumn,
		Quantile: models.QuantileOptions{MaxRetries: c.Quantile.MaxRetries, Seed: c.Quantile.Seed},
	}
	if sc.Strategy == models.StrategyRule {
		rules, err := c.RuleSets()
		if err != nil {
			return models.Config{}, err
		}
		sc.Rules = rules
	}
	th, err := params.ParseThresholds(c.Thresholds)
	if err != nil {
		return models.Config{}, err
	}
	return models.Config{Scoring: sc, Thresholds: th, Verbose: c.Verbose}, nil
}
