package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Pinterest    Pinterest    `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	SnapshotSync SnapshotSync `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Pinterest descreve a superfície da API upstream. Versão, métricas e atribuição ficam em
// configuração porque o contrato do Pinterest mudou entre revisões.
type Pinterest struct {
	BaseURL               string        `mapstructure:"pinterest_base_url"`
	Version               string        `mapstructure:"pinterest_version"`
	URL                   string        `mapstructure:"-"`
	TokenURL              string        `mapstructure:"pinterest_token_url"`
	Metrics               []string      `mapstructure:"pinterest_analytics_metrics"`
	AttributionType       string        `mapstructure:"pinterest_attribution_type"`
	Timeout               time.Duration `mapstructure:"pinterest_timeout"`
	AppIDAsAdAccount      bool          `mapstructure:"pinterest_app_id_as_ad_account"`
	SnapshotWritesEnabled bool          `mapstructure:"pinterest_snapshot_writes_enabled"`
	RefreshBuffer         time.Duration `mapstructure:"pinterest_refresh_buffer"`
	RefreshLockTTL        time.Duration `mapstructure:"pinterest_refresh_lock_ttl"`
	FallbackMessage       string        `mapstructure:"pinterest_fallback_message"`
	FallbackEnabled       bool          `mapstructure:"pinterest_fallback_enabled"`
}

type Redis struct {
	URL string `mapstructure:"redis_url"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type SnapshotSync struct {
	CronSchedule        string `mapstructure:"snapshot_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"snapshot_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"snapshot_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/pinterest?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("PINTEREST_BASE_URL", "https://api.pinterest.com")
	viper.SetDefault("PINTEREST_VERSION", "v5")
	viper.SetDefault("PINTEREST_TOKEN_URL", "https://api.pinterest.com/v5/oauth/token")
	viper.SetDefault("PINTEREST_ANALYTICS_METRICS", "IMPRESSION,ENGAGEMENT,PIN_CLICK,OUTBOUND_CLICK,SAVE,TOTAL_AUDIENCE,ENGAGED_AUDIENCE")
	viper.SetDefault("PINTEREST_ATTRIBUTION_TYPE", "ORGANIC")
	viper.SetDefault("PINTEREST_TIMEOUT", "15s")
	viper.SetDefault("PINTEREST_APP_ID_AS_AD_ACCOUNT", true)    // Registros antigos sem ad_account_id
	viper.SetDefault("PINTEREST_SNAPSHOT_WRITES_ENABLED", true) // false = modo somente leitura
	viper.SetDefault("PINTEREST_REFRESH_BUFFER", "10m")         // Renovar 10 minutos antes de expirar
	viper.SetDefault("PINTEREST_REFRESH_LOCK_TTL", "30s")
	viper.SetDefault("PINTEREST_FALLBACK_MESSAGE", "using substitute data")
	viper.SetDefault("PINTEREST_FALLBACK_ENABLED", true) // false = falhas do Pinterest viram 400 PINTEREST_API_ERROR

	viper.SetDefault("REDIS_URL", "") // Vazio = lock de renovação apenas local

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("SNAPSHOT_SYNC_CRON", "0 3 * * *")        // Todos os dias às 3h da manhã
	viper.SetDefault("SNAPSHOT_SYNC_REQUEST_DELAY_SECONDS", 2) // 2 segundos entre contas
	viper.SetDefault("SNAPSHOT_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Normalize()

	return config, nil
}

// Normalize deriva os campos calculados e aplica limites mínimos
func (c *Config) Normalize() {
	c.Pinterest.BaseURL = strings.TrimRight(c.Pinterest.BaseURL, "/")
	c.Pinterest.URL = fmt.Sprintf("%s/%s", c.Pinterest.BaseURL, c.Pinterest.Version)

	metrics := make([]string, 0, len(c.Pinterest.Metrics))
	for _, m := range c.Pinterest.Metrics {
		if m = strings.TrimSpace(m); m != "" {
			metrics = append(metrics, strings.ToUpper(m))
		}
	}
	c.Pinterest.Metrics = metrics

	if c.Pinterest.Timeout <= 0 {
		c.Pinterest.Timeout = 15 * time.Second
	}
	if c.Pinterest.RefreshBuffer <= 0 {
		c.Pinterest.RefreshBuffer = 10 * time.Minute
	}
	if c.Pinterest.RefreshLockTTL <= 0 {
		c.Pinterest.RefreshLockTTL = 30 * time.Second
	}
	if c.Pinterest.FallbackMessage == "" {
		c.Pinterest.FallbackMessage = "using substitute data"
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
