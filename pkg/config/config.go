package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config regroupe la configuration de l'application (lecture via Viper
// depuis l'environnement et, optionnellement, un fichier).
type Config struct {
	App  AppConfig
	HTTP HTTPConfig
	JWT  JWTConfig
	DB   DBConfig
	AI   AIConfig
}

// AppConfig configuration générale.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig adresse d'écoute du serveur.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr retourne l'adresse d'écoute (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig protection optionnelle de l'API. Secret vide = API ouverte,
// les jetons étant émis hors du service (outillage ops).
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// DBConfig journal d'audit Postgres optionnel. URL vide = journal désactivé,
// les sessions vivant de toute façon en mémoire.
type DBConfig struct {
	DatabaseURL string
}

// AIConfig accès au modèle de langage pour /api/chat.
type AIConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
}

// Load lit la configuration depuis les variables d'environnement (et un
// fichier .env/config.env s'il existe). Les env vars priment.
// Noms attendus : BACKEND_HOST, BACKEND_PORT, APP_ENV, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Fichier de configuration optionnel (.env ou config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // absent : on ignore

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // absent : on ignore

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "planif-depots"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "BACKEND_HOST", "127.0.0.1"),
			Port: getInt(v, "BACKEND_PORT", 8001),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "planif-depots"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
		},
		AI: AIConfig{
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
