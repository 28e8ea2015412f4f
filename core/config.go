package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultSecretKey = "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy"

var (
	errDefaultSecretKey    = errors.New("secret_key must be set outside DEV")
	errMissingAdminPasword = errors.New("admin.password must be set outside DEV")
)

type (
	ServerConfig struct {
		Address                string
		Host                   string
		DebugHost              string // expvar listener; disabled when empty
		ShutdownTimeout        time.Duration
		SessionExpirationDelta time.Duration
		DisableReqLogs         bool
	}

	DatabaseConfig struct {
		Engine string // sqlite3 | postgres
		DSN    string
	}

	Config struct {
		Env           string // DEV (local; default), TEST, QA, PROD
		Build         string
		AppName       string
		Debug         bool
		TestMode      bool
		SecretKey     string
		AdminPassword string
		RollbarToken  string
		Server        ServerConfig
		Database      DatabaseConfig
	}
)

// NewConfig reads the configuration from the environment.
// Variables are prefixed with the value of ENV, eg. PROD_SECRET_KEY or PROD_DATABASE_DSN.
// A dotenv file at $CONFIG_DIR/.env.<env> is loaded first when it exists.
func NewConfig() *Config {
	conf := viper.New()

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	local := env == "DEV" || env == "TEST"

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", env == "DEV")
	conf.SetDefault("test_mode", env == "TEST")
	conf.SetDefault("app_name", "Meru Poly")
	conf.SetDefault("build", "develop")
	conf.SetDefault("secret_key", defaultSecretKey)
	conf.SetDefault("rollbar_token", "")
	conf.SetDefault("server.address", ":8000")
	conf.SetDefault("server.host", "localhost")
	conf.SetDefault("server.debug_host", "")
	conf.SetDefault("server.shutdown_timeout", 10*time.Second)
	conf.SetDefault("server.session_expiration_delta", 12*time.Hour)
	conf.SetDefault("server.disable_req_logs", false)
	conf.SetDefault("database.engine", "sqlite3")
	conf.SetDefault("database.dsn", "file:portal.db?_busy_timeout=5000")
	if local {
		conf.SetDefault("admin.password", "admin123")
	} else {
		conf.SetDefault("admin.password", "")
	}

	conf.SetEnvPrefix(env)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	confDir := os.Getenv("CONFIG_DIR")
	if confDir == "" {
		confDir = "config"
	}
	dotEnvPath := filepath.Join(confDir, ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		Env:           env,
		Build:         conf.GetString("build"),
		AppName:       conf.GetString("app_name"),
		Debug:         conf.GetBool("debug"),
		TestMode:      conf.GetBool("test_mode"),
		SecretKey:     conf.GetString("secret_key"),
		AdminPassword: conf.GetString("admin.password"),
		RollbarToken:  conf.GetString("rollbar_token"),
		Server: ServerConfig{
			Address:                conf.GetString("server.address"),
			Host:                   conf.GetString("server.host"),
			DebugHost:              conf.GetString("server.debug_host"),
			ShutdownTimeout:        conf.GetDuration("server.shutdown_timeout"),
			SessionExpirationDelta: conf.GetDuration("server.session_expiration_delta"),
			DisableReqLogs:         conf.GetBool("server.disable_req_logs"),
		},
		Database: DatabaseConfig{
			Engine: conf.GetString("database.engine"),
			DSN:    conf.GetString("database.dsn"),
		},
	}
}

// Check refuses to run a non local environment with the built-in secrets.
func (c *Config) Check() error {
	if c.Env == "DEV" || c.Env == "TEST" {
		return nil
	}
	if c.SecretKey == "" || c.SecretKey == defaultSecretKey {
		return errDefaultSecretKey
	}
	if c.AdminPassword == "" {
		return errMissingAdminPasword
	}
	return nil
}
