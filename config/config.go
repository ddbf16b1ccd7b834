package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Chain    ChainConfig    `mapstructure:"chain"`
	Cipher   CipherConfig   `mapstructure:"cipher"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ChainConfig holds the JSON-RPC endpoint, the service signing key and the
// deployed token contract address.
type ChainConfig struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	PrivateKey     string        `mapstructure:"private_key"` // hex, with or without 0x prefix
	TokenAddress   string        `mapstructure:"token_address"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`
	GasLimit       uint64        `mapstructure:"gas_limit"`
}

// CipherConfig holds the passphrase for private-key encryption at rest.
// The secret must be exactly 32 bytes; length is validated at startup.
type CipherConfig struct {
	Secret string `mapstructure:"secret"`
}

// AdminConfig holds the admin capability used to gate mint/burn.
type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"` // Argon2id encoded
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiry    time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TWS_ (Token Wallet Service).
// Nested keys use underscore: TWS_CHAIN_RPC_URL, TWS_CIPHER_SECRET, etc.
// The flat names used by earlier deployment env files (RPC_URL, PRIVATE_KEY,
// TOKEN_ADDRESS, ENCRYPTION_SECRET, PORT) are bound as aliases.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "token_wallet")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("chain.rpc_url", "")
	v.SetDefault("chain.private_key", "")
	v.SetDefault("chain.token_address", "")
	v.SetDefault("chain.confirm_timeout", "90s")
	v.SetDefault("chain.gas_limit", 120000)
	v.SetDefault("cipher.secret", "")
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.jwt_expiry", "24h")
	v.SetDefault("admin.jwt_issuer", "token-wallet-service")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TWS_CHAIN_RPC_URL -> chain.rpc_url
	v.SetEnvPrefix("TWS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Legacy flat env names
	_ = v.BindEnv("chain.rpc_url", "TWS_CHAIN_RPC_URL", "RPC_URL")
	_ = v.BindEnv("chain.private_key", "TWS_CHAIN_PRIVATE_KEY", "PRIVATE_KEY")
	_ = v.BindEnv("chain.token_address", "TWS_CHAIN_TOKEN_ADDRESS", "TOKEN_ADDRESS")
	_ = v.BindEnv("cipher.secret", "TWS_CIPHER_SECRET", "ENCRYPTION_SECRET")
	_ = v.BindEnv("server.port", "TWS_SERVER_PORT", "PORT")

	// Read config file (optional, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
