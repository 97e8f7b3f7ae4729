package config

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata" // garante o fuso em imagens sem zoneinfo

	"github.com/sethvargo/go-envconfig"
)

// Drivers de documento suportados.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config armazena todas as configurações do serviço Loja Social.
type Config struct {
	// Geral
	Port        string `env:"PORT, default=8080"`
	Environment string `env:"ENV, default=development"`
	LogLevel    string `env:"LOG_LEVEL, default=info"`
	Timezone    string `env:"TIMEZONE, default=Europe/Lisbon"` // fuso que define o "hoje" da validade dos lotes

	// Store de documentos
	StoreDriver   string        `env:"STORE_DRIVER, default=postgres"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	DBTimeout     time.Duration `env:"DB_TIMEOUT, default=5s"`
	MongoURI      string        `env:"MONGO_URI"`
	MongoDatabase string        `env:"MONGO_DATABASE, default=lojasocial"`

	// Cache (Redis)
	RedisAddr     string        `env:"REDIS_ADDR, default=localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB, default=0"`
	CacheTTL      time.Duration `env:"CACHE_TTL, default=5m"`
	DraftTTL      time.Duration `env:"DRAFT_TTL, default=12h"`

	// Segurança (JWT)
	JWTSecretKey string        `env:"JWT_SECRET_KEY, required"`
	TokenExpiry  time.Duration `env:"JWT_EXPIRY, default=60m"`

	// Conta de administração criada no arranque, se ainda não existir
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Rate Limiting
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS, default=100"`
	RateLimitPeriod      time.Duration `env:"RATE_LIMIT_PERIOD, default=1m"`
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente do processo.
func LoadConfig(ctx context.Context) (*Config, error) {
	return LoadConfigWith(ctx, envconfig.OsLookuper())
}

// LoadConfigWith carrega as configurações a partir de um Lookuper arbitrário (útil em testes).
func LoadConfigWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("falha ao processar configuração do ambiente: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate verifica as combinações que o envconfig não consegue expressar.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL é obrigatória com STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI é obrigatória com STORE_DRIVER=%s", DriverMongo)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER desconhecido: %q", c.StoreDriver)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE inválido %q: %w", c.Timezone, err)
	}
	if c.RateLimitMaxRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX_REQUESTS deve ser positivo")
	}
	return nil
}

// Location devolve o fuso configurado. Validate garante que é carregável.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment indica se o serviço corre em modo de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
