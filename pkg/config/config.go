package config

import (
	"time"
)

type DB struct {
	Url     string `envconfig:"URL"`
	Driver  string `envconfig:"DRIVER" default:"postgres"`
	Migrate bool   `envconfig:"MIGRATE" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Google holds the OAuth client whose ID tokens are accepted at sign-in.
type Google struct {
	ClientID string `envconfig:"CLIENT_ID"`
}

type Auth struct {
	Jwt    *Jwt    `envconfig:"JWT"`
	Google *Google `envconfig:"GOOGLE"`
}

// Redis backs the summary cache. An empty URL selects the in-memory cache.
type Redis struct {
	URL       string        `envconfig:"URL"`
	KeyPrefix string        `envconfig:"KEY_PREFIX" default:"nineteen:"`
	TTL       time.Duration `envconfig:"TTL" default:"5m"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// Sharing caps the size of transaction listings.
type Sharing struct {
	FriendTransactionsLimit int `envconfig:"FRIEND_TRANSACTIONS_LIMIT" default:"50"`
	SelfTransactionsLimit   int `envconfig:"SELF_TRANSACTIONS_LIMIT" default:"1000"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[nineteen]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Sharing   *Sharing   `envconfig:"SHARING"`
}
