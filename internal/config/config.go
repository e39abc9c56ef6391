package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/scythe504/sketchrooms/internal"
)

type Config struct {
	HTTP      HTTPConfig      `koanf:"http"`
	Game      GameConfig      `koanf:"game"`
	Words     WordsConfig     `koanf:"words"`
	Transport TransportConfig `koanf:"transport"`
	Log       LogConfig       `koanf:"log"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

type GameConfig struct {
	MaxPlayers     int           `koanf:"max_players"`
	MaxRounds      int           `koanf:"max_rounds"`
	RoundDuration  time.Duration `koanf:"round_duration"`
	RevealDuration time.Duration `koanf:"reveal_duration"`
	EmptyRoomTTL   time.Duration `koanf:"empty_room_ttl"`
}

type WordsConfig struct {
	Source      string `koanf:"source"`
	CSVPath     string `koanf:"csv_path"`
	DatabaseURL string `koanf:"database_url"`
}

type TransportConfig struct {
	MessagesPerSecond float64 `koanf:"messages_per_second"`
	Burst             int     `koanf:"burst"`
	SendBuffer        int     `koanf:"send_buffer"`
}

type LogConfig struct {
	Level    string `koanf:"level"`
	Encoding string `koanf:"encoding"`
}

const (
	WordsBuiltin  = "builtin"
	WordsCSV      = "csv"
	WordsPostgres = "postgres"
)

// Load reads an optional .env file, the YAML file at path (if any), then
// fills defaults and applies environment overrides.
func Load(path string) (*Config, error) {
	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Game.MaxPlayers < internal.MinPlayersToStart {
		errs = append(errs, fmt.Errorf("game.max_players must be at least %d", internal.MinPlayersToStart))
	}
	if c.Game.MaxRounds < 1 {
		errs = append(errs, errors.New("game.max_rounds must be at least 1"))
	}
	if c.Game.RoundDuration < time.Second {
		errs = append(errs, errors.New("game.round_duration must be at least 1s"))
	}
	if c.Game.RevealDuration < 0 {
		errs = append(errs, errors.New("game.reveal_duration must not be negative"))
	}
	switch c.Words.Source {
	case WordsBuiltin:
	case WordsCSV:
		if c.Words.CSVPath == "" {
			errs = append(errs, errors.New("words.csv_path is required for the csv source"))
		}
	case WordsPostgres:
		if c.Words.DatabaseURL == "" {
			errs = append(errs, errors.New("words.database_url is required for the postgres source"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown words.source %q", c.Words.Source))
	}
	if c.Transport.MessagesPerSecond <= 0 || c.Transport.Burst < 1 {
		errs = append(errs, errors.New("transport rate limit must be positive"))
	}
	if c.Transport.SendBuffer < 1 {
		errs = append(errs, errors.New("transport.send_buffer must be at least 1"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"*"})

	// Game defaults
	setDefault(k, "game.max_players", internal.DefaultMaxPlayersPerRoom)
	setDefault(k, "game.max_rounds", internal.DefaultMaxRounds)
	setDefault(k, "game.round_duration", internal.DefaultRoundDuration)
	setDefault(k, "game.reveal_duration", internal.DefaultRevealDuration)
	setDefault(k, "game.empty_room_ttl", internal.DefaultEmptyRoomTTL)

	setDefault(k, "words.source", WordsBuiltin)

	// Transport defaults
	setDefault(k, "transport.messages_per_second", 20.0)
	setDefault(k, "transport.burst", 40)
	setDefault(k, "transport.send_buffer", 64)

	setDefault(k, "log.level", "info")
	setDefault(k, "log.encoding", "json")
}

func applyEnvOverrides(k *koanf.Koanf) {
	if host := GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	// PORT is what most PaaS runtimes inject
	if port := GetInt("PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if port := GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}

	if n := GetInt("GAME_MAX_PLAYERS", 0); n > 0 {
		k.Set("game.max_players", n)
	}
	if n := GetInt("GAME_MAX_ROUNDS", 0); n > 0 {
		k.Set("game.max_rounds", n)
	}
	if d := GetDuration("GAME_ROUND_DURATION", 0); d > 0 {
		k.Set("game.round_duration", d)
	}
	if d := GetDuration("GAME_REVEAL_DURATION", 0); d > 0 {
		k.Set("game.reveal_duration", d)
	}

	if src := GetString("WORDS_SOURCE", ""); src != "" {
		k.Set("words.source", src)
	}
	if p := GetString("WORDS_CSV_PATH", ""); p != "" {
		k.Set("words.csv_path", p)
	}
	if url := GetString("DATABASE_URL", ""); url != "" {
		k.Set("words.database_url", url)
	}

	if lvl := GetString("LOG_LEVEL", ""); lvl != "" {
		k.Set("log.level", lvl)
	}
	if enc := GetString("LOG_ENCODING", ""); enc != "" {
		k.Set("log.encoding", enc)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value any) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
