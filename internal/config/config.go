package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env-default:"info"`
	HTTPPort string `yaml:"http-port" env-default:"9090"`

	Session  Session  `yaml:"session"`
	Strategy Strategy `yaml:"strategy"`
	Relay    Relay    `yaml:"relay"`
	Oracle   Oracle   `yaml:"oracle"`
	Redis    Redis    `yaml:"redis"`
}

type Session struct {
	ThinkingDelayMS int `yaml:"thinking-delay-ms" env-default:"800"`
	BlastDisplayMS  int `yaml:"blast-display-ms" env-default:"1200"`
}

type Strategy struct {
	// One of: random, heuristic, strong, oracle. Anything else falls back
	// to random.
	Kind string `yaml:"kind" env-default:"random"`
}

type Relay struct {
	// Mode is "off" (local play against an automated seat), "host" or
	// "join".
	Mode string `yaml:"mode" env-default:"off"`
	Port string `yaml:"port" env-default:"9091"`
	// JoinAddr is the host:port of the hosting peer, join mode only.
	JoinAddr string `yaml:"join-addr" env-default:""`
}

type Oracle struct {
	URL       string `yaml:"url" env-default:""`
	TimeoutMS int    `yaml:"timeout-ms" env-default:"2000"`
}

type Redis struct {
	// Empty host disables snapshot persistence.
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Session) ThinkingDelay() time.Duration {
	return time.Duration(that.ThinkingDelayMS) * time.Millisecond
}

func (that *Session) BlastDisplay() time.Duration {
	return time.Duration(that.BlastDisplayMS) * time.Millisecond
}

func (that *Oracle) Timeout() time.Duration {
	return time.Duration(that.TimeoutMS) * time.Millisecond
}

func (that *Redis) Enabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
