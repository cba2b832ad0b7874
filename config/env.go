package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Env holds secrets for the SUT that should not live in the config file.
type Env struct {
	User     string
	Password string
	Domain   string
}

// LoadEnv reads the given .env file, if any, and then the process environment. A missing
// file is only an error if a path was given explicitly.
func LoadEnv(path string) (*Env, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
	}
	return &Env{
		User:     os.Getenv("SUT_USER"),
		Password: os.Getenv("SUT_PASSWORD"),
		Domain:   os.Getenv("SUT_DOMAIN"),
	}, nil
}

func (e *Env) applyTo(c *Config) {
	if c.SUT.User == "" {
		c.SUT.User = e.User
	}
	if c.SUT.Password == "" {
		c.SUT.Password = e.Password
	}
	if c.SUT.Domain == "" {
		c.SUT.Domain = e.Domain
	}
}
