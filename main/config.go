package main

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type envConfig struct {
	MySQLConnStr      string `env:"MYSQL_CONN_STR"`
	MySQLUser         string `env:"MYSQL_USER"`
	MySQLPassword     string `env:"MYSQL_PASSWORD"`
	RedisPassword     string `env:"REDIS_PASSWORD"`
	ShortenerEndpoint string `env:"SHORTENER_ENDPOINT" envDefault:"http://localhost:8000"`
}

func loadEnvConfig() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c envConfig) mysqlDSN() string {
	if c.MySQLUser == "" {
		return c.MySQLConnStr
	}
	return fmt.Sprintf("%s:%s@%s", c.MySQLUser, c.MySQLPassword, c.MySQLConnStr)
}
