package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Debug              bool   `envconfig:"debug"`
	Port               int    `envconfig:"port"`
	Env                string `envconfig:"env"`
	BaseUrl            string `envconfig:"base_url"`
	Host               string `envconfig:"host"`
	PostgresHost       string `envconfig:"postgres_host"`
	PostgresUser       string `envconfig:"postgres_user"`
	PostgresDB         string `envconfig:"postgres_db"`
	PostgresPort       int    `envconfig:"postgres_port"`
	PostgresPassword   string `envconfig:"postgres_password"`
	JWTSecret          string `envconfig:"jwt_secret"`
	GoogleClientID     string `envconfig:"google_client_id"`
	GoogleClientSecret string `envconfig:"google_client_secret"`
	GoogleRedirectURL  string `envconfig:"google_redirect_url"`
	AwsRegion          string `envconfig:"aws_region"`
	AwsBucket          string `envconfig:"aws_bucket"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("bookloop", c)
	if err != nil {
		return nil, err
	}
	return c, nil
}
