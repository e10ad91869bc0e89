package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf *viper.Viper

func init() {
	Conf = viper.New()

	// defaults
	Conf.SetTypeByDefaultValue(true)
	Conf.SetDefault("appName", "api-unidade")
	Conf.SetDefault("httpPort", "8080")
	Conf.SetDefault("dbHost", "localhost")
	Conf.SetDefault("dbPort", uint(5432))
	Conf.SetDefault("dbName", "gestao_unidades")
	Conf.SetDefault("dbUser", "postgres")
	Conf.SetDefault("dbPassword", "postgres")
	Conf.SetDefault("dbSSLModeDisable", true)
	Conf.SetDefault("jwtSecret", "")

	// carrega .env se existir (ignora se não existir)
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Fatalf("config.godotenv: %v", err)
		}
	}

	Conf.SetEnvPrefix("API")
	Conf.AutomaticEnv()
}
