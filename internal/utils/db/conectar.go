package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EducaFranquia/api-unidade/internal/config"
)

// ConnectDataBase abre a conexão Postgres com os parâmetros informados.
func ConnectDataBase(port uint, host, dbname, username, password string, sslDisabled bool) (*gorm.DB, error) {
	var sslMode string
	if sslDisabled {
		sslMode = " sslmode=disable"
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
}

// GetDB abre a conexão usando a configuração da aplicação.
func GetDB() (*gorm.DB, error) {
	return ConnectDataBase(
		config.Conf.GetUint("dbPort"),
		config.Conf.GetString("dbHost"),
		config.Conf.GetString("dbName"),
		config.Conf.GetString("dbUser"),
		config.Conf.GetString("dbPassword"),
		config.Conf.GetBool("dbSSLModeDisable"),
	)
}
