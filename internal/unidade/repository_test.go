package unidade

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// abrirBancoDeTeste conecta no Postgres apontado por TEST_DATABASE_URL e
// recria o esquema. Sem a variável o teste é pulado.
func abrirBancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL não definida")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&DocTemplate{},
		&ConfigRoyalty{},
		&Parametros{},
		&Unidade{},
	))
	require.NoError(t, Migrate(db))
	return db
}

func TestExcluirRoyaltyRespeitaUnidade(t *testing.T) {
	db := abrirBancoDeTeste(t)

	u1 := Unidade{Nome: "Unidade A"}
	require.NoError(t, db.Create(&u1).Error)
	u2 := Unidade{Nome: "Unidade B"}
	require.NoError(t, db.Create(&u2).Error)

	r1 := ConfigRoyalty{UnidadeID: u1.ID, Valor: 50000, AnoMesInicio: "01/2026"}
	require.NoError(t, db.Create(&r1).Error)
	r2 := ConfigRoyalty{UnidadeID: u2.ID, Valor: 60000, AnoMesInicio: "01/2026"}
	require.NoError(t, db.Create(&r2).Error)

	repo := NewRepository()

	// royalty de outra unidade não pode ser excluído por aqui
	err := repo.ExcluirRoyalty(db, r2.ID, u1.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	var intacto ConfigRoyalty
	require.NoError(t, db.First(&intacto, r2.ID).Error)

	require.NoError(t, repo.ExcluirRoyalty(db, r1.ID, u1.ID))
	var restante int64
	require.NoError(t, db.Model(&ConfigRoyalty{}).Where("unidade_id = ?", u1.ID).Count(&restante).Error)
	assert.Zero(t, restante)
}
