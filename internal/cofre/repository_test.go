package cofre

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/unidade"
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
		&Movimentacao{},
		&Cofre{},
		&unidade.Unidade{},
	))
	require.NoError(t, unidade.Migrate(db))
	require.NoError(t, Migrate(db))
	return db
}

func TestDistribuirLucroCreditaEMarcaExtrato(t *testing.T) {
	db := abrirBancoDeTeste(t)
	quando := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	mes := mesref.Nova(quando)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	reserva := Cofre{UnidadeID: u.ID, Nome: "Reserva"}
	require.NoError(t, db.Create(&reserva).Error)
	expansao := Cofre{UnidadeID: u.ID, Nome: "Expansão"}
	require.NoError(t, db.Create(&expansao).Error)

	repo := NewRepository()
	valores := map[uint]int64{reserva.ID: 60000, expansao.ID: 40000}
	require.NoError(t, repo.DistribuirLucro(db, u.ID, valores, mes, quando))

	var c Cofre
	require.NoError(t, db.First(&c, reserva.ID).Error)
	assert.Equal(t, int64(60000), c.SaldoAtual)
	require.NoError(t, db.First(&c, expansao.ID).Error)
	assert.Equal(t, int64(40000), c.SaldoAtual)

	// a mesma distribuição compartilha uma referência no extrato
	var movimentacoes []Movimentacao
	require.NoError(t, db.Find(&movimentacoes).Error)
	require.Len(t, movimentacoes, 2)
	assert.Equal(t, movimentacoes[0].Referencia, movimentacoes[1].Referencia)
	assert.Equal(t, TipoEntrada, movimentacoes[0].Tipo)
}

func TestDistribuirLucroRejeitaCofreDeOutraUnidade(t *testing.T) {
	db := abrirBancoDeTeste(t)
	quando := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
	mes := mesref.Nova(quando)

	u1 := unidade.Unidade{Nome: "Unidade A"}
	require.NoError(t, db.Create(&u1).Error)
	u2 := unidade.Unidade{Nome: "Unidade B"}
	require.NoError(t, db.Create(&u2).Error)
	proprio := Cofre{UnidadeID: u1.ID, Nome: "Reserva"}
	require.NoError(t, db.Create(&proprio).Error)
	alheio := Cofre{UnidadeID: u2.ID, Nome: "Reserva"}
	require.NoError(t, db.Create(&alheio).Error)

	repo := NewRepository()
	valores := map[uint]int64{proprio.ID: 10000, alheio.ID: 5000}
	err := repo.DistribuirLucro(db, u1.ID, valores, mes, quando)
	require.Error(t, err)

	// tudo ou nada: nenhum saldo muda e o extrato fica vazio
	var c Cofre
	require.NoError(t, db.First(&c, proprio.ID).Error)
	assert.Zero(t, c.SaldoAtual)
	require.NoError(t, db.First(&c, alheio.ID).Error)
	assert.Zero(t, c.SaldoAtual)

	var lancamentos int64
	require.NoError(t, db.Model(&Movimentacao{}).Count(&lancamentos).Error)
	assert.Zero(t, lancamentos)
}
