package migracao

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/EducaFranquia/api-unidade/internal/aluno"
	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/matricula"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
	"github.com/EducaFranquia/api-unidade/internal/unidade"
)

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
		&pagamento.Pagamento{},
		&matricula.Matricula{},
		&aluno.Aluno{},
		&catalogo.Disciplina{},
		&catalogo.CanalAquisicao{},
		&unidade.Unidade{},
	))
	require.NoError(t, unidade.Migrate(db))
	require.NoError(t, catalogo.Migrate(db))
	require.NoError(t, catalogo.Seed(db))
	require.NoError(t, aluno.Migrate(db))
	require.NoError(t, matricula.Migrate(db))
	require.NoError(t, pagamento.Migrate(db))
	return db
}

func TestImportarCargaCompleta(t *testing.T) {
	db := abrirBancoDeTeste(t)
	repo := NewRepository()
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)

	registros := []Registro{
		{Nome: "João", Responsavel: "Pai do João", Canal: "Indicação", Disciplina: "Matemática", Valor: 300, DiaVencimento: 10},
		{Nome: "João", Responsavel: "Pai do João", Canal: "Indicação", Disciplina: "Inglês", Valor: 250, DiaVencimento: 10},
		{Nome: "Ana", Responsavel: "Mãe da Ana", Canal: "Google", Disciplina: "Português", Valor: 280, DiaVencimento: 15},
	}
	resultado, err := repo.Importar(db, u.ID, registros, hoje)
	require.NoError(t, err)

	// aluno repetido na carga é reaproveitado
	assert.Equal(t, 2, resultado.Alunos)
	assert.Equal(t, 3, resultado.Matriculas)

	var cobrancas int64
	require.NoError(t, db.Model(&pagamento.Pagamento{}).
		Where("unidade_id = ? AND mes_referencia = ?", u.ID, "03/2026").
		Count(&cobrancas).Error)
	assert.Equal(t, int64(3), cobrancas)

	// segunda carga é recusada: a unidade deixou de estar vazia
	_, err = repo.Importar(db, u.ID, registros, hoje)
	assert.Error(t, err)
}

func TestImportarDisciplinaDesconhecidaDesfazTudo(t *testing.T) {
	db := abrirBancoDeTeste(t)
	repo := NewRepository()
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)

	registros := []Registro{
		{Nome: "João", Disciplina: "Matemática", Valor: 300, DiaVencimento: 10},
		{Nome: "Ana", Disciplina: "Alquimia", Valor: 280, DiaVencimento: 15},
	}
	_, err := repo.Importar(db, u.ID, registros, hoje)
	require.Error(t, err)

	status, err := repo.VerificarStatus(db, u.ID)
	require.NoError(t, err)
	assert.True(t, status.Pronta)
}
