package matricula

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
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
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
		&pagamento.Pagamento{},
		&Matricula{},
		&aluno.Aluno{},
		&catalogo.Disciplina{},
		&unidade.Unidade{},
	))
	require.NoError(t, unidade.Migrate(db))
	require.NoError(t, catalogo.Migrate(db))
	require.NoError(t, catalogo.Seed(db))
	require.NoError(t, aluno.Migrate(db))
	require.NoError(t, Migrate(db))
	require.NoError(t, pagamento.Migrate(db))
	return db
}

func criarMatriculaAtiva(t *testing.T, db *gorm.DB, unidadeID uint, nomeAluno string, valor int64, hoje time.Time) (*aluno.Aluno, *Matricula) {
	t.Helper()
	a := aluno.Aluno{UnidadeID: unidadeID, Nome: nomeAluno, ResponsavelNome: "Responsável", DataCadastro: hoje}
	require.NoError(t, db.Create(&a).Error)
	var disciplina catalogo.Disciplina
	require.NoError(t, db.First(&disciplina).Error)
	m := Matricula{
		UnidadeID:     unidadeID,
		AlunoID:       a.ID,
		DisciplinaID:  disciplina.ID,
		ValorAcordado: valor,
		DiaVencimento: 10,
		Ativo:         true,
		DataInicio:    hoje,
	}
	require.NoError(t, db.Create(&m).Error)
	return &a, &m
}

func TestInativarAlunoCompletoRespeitaUnidade(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u1 := unidade.Unidade{Nome: "Unidade A"}
	require.NoError(t, db.Create(&u1).Error)
	u2 := unidade.Unidade{Nome: "Unidade B"}
	require.NoError(t, db.Create(&u2).Error)

	a1, m1 := criarMatriculaAtiva(t, db, u1.ID, "João", 30000, hoje)
	a2, m2 := criarMatriculaAtiva(t, db, u2.ID, "Ana", 25000, hoje)

	repo := NewRepository()

	// inativar pelo escopo da unidade errada não encosta em nada
	require.NoError(t, repo.InativarAlunoCompleto(db, a2.ID, u1.ID, hoje))
	var intacta Matricula
	require.NoError(t, db.First(&intacta, m2.ID).Error)
	assert.True(t, intacta.Ativo)
	assert.Nil(t, intacta.DataFim)

	require.NoError(t, repo.InativarAlunoCompleto(db, a1.ID, u1.ID, hoje))
	var encerrada Matricula
	require.NoError(t, db.First(&encerrada, m1.ID).Error)
	assert.False(t, encerrada.Ativo)
	require.NotNil(t, encerrada.DataFim)
}

func TestAplicarBolsaReduzPendenciaPelaMetadeDoCobrado(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	a, m := criarMatriculaAtiva(t, db, u.ID, "Bia", 35000, hoje)

	// primeira cobrança pro-rata: metade do mês, não o valor acordado
	p := pagamento.Pagamento{
		UnidadeID:      u.ID,
		MatriculaID:    &m.ID,
		AlunoID:        a.ID,
		MesReferencia:  mesref.Nova(hoje),
		DataVencimento: hoje,
		Valor:          17500,
		Status:         pagamento.StatusPendente,
		Tipo:           pagamento.TipoMensalidade,
	}
	require.NoError(t, db.Create(&p).Error)

	repo := NewRepository()
	require.NoError(t, repo.AplicarBolsa(db, m.ID, 3, true, u.ID))

	var pendente pagamento.Pagamento
	require.NoError(t, db.First(&pendente, p.ID).Error)
	assert.Equal(t, int64(8750), pendente.Valor)

	// o mês aplicado na pendência já sai do saldo da bolsa
	var atualizada Matricula
	require.NoError(t, db.First(&atualizada, m.ID).Error)
	assert.True(t, atualizada.BolsaAtiva)
	assert.Equal(t, 2, atualizada.BolsaMesesRestantes)
}

func TestAplicarBolsaRejeitaMatriculaDeOutraUnidade(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u1 := unidade.Unidade{Nome: "Unidade A"}
	require.NoError(t, db.Create(&u1).Error)
	u2 := unidade.Unidade{Nome: "Unidade B"}
	require.NoError(t, db.Create(&u2).Error)
	_, m := criarMatriculaAtiva(t, db, u2.ID, "Caio", 30000, hoje)

	repo := NewRepository()
	err := repo.AplicarBolsa(db, m.ID, 3, false, u1.ID)
	require.Error(t, err)

	var intacta Matricula
	require.NoError(t, db.First(&intacta, m.ID).Error)
	assert.False(t, intacta.BolsaAtiva)
}
