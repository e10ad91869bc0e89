package robo

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
	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/equipe"
	"github.com/EducaFranquia/api-unidade/internal/matricula"
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
		&despesa.Despesa{},
		&despesa.DespesaRecorrente{},
		&equipe.CustoPessoal{},
		&equipe.Funcionario{},
		&matricula.Matricula{},
		&aluno.Aluno{},
		&catalogo.Disciplina{},
		&catalogo.CategoriaDespesa{},
		&unidade.Unidade{},
	))
	require.NoError(t, unidade.Migrate(db))
	require.NoError(t, catalogo.Migrate(db))
	require.NoError(t, catalogo.Seed(db))
	require.NoError(t, aluno.Migrate(db))
	require.NoError(t, matricula.Migrate(db))
	require.NoError(t, pagamento.Migrate(db))
	require.NoError(t, despesa.Migrate(db))
	require.NoError(t, equipe.Migrate(db))
	return db
}

func TestExecutarGeraEIdempotente(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)

	regra := despesa.DespesaRecorrente{
		UnidadeID:     u.ID,
		CategoriaID:   catalogo.CategoriaTaxas,
		Descricao:     "Aluguel",
		Valor:         250000,
		DiaVencimento: 5,
		Ativo:         true,
	}
	require.NoError(t, db.Create(&regra).Error)

	a := aluno.Aluno{UnidadeID: u.ID, Nome: "João", ResponsavelNome: "Pai do João", DataCadastro: hoje}
	require.NoError(t, db.Create(&a).Error)
	var disciplina catalogo.Disciplina
	require.NoError(t, db.First(&disciplina).Error)
	m := matricula.Matricula{
		UnidadeID:     u.ID,
		AlunoID:       a.ID,
		DisciplinaID:  disciplina.ID,
		ValorAcordado: 30000,
		DiaVencimento: 10,
		Ativo:         true,
		DataInicio:    hoje.AddDate(0, -2, 0),
	}
	require.NoError(t, db.Create(&m).Error)

	f := equipe.Funcionario{
		UnidadeID:         u.ID,
		Nome:              "Maria",
		TipoContratacaoID: 1,
		SalarioBase:       200000,
		DiaPagamento:      5,
		Ativo:             true,
		DataAdmissao:      hoje.AddDate(-1, 0, 0),
	}
	require.NoError(t, db.Create(&f).Error)
	custo := equipe.CustoPessoal{
		UnidadeID:     u.ID,
		FuncionarioID: f.ID,
		Tipo:          equipe.TipoCustoImposto,
		Nome:          "INSS",
		Valor:         40000,
		DiaVencimento: 15,
	}
	require.NoError(t, db.Create(&custo).Error)

	resultado, err := Executar(db, u.ID, hoje)
	require.NoError(t, err)
	assert.Equal(t, Resultado{Despesas: 1, Mensalidades: 1, Folha: 2}, resultado)

	var p pagamento.Pagamento
	require.NoError(t, db.Where("matricula_id = ?", m.ID).First(&p).Error)
	assert.Equal(t, "03/2026", p.MesReferencia.String())
	assert.Equal(t, int64(30000), p.Valor)

	// segunda execução no mesmo mês não gera nada
	repetido, err := Executar(db, u.ID, hoje)
	require.NoError(t, err)
	assert.Equal(t, Resultado{}, repetido)
}

func TestExecutarAposDia21AntecipaBoletos(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	a := aluno.Aluno{UnidadeID: u.ID, Nome: "Ana", ResponsavelNome: "Mãe da Ana", DataCadastro: hoje}
	require.NoError(t, db.Create(&a).Error)
	var disciplina catalogo.Disciplina
	require.NoError(t, db.First(&disciplina).Error)
	m := matricula.Matricula{
		UnidadeID:     u.ID,
		AlunoID:       a.ID,
		DisciplinaID:  disciplina.ID,
		ValorAcordado: 25000,
		DiaVencimento: 10,
		Ativo:         true,
		DataInicio:    hoje.AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&m).Error)

	resultado, err := Executar(db, u.ID, hoje)
	require.NoError(t, err)
	assert.Equal(t, 1, resultado.Mensalidades)

	var p pagamento.Pagamento
	require.NoError(t, db.Where("matricula_id = ?", m.ID).First(&p).Error)
	assert.Equal(t, "04/2026", p.MesReferencia.String())
}

func TestExecutarConsomeBolsa(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	a := aluno.Aluno{UnidadeID: u.ID, Nome: "Bia", ResponsavelNome: "Pai da Bia", DataCadastro: hoje}
	require.NoError(t, db.Create(&a).Error)
	var disciplina catalogo.Disciplina
	require.NoError(t, db.First(&disciplina).Error)
	m := matricula.Matricula{
		UnidadeID:           u.ID,
		AlunoID:             a.ID,
		DisciplinaID:        disciplina.ID,
		ValorAcordado:       30000,
		DiaVencimento:       10,
		Ativo:               true,
		BolsaAtiva:          true,
		BolsaMesesRestantes: 1,
		DataInicio:          hoje.AddDate(0, -1, 0),
	}
	require.NoError(t, db.Create(&m).Error)

	_, err := Executar(db, u.ID, hoje)
	require.NoError(t, err)

	var p pagamento.Pagamento
	require.NoError(t, db.Where("matricula_id = ?", m.ID).First(&p).Error)
	assert.Equal(t, int64(15000), p.Valor)

	// último mês da bolsa: desativa ao zerar o saldo
	var atualizada matricula.Matricula
	require.NoError(t, db.First(&atualizada, m.ID).Error)
	assert.False(t, atualizada.BolsaAtiva)
	assert.Equal(t, 0, atualizada.BolsaMesesRestantes)
}
