package pagamento

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
		&Pagamento{},
		&despesa.Despesa{},
		&aluno.Aluno{},
		&catalogo.FormaPagamento{},
		&catalogo.CategoriaDespesa{},
		&unidade.Unidade{},
	))
	require.NoError(t, unidade.Migrate(db))
	require.NoError(t, catalogo.Migrate(db))
	require.NoError(t, catalogo.Seed(db))
	require.NoError(t, aluno.Migrate(db))
	require.NoError(t, Migrate(db))
	require.NoError(t, despesa.Migrate(db))
	return db
}

func criarPendencia(t *testing.T, db *gorm.DB, unidadeID uint, hoje time.Time) *Pagamento {
	t.Helper()
	a := aluno.Aluno{UnidadeID: unidadeID, Nome: "João", ResponsavelNome: "Pai do João", DataCadastro: hoje}
	require.NoError(t, db.Create(&a).Error)
	p := Pagamento{
		UnidadeID:      unidadeID,
		AlunoID:        a.ID,
		MesReferencia:  mesref.Nova(hoje),
		DataVencimento: hoje,
		Valor:          30000,
		Status:         StatusPendente,
		Tipo:           TipoMensalidade,
	}
	require.NoError(t, db.Create(&p).Error)
	return &p
}

func TestRegistrarRecebimentoComTaxaCriaDespesaVinculada(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	p := criarPendencia(t, db, u.ID, hoje)
	var cartao catalogo.FormaPagamento
	require.NoError(t, db.Where("nome = ?", "Cartão de Crédito").First(&cartao).Error)

	repo := NewRepository()
	require.NoError(t, repo.RegistrarRecebimento(db, u.ID, p.ID, cartao.ID, 350, "João", hoje))

	var pago Pagamento
	require.NoError(t, db.First(&pago, p.ID).Error)
	assert.Equal(t, StatusPago, pago.Status)
	require.NotNil(t, pago.FormaPagamentoID)
	assert.Equal(t, cartao.ID, *pago.FormaPagamentoID)
	require.NotNil(t, pago.DataPagamento)

	var taxa despesa.Despesa
	require.NoError(t, db.Where("pagamento_origem_id = ?", p.ID).First(&taxa).Error)
	assert.Equal(t, int64(350), taxa.Valor)
	assert.Equal(t, despesa.StatusPaga, taxa.Status)
	assert.Equal(t, catalogo.CategoriaTaxas, taxa.CategoriaID)
	assert.Contains(t, taxa.Descricao, cartao.Nome)

	// baixa dupla não passa
	require.Error(t, repo.RegistrarRecebimento(db, u.ID, p.ID, cartao.ID, 350, "João", hoje))
}

func TestEstornarRestauraPendenteERemoveTaxa(t *testing.T) {
	db := abrirBancoDeTeste(t)
	hoje := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	u := unidade.Unidade{Nome: "Unidade Teste"}
	require.NoError(t, db.Create(&u).Error)
	p := criarPendencia(t, db, u.ID, hoje)
	var cartao catalogo.FormaPagamento
	require.NoError(t, db.Where("nome = ?", "Cartão de Débito").First(&cartao).Error)

	repo := NewRepository()
	require.NoError(t, repo.RegistrarRecebimento(db, u.ID, p.ID, cartao.ID, 420, "João", hoje))
	require.NoError(t, repo.Estornar(db, u.ID, p.ID))

	var estornado Pagamento
	require.NoError(t, db.First(&estornado, p.ID).Error)
	assert.Equal(t, StatusPendente, estornado.Status)
	assert.Nil(t, estornado.DataPagamento)
	assert.Nil(t, estornado.FormaPagamentoID)

	// a taxa de cartão some junto com o estorno
	var taxas int64
	require.NoError(t, db.Model(&despesa.Despesa{}).
		Where("pagamento_origem_id = ?", p.ID).Count(&taxas).Error)
	assert.Zero(t, taxas)
}
