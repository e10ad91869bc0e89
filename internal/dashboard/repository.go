package dashboard

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
)

type Repository interface {
	Resumo(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (*ResumoMes, error)
	Pendencias(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (*Pendencias, error)
	SerieAnual(db *gorm.DB, unidadeID uint, ano int) ([]SerieMensal, error)
	DespesasPorCategoria(db *gorm.DB, unidadeID uint, mes mesref.Competencia) ([]CategoriaTotal, error)
	DistribuicaoMatriculas(db *gorm.DB, unidadeID uint) ([]DisciplinaTotal, error)
	Inadimplencia(db *gorm.DB, unidadeID uint, hoje time.Time) (*Inadimplencia, error)
	CustoRHAnual(db *gorm.DB, unidadeID uint, ano int) ([]CustoRHMensal, error)
	FuncionariosAtivos(db *gorm.DB, unidadeID uint) (int64, error)
	MesesComFaturamento(db *gorm.DB, unidadeID uint) ([]string, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func somar(db *gorm.DB, model interface{}, query string, args ...interface{}) (int64, error) {
	var total int64
	err := db.Model(model).Where(query, args...).
		Select("COALESCE(SUM(valor), 0)").Scan(&total).Error
	return total, err
}

func (r *repositoryImpl) Resumo(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (*ResumoMes, error) {
	receitas, err := somar(db, &pagamento.Pagamento{},
		"unidade_id = ? AND mes_referencia = ?", unidadeID, mes.String())
	if err != nil {
		return nil, err
	}
	receitasPendentes, err := somar(db, &pagamento.Pagamento{},
		"unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), pagamento.StatusPendente)
	if err != nil {
		return nil, err
	}
	despesas, err := somar(db, &despesa.Despesa{},
		"unidade_id = ? AND mes_referencia = ?", unidadeID, mes.String())
	if err != nil {
		return nil, err
	}
	despesasPendentes, err := somar(db, &despesa.Despesa{},
		"unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), despesa.StatusPendente)
	if err != nil {
		return nil, err
	}
	saidas, err := somar(db, &despesa.Despesa{},
		"unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), despesa.StatusPaga)
	if err != nil {
		return nil, err
	}

	var alunosAtivos int64
	err = db.Raw(`
		SELECT COUNT(DISTINCT aluno_id) FROM matriculas
		WHERE unidade_id = ? AND ativo`, unidadeID).Scan(&alunosAtivos).Error
	if err != nil {
		return nil, err
	}

	return &ResumoMes{
		Mes:               mes.String(),
		ReceitasTotal:     receitas,
		ReceitasPendentes: receitasPendentes,
		DespesasTotal:     despesas,
		DespesasPendentes: despesasPendentes,
		SaldoPrevisto:     receitas - despesas,
		AlunosAtivos:      alunosAtivos,
		SaidasMes:         saidas,
	}, nil
}

func (r *repositoryImpl) Pendencias(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (*Pendencias, error) {
	p := Pendencias{Mes: mes.String()}
	err := db.Model(&pagamento.Pagamento{}).
		Where("unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), pagamento.StatusPendente).
		Select("COUNT(*) AS quantidade, COALESCE(SUM(valor), 0) AS total").
		Scan(&p.Recebimentos).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&despesa.Despesa{}).
		Where("unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), despesa.StatusPendente).
		Select("COUNT(*) AS quantidade, COALESCE(SUM(valor), 0) AS total").
		Scan(&p.Pagamentos).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SerieAnual monta receita × despesa mês a mês, com os doze meses
// sempre presentes mesmo sem movimento.
func (r *repositoryImpl) SerieAnual(db *gorm.DB, unidadeID uint, ano int) ([]SerieMensal, error) {
	type linha struct {
		MesReferencia string
		Total         int64
	}
	sufixo := fmt.Sprintf("%%/%04d", ano)

	var receitas []linha
	err := db.Model(&pagamento.Pagamento{}).
		Where("unidade_id = ? AND mes_referencia LIKE ?", unidadeID, sufixo).
		Select("mes_referencia, COALESCE(SUM(valor), 0) AS total").
		Group("mes_referencia").Scan(&receitas).Error
	if err != nil {
		return nil, err
	}
	var despesas []linha
	err = db.Model(&despesa.Despesa{}).
		Where("unidade_id = ? AND mes_referencia LIKE ?", unidadeID, sufixo).
		Select("mes_referencia, COALESCE(SUM(valor), 0) AS total").
		Group("mes_referencia").Scan(&despesas).Error
	if err != nil {
		return nil, err
	}

	serie := make([]SerieMensal, 12)
	indice := make(map[string]*SerieMensal, 12)
	for m := 1; m <= 12; m++ {
		chave := mesref.Competencia{Ano: ano, Mes: time.Month(m)}.String()
		serie[m-1] = SerieMensal{Mes: chave}
		indice[chave] = &serie[m-1]
	}
	for _, l := range receitas {
		if ponto, ok := indice[l.MesReferencia]; ok {
			ponto.Receitas = l.Total
		}
	}
	for _, l := range despesas {
		if ponto, ok := indice[l.MesReferencia]; ok {
			ponto.Despesas = l.Total
		}
	}
	return serie, nil
}

func (r *repositoryImpl) DespesasPorCategoria(db *gorm.DB, unidadeID uint, mes mesref.Competencia) ([]CategoriaTotal, error) {
	var totais []CategoriaTotal
	err := db.Raw(`
		SELECT c.nome AS categoria, COALESCE(SUM(d.valor), 0) AS total
		FROM despesas d
		JOIN categorias_despesas c ON c.id = d.categoria_id
		WHERE d.unidade_id = ? AND d.mes_referencia = ?
		GROUP BY c.nome
		ORDER BY total DESC`,
		unidadeID, mes.String()).Scan(&totais).Error
	return totais, err
}

func (r *repositoryImpl) DistribuicaoMatriculas(db *gorm.DB, unidadeID uint) ([]DisciplinaTotal, error) {
	var totais []DisciplinaTotal
	err := db.Raw(`
		SELECT d.nome AS disciplina, COUNT(*) AS quantidade
		FROM matriculas m
		JOIN disciplinas d ON d.id = m.disciplina_id
		WHERE m.unidade_id = ? AND m.ativo
		GROUP BY d.nome
		ORDER BY quantidade DESC`,
		unidadeID).Scan(&totais).Error
	return totais, err
}

// Inadimplencia lista as cobranças pendentes já vencidas.
func (r *repositoryImpl) Inadimplencia(db *gorm.DB, unidadeID uint, hoje time.Time) (*Inadimplencia, error) {
	corte := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.UTC)

	var cobrancas []InadimplenteLinha
	err := db.Raw(`
		SELECT p.id AS pagamento_id, a.nome AS aluno, p.valor,
		       p.data_vencimento, p.mes_referencia
		FROM pagamentos p
		JOIN alunos a ON a.id = p.aluno_id
		WHERE p.unidade_id = ? AND p.status = ? AND p.data_vencimento < ?
		ORDER BY p.data_vencimento`,
		unidadeID, pagamento.StatusPendente, corte).Scan(&cobrancas).Error
	if err != nil {
		return nil, err
	}

	resultado := Inadimplencia{Cobrancas: cobrancas, Quantidade: int64(len(cobrancas))}
	for _, c := range cobrancas {
		resultado.Total += c.Valor
	}
	return &resultado, nil
}

// CustoRHAnual soma a folha (despesas ligadas a funcionários) por
// competência do ano.
func (r *repositoryImpl) CustoRHAnual(db *gorm.DB, unidadeID uint, ano int) ([]CustoRHMensal, error) {
	type linha struct {
		MesReferencia string
		Total         int64
	}
	sufixo := fmt.Sprintf("%%/%04d", ano)

	var linhas []linha
	err := db.Model(&despesa.Despesa{}).
		Where("unidade_id = ? AND funcionario_id IS NOT NULL AND mes_referencia LIKE ?", unidadeID, sufixo).
		Select("mes_referencia, COALESCE(SUM(valor), 0) AS total").
		Group("mes_referencia").Scan(&linhas).Error
	if err != nil {
		return nil, err
	}

	serie := make([]CustoRHMensal, 12)
	indice := make(map[string]*CustoRHMensal, 12)
	for m := 1; m <= 12; m++ {
		chave := mesref.Competencia{Ano: ano, Mes: time.Month(m)}.String()
		serie[m-1] = CustoRHMensal{Mes: chave}
		indice[chave] = &serie[m-1]
	}
	for _, l := range linhas {
		if ponto, ok := indice[l.MesReferencia]; ok {
			ponto.Total = l.Total
		}
	}
	return serie, nil
}

func (r *repositoryImpl) FuncionariosAtivos(db *gorm.DB, unidadeID uint) (int64, error) {
	var total int64
	err := db.Raw(`SELECT COUNT(*) FROM funcionarios WHERE unidade_id = ? AND ativo`,
		unidadeID).Scan(&total).Error
	return total, err
}

// MesesComFaturamento lista as competências com algum recebimento pago,
// da mais recente à mais antiga.
func (r *repositoryImpl) MesesComFaturamento(db *gorm.DB, unidadeID uint) ([]string, error) {
	var meses []string
	err := db.Model(&pagamento.Pagamento{}).
		Where("unidade_id = ? AND status = ?", unidadeID, pagamento.StatusPago).
		Distinct("mes_referencia").Pluck("mes_referencia", &meses).Error
	if err != nil {
		return nil, err
	}
	mesref.OrdenarDecrescente(meses)
	return meses, nil
}
