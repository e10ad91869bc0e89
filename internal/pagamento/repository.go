package pagamento

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
)

type Repository interface {
	BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error)
	ListarPendentes(db *gorm.DB, unidadeID uint, filtroMes *mesref.Competencia) ([]ReciboPendente, error)
	RegistrarRecebimento(db *gorm.DB, unidadeID, pagamentoID, formaID uint, taxaCentavos int64, nomeAluno string, hoje time.Time) error
	Estornar(db *gorm.DB, unidadeID, pagamentoID uint) error
	FluxoCaixa(db *gorm.DB, unidadeID uint, mes mesref.Competencia) ([]MovimentoCaixa, error)
	MesesComMovimento(db *gorm.DB, unidadeID uint) ([]string, error)
	HistoricoDoAluno(db *gorm.DB, alunoID, unidadeID uint) ([]HistoricoAluno, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Pagamento, error) {
	var p Pagamento
	err := db.First(&p, id).Error
	return &p, err
}

func (r *repositoryImpl) ListarPendentes(db *gorm.DB, unidadeID uint, filtroMes *mesref.Competencia) ([]ReciboPendente, error) {
	sql := `
		SELECT p.id, p.data_vencimento,
		       a.nome AS aluno,
		       COALESCE(d.nome, 'Taxa') AS disciplina,
		       p.valor
		FROM pagamentos p
		LEFT JOIN matriculas m ON p.matricula_id = m.id
		LEFT JOIN disciplinas d ON m.disciplina_id = d.id
		JOIN alunos a ON p.aluno_id = a.id
		WHERE p.status = ? AND p.unidade_id = ?`
	args := []interface{}{StatusPendente, unidadeID}
	if filtroMes != nil {
		sql += " AND p.mes_referencia = ?"
		args = append(args, filtroMes.String())
	}
	sql += " ORDER BY p.data_vencimento"

	var linhas []ReciboPendente
	err := db.Raw(sql, args...).Scan(&linhas).Error
	return linhas, err
}

// RegistrarRecebimento dá baixa no pagamento e, havendo taxa de cartão,
// cria na mesma transação a despesa já paga vinculada pela origem.
func (r *repositoryImpl) RegistrarRecebimento(db *gorm.DB, unidadeID, pagamentoID, formaID uint, taxaCentavos int64, nomeAluno string, hoje time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Pagamento{}).
			Where("id = ? AND unidade_id = ? AND status = ?", pagamentoID, unidadeID, StatusPendente).
			Updates(map[string]interface{}{
				"status":             StatusPago,
				"data_pagamento":     hoje,
				"forma_pagamento_id": formaID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pagamento %d não encontrado ou já baixado", pagamentoID)
		}

		if taxaCentavos <= 0 {
			return nil
		}

		forma, err := catalogo.NewRepository().BuscarFormaPagamento(tx, formaID)
		if err != nil {
			return fmt.Errorf("forma de pagamento %d não encontrada: %w", formaID, err)
		}

		taxa := despesa.Despesa{
			UnidadeID:         unidadeID,
			CategoriaID:       catalogo.CategoriaTaxas,
			Descricao:         fmt.Sprintf("(%s) - %s", forma.Nome, nomeAluno),
			Valor:             taxaCentavos,
			DataVencimento:    hoje,
			MesReferencia:     mesref.Nova(hoje),
			Status:            despesa.StatusPaga,
			DataPagamento:     &hoje,
			PagamentoOrigemID: &pagamentoID,
		}
		return tx.Create(&taxa).Error
	})
}

// Estornar devolve o pagamento a pendente, limpa forma e data e apaga a
// taxa de cartão que nasceu dele. Tudo ou nada.
func (r *repositoryImpl) Estornar(db *gorm.DB, unidadeID, pagamentoID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Pagamento{}).
			Where("id = ? AND unidade_id = ?", pagamentoID, unidadeID).
			Updates(map[string]interface{}{
				"status":             StatusPendente,
				"data_pagamento":     nil,
				"forma_pagamento_id": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("pagamento %d não encontrado", pagamentoID)
		}

		// se estornou a entrada, a taxa "nunca existiu"
		return tx.Where("pagamento_origem_id = ?", pagamentoID).
			Delete(&despesa.Despesa{}).Error
	})
}

func (r *repositoryImpl) FluxoCaixa(db *gorm.DB, unidadeID uint, mes mesref.Competencia) ([]MovimentoCaixa, error) {
	var entradas []MovimentoCaixa
	err := db.Raw(`
		SELECT p.id, p.data_pagamento, 'Entrada' AS tipo, p.valor,
		       COALESCE(fp.nome, '') AS forma_pagamento,
		       a.nome || ' - ' || COALESCE(d.nome, 'Taxa') AS descricao
		FROM pagamentos p
		LEFT JOIN matriculas m ON p.matricula_id = m.id
		LEFT JOIN disciplinas d ON m.disciplina_id = d.id
		JOIN alunos a ON p.aluno_id = a.id
		LEFT JOIN formas_pagamento fp ON p.forma_pagamento_id = fp.id
		WHERE p.status = ? AND p.unidade_id = ? AND p.mes_referencia = ?`,
		StatusPago, unidadeID, mes.String()).Scan(&entradas).Error
	if err != nil {
		return nil, err
	}

	var saidas []MovimentoCaixa
	err = db.Raw(`
		SELECT ds.id, ds.data_pagamento, 'Saída' AS tipo, ds.valor,
		       '' AS forma_pagamento,
		       c.nome || ' - ' || ds.descricao AS descricao
		FROM despesas ds
		JOIN categorias_despesas c ON c.id = ds.categoria_id
		WHERE ds.status = ? AND ds.unidade_id = ? AND ds.mes_referencia = ?`,
		despesa.StatusPaga, unidadeID, mes.String()).Scan(&saidas).Error
	if err != nil {
		return nil, err
	}

	movimentos := append(entradas, saidas...)
	sort.Slice(movimentos, func(i, j int) bool {
		di, dj := movimentos[i].DataPagamento, movimentos[j].DataPagamento
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return di.After(*dj)
	})
	return movimentos, nil
}

func (r *repositoryImpl) MesesComMovimento(db *gorm.DB, unidadeID uint) ([]string, error) {
	var meses []string
	err := db.Raw(`
		SELECT DISTINCT mes_referencia FROM pagamentos WHERE unidade_id = ?
		UNION
		SELECT DISTINCT mes_referencia FROM despesas WHERE unidade_id = ?`,
		unidadeID, unidadeID).Scan(&meses).Error
	if err != nil {
		return nil, err
	}

	// ordena pela competência, não pelo texto
	mesref.OrdenarDecrescente(meses)
	return meses, nil
}

func (r *repositoryImpl) HistoricoDoAluno(db *gorm.DB, alunoID, unidadeID uint) ([]HistoricoAluno, error) {
	var linhas []HistoricoAluno
	err := db.Raw(`
		SELECT id, mes_referencia, valor, status, tipo
		FROM pagamentos
		WHERE aluno_id = ? AND unidade_id = ?
		ORDER BY id DESC`,
		alunoID, unidadeID).Scan(&linhas).Error
	return linhas, err
}
