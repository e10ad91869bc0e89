package despesa

import (
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

type Repository interface {
	AdicionarAvulsa(db *gorm.DB, d *Despesa) error
	AdicionarRecorrente(db *gorm.DB, regra *DespesaRecorrente, hoje time.Time) error
	ListarRecorrencias(db *gorm.DB, unidadeID uint, apenasAtivas bool) ([]DespesaRecorrente, error)
	BuscarRecorrencia(db *gorm.DB, id uint) (*DespesaRecorrente, error)
	AtualizarRecorrencia(db *gorm.DB, regra *DespesaRecorrente) error
	EncerrarRecorrencia(db *gorm.DB, id uint) error
	ListarPendentes(db *gorm.DB, unidadeID uint, filtroMes *mesref.Competencia) ([]Despesa, error)
	Pagar(db *gorm.DB, despesaID uint, dataPagamento time.Time) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) AdicionarAvulsa(db *gorm.DB, d *Despesa) error {
	d.MesReferencia = mesref.Nova(d.DataVencimento)
	d.Status = StatusPendente
	return db.Create(d).Error
}

// AdicionarRecorrente grava a regra e já materializa a despesa da
// competência corrente, em uma transação.
func (r *repositoryImpl) AdicionarRecorrente(db *gorm.DB, regra *DespesaRecorrente, hoje time.Time) error {
	return db.Transaction(func(tx *gorm.DB) error {
		regra.Ativo = true
		if err := tx.Create(regra).Error; err != nil {
			return err
		}

		vencimento := utils.DiaValido(hoje.Year(), hoje.Month(), regra.DiaVencimento)
		materializada := Despesa{
			UnidadeID:      regra.UnidadeID,
			CategoriaID:    regra.CategoriaID,
			Descricao:      regra.Descricao,
			Valor:          regra.Valor,
			DataVencimento: vencimento,
			MesReferencia:  mesref.Nova(hoje),
			Status:         StatusPendente,
			RecorrenteID:   &regra.ID,
		}
		return tx.Create(&materializada).Error
	})
}

func (r *repositoryImpl) ListarRecorrencias(db *gorm.DB, unidadeID uint, apenasAtivas bool) ([]DespesaRecorrente, error) {
	var regras []DespesaRecorrente
	q := db.Where("unidade_id = ?", unidadeID)
	if apenasAtivas {
		q = q.Where("ativo")
	}
	err := q.Order("descricao").Find(&regras).Error
	return regras, err
}

func (r *repositoryImpl) BuscarRecorrencia(db *gorm.DB, id uint) (*DespesaRecorrente, error) {
	var regra DespesaRecorrente
	err := db.First(&regra, id).Error
	return &regra, err
}

// AtualizarRecorrencia grava a regra e propaga valor/descrição/categoria
// para as despesas pendentes já materializadas dela.
func (r *repositoryImpl) AtualizarRecorrencia(db *gorm.DB, regra *DespesaRecorrente) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(regra).Error; err != nil {
			return err
		}
		if !regra.Ativo {
			return nil
		}
		return tx.Model(&Despesa{}).
			Where("recorrente_id = ? AND status = ? AND unidade_id = ?", regra.ID, StatusPendente, regra.UnidadeID).
			Updates(map[string]interface{}{
				"valor":        regra.Valor,
				"descricao":    regra.Descricao,
				"categoria_id": regra.CategoriaID,
			}).Error
	})
}

func (r *repositoryImpl) EncerrarRecorrencia(db *gorm.DB, id uint) error {
	return db.Model(&DespesaRecorrente{}).Where("id = ?", id).Update("ativo", false).Error
}

func (r *repositoryImpl) ListarPendentes(db *gorm.DB, unidadeID uint, filtroMes *mesref.Competencia) ([]Despesa, error) {
	var despesas []Despesa
	q := db.Where("status = ? AND unidade_id = ?", StatusPendente, unidadeID)
	if filtroMes != nil {
		q = q.Where("mes_referencia = ?", filtroMes.String())
	}
	err := q.Order("data_vencimento").Find(&despesas).Error
	return despesas, err
}

func (r *repositoryImpl) Pagar(db *gorm.DB, despesaID uint, dataPagamento time.Time) error {
	return db.Model(&Despesa{}).Where("id = ?", despesaID).Updates(map[string]interface{}{
		"status":         StatusPaga,
		"data_pagamento": dataPagamento,
	}).Error
}
