package cofre

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
)

type Repository interface {
	Criar(db *gorm.DB, c *Cofre) error
	Listar(db *gorm.DB, unidadeID uint) ([]Cofre, error)
	AtualizarPercentuais(db *gorm.DB, unidadeID uint, percentuais map[uint]int) error
	LucroRealizado(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (int64, error)
	DistribuirLucro(db *gorm.DB, unidadeID uint, valores map[uint]int64, mes mesref.Competencia, quando time.Time) error
	Saque(db *gorm.DB, unidadeID, cofreID uint, valor int64, motivo string, quando time.Time) error
	Extrato(db *gorm.DB, unidadeID, cofreID uint) ([]Movimentacao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, c *Cofre) error {
	if c.PercentualPadrao < 0 || c.PercentualPadrao > 100 {
		return fmt.Errorf("percentual deve estar entre 0 e 100")
	}
	c.SaldoAtual = 0
	return db.Create(c).Error
}

func (r *repositoryImpl) Listar(db *gorm.DB, unidadeID uint) ([]Cofre, error) {
	var cofres []Cofre
	err := db.Where("unidade_id = ?", unidadeID).Order("nome").Find(&cofres).Error
	return cofres, err
}

// AtualizarPercentuais grava todos os percentuais ou nenhum.
func (r *repositoryImpl) AtualizarPercentuais(db *gorm.DB, unidadeID uint, percentuais map[uint]int) error {
	for id, p := range percentuais {
		if p < 0 || p > 100 {
			return fmt.Errorf("percentual do cofre %d deve estar entre 0 e 100", id)
		}
	}
	return db.Transaction(func(tx *gorm.DB) error {
		for id, p := range percentuais {
			res := tx.Model(&Cofre{}).
				Where("id = ? AND unidade_id = ?", id, unidadeID).
				Update("percentual_padrao", p)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("cofre %d não encontrado na unidade %d", id, unidadeID)
			}
		}
		return nil
	})
}

// LucroRealizado soma recebimentos pagos menos despesas pagas da
// competência. Resultado negativo é reportado como zero: não há lucro
// a distribuir.
func (r *repositoryImpl) LucroRealizado(db *gorm.DB, unidadeID uint, mes mesref.Competencia) (int64, error) {
	var receitas, saidas int64
	err := db.Model(&pagamento.Pagamento{}).
		Where("unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), pagamento.StatusPago).
		Select("COALESCE(SUM(valor), 0)").Scan(&receitas).Error
	if err != nil {
		return 0, err
	}
	err = db.Model(&despesa.Despesa{}).
		Where("unidade_id = ? AND mes_referencia = ? AND status = ?", unidadeID, mes.String(), despesa.StatusPaga).
		Select("COALESCE(SUM(valor), 0)").Scan(&saidas).Error
	if err != nil {
		return 0, err
	}

	lucro := receitas - saidas
	if lucro < 0 {
		lucro = 0
	}
	return lucro, nil
}

// DistribuirLucro credita cada cofre e registra a entrada no extrato,
// tudo ou nada. Um ID desconhecido ou de outra unidade aborta a
// distribuição inteira.
func (r *repositoryImpl) DistribuirLucro(db *gorm.DB, unidadeID uint, valores map[uint]int64, mes mesref.Competencia, quando time.Time) error {
	referencia := uuid.NewString()
	return db.Transaction(func(tx *gorm.DB) error {
		for cofreID, valor := range valores {
			if valor <= 0 {
				continue
			}
			var c Cofre
			if err := tx.First(&c, cofreID).Error; err != nil {
				return fmt.Errorf("cofre %d não encontrado", cofreID)
			}
			if c.UnidadeID != unidadeID {
				return fmt.Errorf("cofre %d não pertence à unidade %d", cofreID, unidadeID)
			}

			if err := tx.Model(&Cofre{}).Where("id = ?", cofreID).
				Update("saldo_atual", gorm.Expr("saldo_atual + ?", valor)).Error; err != nil {
				return err
			}
			mov := Movimentacao{
				CofreID:    cofreID,
				Tipo:       TipoEntrada,
				Valor:      valor,
				Descricao:  "Distribuição de Lucro - " + mes.String(),
				Data:       quando,
				Referencia: referencia,
			}
			if err := tx.Create(&mov).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Saque debita o cofre e registra a saída. O saldo pode ficar negativo;
// o extrato conta a história.
func (r *repositoryImpl) Saque(db *gorm.DB, unidadeID, cofreID uint, valor int64, motivo string, quando time.Time) error {
	if valor <= 0 {
		return fmt.Errorf("valor do saque deve ser positivo")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var c Cofre
		if err := tx.First(&c, cofreID).Error; err != nil {
			return err
		}
		if c.UnidadeID != unidadeID {
			return fmt.Errorf("cofre %d não pertence à unidade %d", cofreID, unidadeID)
		}

		if err := tx.Model(&Cofre{}).Where("id = ?", cofreID).
			Update("saldo_atual", gorm.Expr("saldo_atual - ?", valor)).Error; err != nil {
			return err
		}
		mov := Movimentacao{
			CofreID:    cofreID,
			Tipo:       TipoSaida,
			Valor:      valor,
			Descricao:  motivo,
			Data:       quando,
			Referencia: uuid.NewString(),
		}
		return tx.Create(&mov).Error
	})
}

func (r *repositoryImpl) Extrato(db *gorm.DB, unidadeID, cofreID uint) ([]Movimentacao, error) {
	var c Cofre
	if err := db.First(&c, cofreID).Error; err != nil {
		return nil, err
	}
	if c.UnidadeID != unidadeID {
		return nil, fmt.Errorf("cofre %d não pertence à unidade %d", cofreID, unidadeID)
	}

	var movimentacoes []Movimentacao
	err := db.Where("cofre_id = ?", cofreID).
		Order("data DESC, id DESC").Find(&movimentacoes).Error
	return movimentacoes, err
}
