package equipe

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// DescricaoSalario é o texto de exibição da despesa de salário. O
// vínculo real é a chave estrangeira funcionario_id.
func DescricaoSalario(nome string) string {
	return "Salário - " + nome
}

// DescricaoCusto é o texto de exibição da despesa de um custo pessoal.
func DescricaoCusto(custo, funcionario string) string {
	return custo + " - " + funcionario
}

// CategoriaDoCusto mapeia o tipo do custo para a categoria de despesa.
func CategoriaDoCusto(tipo string) uint {
	if tipo == TipoCustoImposto {
		return catalogo.CategoriaImpostos
	}
	return catalogo.CategoriaPessoal
}

type Repository interface {
	CadastrarCompleto(db *gorm.DB, f *Funcionario, custos []CustoPessoal) error
	Listar(db *gorm.DB, unidadeID uint, apenasAtivos bool) ([]Funcionario, error)
	BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error)
	Atualizar(db *gorm.DB, f *Funcionario, hoje time.Time) error
	AdicionarCusto(db *gorm.DB, c *CustoPessoal, hoje time.Time) error
	ExcluirCusto(db *gorm.DB, custoID, unidadeID uint) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

// CadastrarCompleto grava o funcionário e seus custos iniciais em uma
// transação. As despesas do mês ficam por conta do robô financeiro.
func (r *repositoryImpl) CadastrarCompleto(db *gorm.DB, f *Funcionario, custos []CustoPessoal) error {
	if f.SalarioBase < 0 {
		return fmt.Errorf("salário não pode ser negativo")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		f.Ativo = true
		if err := tx.Create(f).Error; err != nil {
			return err
		}
		for i := range custos {
			if custos[i].Valor < 0 {
				return fmt.Errorf("custo pessoal não pode ser negativo")
			}
			custos[i].UnidadeID = f.UnidadeID
			custos[i].FuncionarioID = f.ID
			if err := tx.Create(&custos[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repositoryImpl) Listar(db *gorm.DB, unidadeID uint, apenasAtivos bool) ([]Funcionario, error) {
	var funcionarios []Funcionario
	q := db.Preload("Custos").Where("unidade_id = ?", unidadeID)
	if apenasAtivos {
		q = q.Where("ativo")
	}
	err := q.Order("nome").Find(&funcionarios).Error
	return funcionarios, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Funcionario, error) {
	var f Funcionario
	err := db.Preload("Custos").First(&f, id).Error
	return &f, err
}

// Atualizar grava o funcionário e sincroniza a folha pendente pela
// chave estrangeira. No desligamento as pendências dele são removidas.
func (r *repositoryImpl) Atualizar(db *gorm.DB, f *Funcionario, hoje time.Time) error {
	if f.SalarioBase < 0 {
		return fmt.Errorf("salário não pode ser negativo")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var atual Funcionario
		if err := tx.First(&atual, f.ID).Error; err != nil {
			return err
		}
		if atual.UnidadeID != f.UnidadeID {
			return fmt.Errorf("funcionário %d não pertence à unidade %d", f.ID, f.UnidadeID)
		}

		if atual.Ativo && !f.Ativo {
			quando := hoje
			f.DataDesligamento = &quando
			if err := tx.Save(f).Error; err != nil {
				return err
			}
			// desligado: a folha pendente dele deixa de existir
			return tx.Where("funcionario_id = ? AND status = ?", f.ID, despesa.StatusPendente).
				Delete(&despesa.Despesa{}).Error
		}

		if err := tx.Save(f).Error; err != nil {
			return err
		}
		return tx.Model(&despesa.Despesa{}).
			Where("funcionario_id = ? AND custo_pessoal_id IS NULL AND status = ?", f.ID, despesa.StatusPendente).
			Updates(map[string]interface{}{
				"valor":     f.SalarioBase,
				"descricao": DescricaoSalario(f.Nome),
			}).Error
	})
}

// AdicionarCusto grava o custo e já materializa a despesa da
// competência corrente, caso ainda não exista.
func (r *repositoryImpl) AdicionarCusto(db *gorm.DB, c *CustoPessoal, hoje time.Time) error {
	if c.Valor < 0 {
		return fmt.Errorf("custo pessoal não pode ser negativo")
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var f Funcionario
		if err := tx.First(&f, c.FuncionarioID).Error; err != nil {
			return err
		}
		if f.UnidadeID != c.UnidadeID {
			return fmt.Errorf("funcionário %d não pertence à unidade %d", c.FuncionarioID, c.UnidadeID)
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		if c.Valor == 0 {
			return nil
		}

		mes := mesref.Nova(hoje)
		var existentes int64
		if err := tx.Model(&despesa.Despesa{}).
			Where("custo_pessoal_id = ? AND mes_referencia = ?", c.ID, mes.String()).
			Count(&existentes).Error; err != nil {
			return err
		}
		if existentes > 0 {
			return nil
		}

		d := despesa.Despesa{
			UnidadeID:      c.UnidadeID,
			CategoriaID:    CategoriaDoCusto(c.Tipo),
			Descricao:      DescricaoCusto(c.Nome, f.Nome),
			Valor:          c.Valor,
			DataVencimento: utils.DiaValido(hoje.Year(), hoje.Month(), c.DiaVencimento),
			MesReferencia:  mes,
			Status:         despesa.StatusPendente,
			FuncionarioID:  &c.FuncionarioID,
			CustoPessoalID: &c.ID,
		}
		return tx.Create(&d).Error
	})
}

// ExcluirCusto remove o custo e a despesa pendente materializada dele.
func (r *repositoryImpl) ExcluirCusto(db *gorm.DB, custoID, unidadeID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var c CustoPessoal
		if err := tx.First(&c, custoID).Error; err != nil {
			return err
		}
		if c.UnidadeID != unidadeID {
			return fmt.Errorf("custo %d não pertence à unidade %d", custoID, unidadeID)
		}
		if err := tx.Where("custo_pessoal_id = ? AND status = ?", custoID, despesa.StatusPendente).
			Delete(&despesa.Despesa{}).Error; err != nil {
			return err
		}
		return tx.Delete(&CustoPessoal{}, custoID).Error
	})
}
