package robo

import (
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/equipe"
	"github.com/EducaFranquia/api-unidade/internal/matricula"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// Resultado são as quantidades geradas em uma execução do robô.
type Resultado struct {
	Despesas     int `json:"despesas"`
	Mensalidades int `json:"mensalidades"`
	Folha        int `json:"folha"`
}

// Executar gera as pendências recorrentes da unidade para a data
// informada, em uma única transação:
//
//   - despesas recorrentes e folha de pagamento na competência corrente;
//   - mensalidades na competência corrente até o dia 20, na seguinte a
//     partir do dia 21 (antecipação dos boletos do mês que vem).
//
// A execução é idempotente: cada regra, matrícula e item de folha gera
// no máximo um registro por competência, então rodar de novo no mesmo
// mês não cria nada.
func Executar(db *gorm.DB, unidadeID uint, hoje time.Time) (Resultado, error) {
	mesAtual := mesref.Nova(hoje)
	mesBoletos := mesAtual
	if hoje.Day() >= 21 {
		mesBoletos = mesAtual.AdicionarMeses(1)
	}

	var resultado Resultado
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := gerarDespesasRecorrentes(tx, unidadeID, mesAtual, &resultado); err != nil {
			return err
		}
		if err := gerarMensalidades(tx, unidadeID, mesBoletos, &resultado); err != nil {
			return err
		}
		return gerarFolha(tx, unidadeID, mesAtual, &resultado)
	})
	if err != nil {
		return Resultado{}, err
	}
	return resultado, nil
}

func gerarDespesasRecorrentes(tx *gorm.DB, unidadeID uint, mes mesref.Competencia, resultado *Resultado) error {
	var regras []despesa.DespesaRecorrente
	if err := tx.Where("unidade_id = ? AND ativo", unidadeID).Find(&regras).Error; err != nil {
		return err
	}

	for i := range regras {
		regra := &regras[i]
		var existentes int64
		if err := tx.Model(&despesa.Despesa{}).
			Where("recorrente_id = ? AND mes_referencia = ?", regra.ID, mes.String()).
			Count(&existentes).Error; err != nil {
			return err
		}
		if existentes > 0 {
			continue
		}

		d := despesa.Despesa{
			UnidadeID:      unidadeID,
			CategoriaID:    regra.CategoriaID,
			Descricao:      regra.Descricao,
			Valor:          regra.Valor,
			DataVencimento: utils.DiaValido(mes.Ano, mes.Mes, regra.DiaVencimento),
			MesReferencia:  mes,
			Status:         despesa.StatusPendente,
			RecorrenteID:   &regra.ID,
		}
		if err := tx.Create(&d).Error; err != nil {
			return err
		}
		resultado.Despesas++
	}
	return nil
}

func gerarMensalidades(tx *gorm.DB, unidadeID uint, mes mesref.Competencia, resultado *Resultado) error {
	var matriculas []matricula.Matricula
	if err := tx.Where("unidade_id = ? AND ativo", unidadeID).Find(&matriculas).Error; err != nil {
		return err
	}

	for i := range matriculas {
		m := &matriculas[i]
		var existentes int64
		if err := tx.Model(&pagamento.Pagamento{}).
			Where("matricula_id = ? AND mes_referencia = ?", m.ID, mes.String()).
			Count(&existentes).Error; err != nil {
			return err
		}
		if existentes > 0 {
			continue
		}

		valor := m.ValorAcordado
		if m.BolsaAtiva && m.BolsaMesesRestantes > 0 {
			valor = utils.MetadeValor(m.ValorAcordado)
			restantes := m.BolsaMesesRestantes - 1
			if err := tx.Model(&matricula.Matricula{}).Where("id = ?", m.ID).
				Updates(map[string]interface{}{
					"bolsa_meses_restantes": restantes,
					"bolsa_ativa":           restantes > 0,
				}).Error; err != nil {
				return err
			}
		}

		p := pagamento.Pagamento{
			UnidadeID:      unidadeID,
			MatriculaID:    &m.ID,
			AlunoID:        m.AlunoID,
			MesReferencia:  mes,
			DataVencimento: utils.DiaValido(mes.Ano, mes.Mes, m.DiaVencimento),
			Valor:          valor,
			Status:         pagamento.StatusPendente,
			Tipo:           pagamento.TipoMensalidade,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		resultado.Mensalidades++
	}
	return nil
}

func gerarFolha(tx *gorm.DB, unidadeID uint, mes mesref.Competencia, resultado *Resultado) error {
	var funcionarios []equipe.Funcionario
	if err := tx.Preload("Custos").Where("unidade_id = ? AND ativo", unidadeID).
		Find(&funcionarios).Error; err != nil {
		return err
	}

	for i := range funcionarios {
		f := &funcionarios[i]
		if f.SalarioBase > 0 {
			var existentes int64
			if err := tx.Model(&despesa.Despesa{}).
				Where("funcionario_id = ? AND custo_pessoal_id IS NULL AND mes_referencia = ?", f.ID, mes.String()).
				Count(&existentes).Error; err != nil {
				return err
			}
			if existentes == 0 {
				d := despesa.Despesa{
					UnidadeID:      unidadeID,
					CategoriaID:    catalogo.CategoriaPessoal,
					Descricao:      equipe.DescricaoSalario(f.Nome),
					Valor:          f.SalarioBase,
					DataVencimento: utils.DiaValido(mes.Ano, mes.Mes, f.DiaPagamento),
					MesReferencia:  mes,
					Status:         despesa.StatusPendente,
					FuncionarioID:  &f.ID,
				}
				if err := tx.Create(&d).Error; err != nil {
					return err
				}
				resultado.Folha++
			}
		}

		for j := range f.Custos {
			c := &f.Custos[j]
			if c.Valor <= 0 {
				continue
			}
			var existentes int64
			if err := tx.Model(&despesa.Despesa{}).
				Where("custo_pessoal_id = ? AND mes_referencia = ?", c.ID, mes.String()).
				Count(&existentes).Error; err != nil {
				return err
			}
			if existentes > 0 {
				continue
			}

			d := despesa.Despesa{
				UnidadeID:      unidadeID,
				CategoriaID:    equipe.CategoriaDoCusto(c.Tipo),
				Descricao:      equipe.DescricaoCusto(c.Nome, f.Nome),
				Valor:          c.Valor,
				DataVencimento: utils.DiaValido(mes.Ano, mes.Mes, c.DiaVencimento),
				MesReferencia:  mes,
				Status:         despesa.StatusPendente,
				FuncionarioID:  &c.FuncionarioID,
				CustoPessoalID: &c.ID,
			}
			if err := tx.Create(&d).Error; err != nil {
				return err
			}
			resultado.Folha++
		}
	}
	return nil
}
