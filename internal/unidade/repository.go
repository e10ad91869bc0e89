package unidade

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Criar(db *gorm.DB, u *Unidade) error
	ListarTodas(db *gorm.DB) ([]Unidade, error)
	BuscarPorID(db *gorm.DB, id uint) (*Unidade, error)

	BuscarParametros(db *gorm.DB, unidadeID uint) (*Parametros, error)
	SalvarParametros(db *gorm.DB, p *Parametros) error

	ListarRoyalties(db *gorm.DB, unidadeID uint) ([]ConfigRoyalty, error)
	AdicionarRoyalty(db *gorm.DB, r *ConfigRoyalty) error
	ExcluirRoyalty(db *gorm.DB, id, unidadeID uint) error

	BuscarTemplate(db *gorm.DB, unidadeID uint, tipo string) (*DocTemplate, error)
	SalvarTemplate(db *gorm.DB, t *DocTemplate) error
	ExcluirTemplate(db *gorm.DB, unidadeID uint, tipo string) error
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) Criar(db *gorm.DB, u *Unidade) error {
	return db.Create(u).Error
}

func (r *repositoryImpl) ListarTodas(db *gorm.DB) ([]Unidade, error) {
	var unidades []Unidade
	err := db.Order("nome").Find(&unidades).Error
	return unidades, err
}

func (r *repositoryImpl) BuscarPorID(db *gorm.DB, id uint) (*Unidade, error) {
	var u Unidade
	err := db.First(&u, id).Error
	return &u, err
}

// BuscarParametros devolve os parâmetros da unidade; se nunca foram
// gravados, devolve o fallback zerado sem erro.
func (r *repositoryImpl) BuscarParametros(db *gorm.DB, unidadeID uint) (*Parametros, error) {
	var p Parametros
	err := db.Where("unidade_id = ?", unidadeID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Parametros{UnidadeID: unidadeID}, nil
	}
	return &p, err
}

// SalvarParametros faz upsert pela unidade (um registro por unidade).
func (r *repositoryImpl) SalvarParametros(db *gorm.DB, p *Parametros) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "unidade_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"valor_mensalidade_padrao", "valor_taxa_matricula", "em_campanha_matricula",
		}),
	}).Create(p).Error
}

func (r *repositoryImpl) ListarRoyalties(db *gorm.DB, unidadeID uint) ([]ConfigRoyalty, error) {
	var lista []ConfigRoyalty
	err := db.Where("unidade_id = ?", unidadeID).Order("ano_mes_inicio DESC").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) AdicionarRoyalty(db *gorm.DB, royalty *ConfigRoyalty) error {
	return db.Create(royalty).Error
}

// ExcluirRoyalty remove a regra apenas se ela pertencer à unidade.
func (r *repositoryImpl) ExcluirRoyalty(db *gorm.DB, id, unidadeID uint) error {
	res := db.Where("id = ? AND unidade_id = ?", id, unidadeID).Delete(&ConfigRoyalty{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) BuscarTemplate(db *gorm.DB, unidadeID uint, tipo string) (*DocTemplate, error) {
	var t DocTemplate
	err := db.Where("unidade_id = ? AND tipo = ?", unidadeID, tipo).First(&t).Error
	return &t, err
}

// SalvarTemplate substitui o modelo anterior do mesmo tipo, se houver.
func (r *repositoryImpl) SalvarTemplate(db *gorm.DB, t *DocTemplate) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("unidade_id = ? AND tipo = ?", t.UnidadeID, t.Tipo).
			Delete(&DocTemplate{}).Error; err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

func (r *repositoryImpl) ExcluirTemplate(db *gorm.DB, unidadeID uint, tipo string) error {
	return db.Where("unidade_id = ? AND tipo = ?", unidadeID, tipo).Delete(&DocTemplate{}).Error
}
