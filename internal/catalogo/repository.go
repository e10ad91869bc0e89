package catalogo

import "gorm.io/gorm"

type Repository interface {
	ListarDisciplinas(db *gorm.DB) ([]Disciplina, error)
	BuscarDisciplinaPorNome(db *gorm.DB, nome string) (*Disciplina, error)
	ListarCanais(db *gorm.DB) ([]CanalAquisicao, error)
	ListarFormasPagamento(db *gorm.DB) ([]FormaPagamento, error)
	BuscarFormaPagamento(db *gorm.DB, id uint) (*FormaPagamento, error)
	ListarCategoriasDespesas(db *gorm.DB) ([]CategoriaDespesa, error)
	ListarTiposContratacao(db *gorm.DB) ([]TipoContratacao, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) ListarDisciplinas(db *gorm.DB) ([]Disciplina, error) {
	var lista []Disciplina
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) BuscarDisciplinaPorNome(db *gorm.DB, nome string) (*Disciplina, error) {
	var d Disciplina
	err := db.Where("nome = ?", nome).First(&d).Error
	return &d, err
}

func (r *repositoryImpl) ListarCanais(db *gorm.DB) ([]CanalAquisicao, error) {
	var lista []CanalAquisicao
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarFormasPagamento(db *gorm.DB) ([]FormaPagamento, error) {
	var lista []FormaPagamento
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) BuscarFormaPagamento(db *gorm.DB, id uint) (*FormaPagamento, error) {
	var f FormaPagamento
	err := db.First(&f, id).Error
	return &f, err
}

func (r *repositoryImpl) ListarCategoriasDespesas(db *gorm.DB) ([]CategoriaDespesa, error) {
	var lista []CategoriaDespesa
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

func (r *repositoryImpl) ListarTiposContratacao(db *gorm.DB) ([]TipoContratacao, error) {
	var lista []TipoContratacao
	err := db.Order("nome").Find(&lista).Error
	return lista, err
}

// Seed garante os registros de apoio mínimos, inclusive as categorias
// fixas usadas pelo robô financeiro.
func Seed(db *gorm.DB) error {
	categorias := []CategoriaDespesa{
		{ID: CategoriaPessoal, Nome: "Pessoal"},
		{ID: CategoriaImpostos, Nome: "Impostos"},
		{ID: CategoriaTaxas, Nome: "Taxas de Cartão"},
		{ID: 4, Nome: "Ocupação"},
		{ID: 5, Nome: "Serviços"},
	}
	for _, c := range categorias {
		if err := db.Where("id = ?", c.ID).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	disciplinas := []string{"Matemática", "Português", "Inglês", "Japonês"}
	for _, nome := range disciplinas {
		d := Disciplina{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(&d).Error; err != nil {
			return err
		}
	}

	canais := []string{"Indicação", "Instagram", "Google", "Fachada", "Outros"}
	for _, nome := range canais {
		c := CanalAquisicao{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	formas := []string{"PIX", "Dinheiro", "Cartão de Crédito", "Cartão de Débito", "Boleto"}
	for _, nome := range formas {
		f := FormaPagamento{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(&f).Error; err != nil {
			return err
		}
	}

	tipos := []string{"CLT", "PJ", "Estágio", "Horista"}
	for _, nome := range tipos {
		t := TipoContratacao{Nome: nome}
		if err := db.Where("nome = ?", nome).FirstOrCreate(&t).Error; err != nil {
			return err
		}
	}
	return nil
}
