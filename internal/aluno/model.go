package aluno

import (
	"time"

	"gorm.io/gorm"
)

// Aluno nunca é excluído fisicamente; a inatividade é derivada das
// matrículas.
type Aluno struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UnidadeID        uint      `gorm:"not null;index" json:"unidadeId"`
	Nome             string    `gorm:"size:255;not null" json:"nome"`
	ResponsavelNome  string    `gorm:"size:255;not null" json:"responsavelNome"`
	CPFResponsavel   string    `gorm:"size:14;column:cpf_responsavel" json:"cpfResponsavel"`
	CanalAquisicaoID uint      `gorm:"index" json:"canalAquisicaoId"`
	DataCadastro     time.Time `gorm:"not null" json:"dataCadastro"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Aluno{})
}
