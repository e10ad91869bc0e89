package usuario

import (
	"time"

	"gorm.io/gorm"
)

// Usuario é a credencial de acesso ao sistema, identificada por username.
type Usuario struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:100;not null;uniqueIndex" json:"username"`
	NomeCompleto string    `gorm:"size:255;not null" json:"nomeCompleto"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Admin        bool      `gorm:"not null;default:false" json:"admin"`
	Ativo        bool      `gorm:"not null;default:true" json:"ativo"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Unidades []UsuarioUnidade `gorm:"foreignKey:UsuarioID" json:"unidades"`
}

// UsuarioUnidade é o vínculo de acesso usuário ↔ unidade.
type UsuarioUnidade struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UsuarioID uint `gorm:"not null;index:idx_usuario_unidade,unique" json:"usuarioId"`
	UnidadeID uint `gorm:"not null;index:idx_usuario_unidade,unique" json:"unidadeId"`
}

func (UsuarioUnidade) TableName() string { return "usuario_unidades" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Usuario{}, &UsuarioUnidade{})
}
