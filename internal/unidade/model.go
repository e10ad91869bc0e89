package unidade

import (
	"time"

	"gorm.io/gorm"
)

// Unidade é a franquia (tenant). Todo o restante do sistema referencia
// uma unidade por chave estrangeira.
type Unidade struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"size:255;not null" json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Parametros guarda as configurações de matrícula da unidade.
// Valores monetários em centavos.
type Parametros struct {
	ID                      uint  `gorm:"primaryKey" json:"id"`
	UnidadeID               uint  `gorm:"not null;uniqueIndex" json:"unidadeId"`
	ValorMensalidadePadrao  int64 `gorm:"not null;default:0" json:"valorMensalidadePadrao"`
	ValorTaxaMatricula      int64 `gorm:"not null;default:0" json:"valorTaxaMatricula"`
	EmCampanhaMatricula     bool  `gorm:"not null;default:false" json:"emCampanhaMatricula"`
}

// ConfigRoyalty é uma regra de royalty vigente entre duas competências.
type ConfigRoyalty struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UnidadeID    uint   `gorm:"not null;index" json:"unidadeId"`
	Valor        int64  `gorm:"not null;default:0" json:"valor"`
	AnoMesInicio string `gorm:"size:7;not null" json:"anoMesInicio"`
	AnoMesFim    string `gorm:"size:7" json:"anoMesFim"`
}

func (ConfigRoyalty) TableName() string { return "config_royalties" }

// DocTemplate guarda o modelo de contrato (.docx) da unidade. O
// preenchimento do documento é responsabilidade da camada de UI.
type DocTemplate struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	UnidadeID      uint   `gorm:"not null;index:idx_doc_unidade_tipo,unique" json:"unidadeId"`
	Tipo           string `gorm:"size:50;not null;default:'CONTRATO';index:idx_doc_unidade_tipo,unique" json:"tipo"`
	NomeArquivo    string `gorm:"size:255;not null" json:"nomeArquivo"`
	ArquivoBinario []byte `gorm:"type:bytea" json:"-"`
}

func (DocTemplate) TableName() string { return "docs_templates" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Unidade{}, &Parametros{}, &ConfigRoyalty{}, &DocTemplate{})
}
