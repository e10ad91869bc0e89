package robo

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
)

type Handler struct {
	DB *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db}
}

// Executar roda o robô financeiro da unidade e retorna o que foi gerado
func (h *Handler) Executar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	resultado, err := Executar(h.DB, unidadeID, time.Now())
	if err != nil {
		http.Error(w, "erro ao executar o robô financeiro", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resultado)
}
