package relatorio

import (
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// AlunosDoPeriodo lista os alunos com matrícula vigente no intervalo
// (?inicio=YYYY-MM-DD&fim=YYYY-MM-DD)
func (h *Handler) AlunosDoPeriodo(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	inicio, err := time.Parse("2006-01-02", r.URL.Query().Get("inicio"))
	if err != nil {
		http.Error(w, "data de início inválida, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	fim, err := time.Parse("2006-01-02", r.URL.Query().Get("fim"))
	if err != nil {
		http.Error(w, "data de fim inválida, use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if fim.Before(inicio) {
		http.Error(w, "período inválido: fim antes do início", http.StatusBadRequest)
		return
	}

	linhas, err := h.Repository.AlunosDoPeriodo(h.DB, unidadeID, inicio, fim)
	if err != nil {
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}
