package catalogo

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

func (h *Handler) ListarDisciplinas(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarDisciplinas(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar disciplinas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) ListarCanais(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarCanais(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar canais de aquisição", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) ListarFormasPagamento(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarFormasPagamento(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar formas de pagamento", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) ListarCategoriasDespesas(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarCategoriasDespesas(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar categorias de despesas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}

func (h *Handler) ListarTiposContratacao(w http.ResponseWriter, r *http.Request) {
	lista, err := h.Repository.ListarTiposContratacao(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar tipos de contratação", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}
