package migracao

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
)

var validate = validator.New()

type importarRequest struct {
	Registros []Registro `json:"registros" validate:"required,min=1,dive"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Status informa se a unidade está pronta para a carga inicial
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	status, err := h.Repository.VerificarStatus(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao verificar status da migração", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(status)
}

// Importar executa a carga inicial, tudo ou nada
func (h *Handler) Importar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req importarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "registros com nome, disciplina e dia válido são obrigatórios", http.StatusBadRequest)
		return
	}

	resultado, err := h.Repository.Importar(h.DB, unidadeID, req.Registros, time.Now())
	if err != nil {
		http.Error(w, "erro na importação: "+err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resultado)
}
