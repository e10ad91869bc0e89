package aluno

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

type atualizarAlunoRequest struct {
	Nome        string `json:"nome" validate:"required"`
	Responsavel string `json:"responsavel" validate:"required"`
	CPF         string `json:"cpf"`
	CanalID     uint   `json:"canalId"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// ListarGrid retorna a listagem de alunos da unidade com status derivado
func (h *Handler) ListarGrid(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	termo := r.URL.Query().Get("termo")
	filtro := r.URL.Query().Get("status")
	if filtro == "" {
		filtro = FiltroAtivos
	}

	linhas, err := h.Repository.ListarGrid(h.DB, unidadeID, termo, filtro)
	if err != nil {
		http.Error(w, "erro ao listar alunos", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}

// BuscarPorID retorna os dados cadastrais de um aluno
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	obj, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil || obj.UnidadeID != unidadeID {
		http.Error(w, "aluno não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(obj)
}

// AtualizarCadastro altera nome, responsável, CPF e canal de aquisição
func (h *Handler) AtualizarCadastro(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarAlunoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome e responsável são obrigatórios", http.StatusBadRequest)
		return
	}

	cpf := utils.LimparCPF(req.CPF)
	if cpf != "" {
		if !utils.ValidarCPF(cpf) {
			http.Error(w, "CPF inválido", http.StatusBadRequest)
			return
		}
		cpf = utils.FormatarCPF(cpf)
	}

	obj, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil || obj.UnidadeID != unidadeID {
		http.Error(w, "aluno não encontrado", http.StatusNotFound)
		return
	}

	if err := h.Repository.AtualizarCadastro(h.DB, id, req.Nome, req.Responsavel, cpf, req.CanalID); err != nil {
		http.Error(w, "erro ao atualizar aluno", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("aluno atualizado com sucesso"))
}
