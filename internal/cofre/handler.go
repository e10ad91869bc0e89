package cofre

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

type cofreRequest struct {
	Nome             string `json:"nome" validate:"required"`
	Descricao        string `json:"descricao"`
	PercentualPadrao int    `json:"percentualPadrao" validate:"min=0,max=100"`
}

type distribuirRequest struct {
	Mes     string           `json:"mes" validate:"required"`
	Valores map[uint]float64 `json:"valores" validate:"required,min=1"`
}

type saqueRequest struct {
	Valor  float64 `json:"valor" validate:"gt=0"`
	Motivo string  `json:"motivo" validate:"required"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Criar adiciona um cofre à unidade
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req cofreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome e percentual entre 0 e 100 são obrigatórios", http.StatusBadRequest)
		return
	}

	c := Cofre{
		UnidadeID:        unidadeID,
		Nome:             req.Nome,
		Descricao:        req.Descricao,
		PercentualPadrao: req.PercentualPadrao,
	}
	if err := h.Repository.Criar(h.DB, &c); err != nil {
		http.Error(w, "erro ao criar cofre", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Listar retorna os cofres da unidade com seus saldos
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	cofres, err := h.Repository.Listar(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar cofres", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(cofres)
}

// AtualizarPercentuais grava os percentuais padrão de todos os cofres
func (h *Handler) AtualizarPercentuais(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var percentuais map[uint]int
	if err := json.NewDecoder(r.Body).Decode(&percentuais); err != nil || len(percentuais) == 0 {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.AtualizarPercentuais(h.DB, unidadeID, percentuais); err != nil {
		http.Error(w, "erro ao atualizar percentuais", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("percentuais atualizados com sucesso"))
}

// LucroRealizado retorna o lucro apurado da competência (?mes=MM/YYYY)
func (h *Handler) LucroRealizado(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	mes, err := mesref.Parse(r.URL.Query().Get("mes"))
	if err != nil {
		http.Error(w, "mês de referência inválido, use MM/YYYY", http.StatusBadRequest)
		return
	}

	lucro, err := h.Repository.LucroRealizado(h.DB, unidadeID, mes)
	if err != nil {
		http.Error(w, "erro ao apurar lucro", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"mes":   mes.String(),
		"lucro": lucro,
	})
}

// Distribuir credita os cofres com os valores informados
func (h *Handler) Distribuir(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req distribuirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "mês e valores são obrigatórios", http.StatusBadRequest)
		return
	}
	mes, err := mesref.Parse(req.Mes)
	if err != nil {
		http.Error(w, "mês de referência inválido, use MM/YYYY", http.StatusBadRequest)
		return
	}

	valores := make(map[uint]int64, len(req.Valores))
	for id, v := range req.Valores {
		valores[id] = utils.ToCents(v)
	}
	if err := h.Repository.DistribuirLucro(h.DB, unidadeID, valores, mes, time.Now()); err != nil {
		http.Error(w, "erro ao distribuir lucro", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("lucro distribuído com sucesso"))
}

// Sacar registra uma retirada do cofre
func (h *Handler) Sacar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	cofreID, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req saqueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "valor positivo e motivo são obrigatórios", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Saque(h.DB, unidadeID, cofreID, utils.ToCents(req.Valor), req.Motivo, time.Now()); err != nil {
		http.Error(w, "erro ao registrar saque", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("saque registrado com sucesso"))
}

// Extrato lista as movimentações do cofre, da mais recente à mais antiga
func (h *Handler) Extrato(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	cofreID, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	movimentacoes, err := h.Repository.Extrato(h.DB, unidadeID, cofreID)
	if err != nil {
		http.Error(w, "cofre não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(movimentacoes)
}
