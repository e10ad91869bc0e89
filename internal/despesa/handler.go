package despesa

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

type despesaAvulsaRequest struct {
	CategoriaID    uint    `json:"categoriaId" validate:"required"`
	Descricao      string  `json:"descricao" validate:"required"`
	Valor          float64 `json:"valor" validate:"gt=0"`
	DataVencimento string  `json:"dataVencimento" validate:"required"`
}

type recorrenteRequest struct {
	CategoriaID   uint    `json:"categoriaId" validate:"required"`
	Descricao     string  `json:"descricao" validate:"required"`
	Valor         float64 `json:"valor" validate:"gt=0"`
	DiaVencimento int     `json:"diaVencimento" validate:"min=1,max=31"`
	Ativo         bool    `json:"ativo"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// AdicionarAvulsa registra uma conta a pagar pontual
func (h *Handler) AdicionarAvulsa(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req despesaAvulsaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "categoria, descrição, valor positivo e vencimento são obrigatórios", http.StatusBadRequest)
		return
	}
	vencimento, err := time.Parse("2006-01-02", req.DataVencimento)
	if err != nil {
		http.Error(w, "data de vencimento inválida", http.StatusBadRequest)
		return
	}

	d := Despesa{
		UnidadeID:      unidadeID,
		CategoriaID:    req.CategoriaID,
		Descricao:      req.Descricao,
		Valor:          utils.ToCents(req.Valor),
		DataVencimento: vencimento,
	}
	if err := h.Repository.AdicionarAvulsa(h.DB, &d); err != nil {
		http.Error(w, "erro ao registrar despesa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(d)
}

// AdicionarRecorrente cria a regra e a despesa do mês corrente
func (h *Handler) AdicionarRecorrente(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req recorrenteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "categoria, descrição, valor positivo e dia (1-31) são obrigatórios", http.StatusBadRequest)
		return
	}

	regra := DespesaRecorrente{
		UnidadeID:     unidadeID,
		CategoriaID:   req.CategoriaID,
		Descricao:     req.Descricao,
		Valor:         utils.ToCents(req.Valor),
		DiaVencimento: req.DiaVencimento,
	}
	if err := h.Repository.AdicionarRecorrente(h.DB, &regra, time.Now()); err != nil {
		http.Error(w, "erro ao criar despesa recorrente", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(regra)
}

// ListarRecorrencias lista as regras da unidade (?todas=1 inclui inativas)
func (h *Handler) ListarRecorrencias(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	apenasAtivas := r.URL.Query().Get("todas") == ""

	regras, err := h.Repository.ListarRecorrencias(h.DB, unidadeID, apenasAtivas)
	if err != nil {
		http.Error(w, "erro ao listar recorrências", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(regras)
}

// AtualizarRecorrencia altera a regra e sincroniza as pendências geradas
func (h *Handler) AtualizarRecorrencia(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req recorrenteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "categoria, descrição, valor positivo e dia (1-31) são obrigatórios", http.StatusBadRequest)
		return
	}

	regra, err := h.Repository.BuscarRecorrencia(h.DB, id)
	if err != nil || regra.UnidadeID != unidadeID {
		http.Error(w, "recorrência não encontrada", http.StatusNotFound)
		return
	}

	regra.CategoriaID = req.CategoriaID
	regra.Descricao = req.Descricao
	regra.Valor = utils.ToCents(req.Valor)
	regra.DiaVencimento = req.DiaVencimento
	regra.Ativo = req.Ativo

	if err := h.Repository.AtualizarRecorrencia(h.DB, regra); err != nil {
		http.Error(w, "erro ao atualizar recorrência", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(regra)
}

// EncerrarRecorrencia desativa a regra (as despesas já geradas ficam)
func (h *Handler) EncerrarRecorrencia(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	regra, err := h.Repository.BuscarRecorrencia(h.DB, id)
	if err != nil || regra.UnidadeID != unidadeID {
		http.Error(w, "recorrência não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repository.EncerrarRecorrencia(h.DB, id); err != nil {
		http.Error(w, "erro ao encerrar recorrência", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("recorrência encerrada com sucesso"))
}

// ListarPendentes lista contas a pagar pendentes (?mes=MM/YYYY)
func (h *Handler) ListarPendentes(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var filtro *mesref.Competencia
	if m := r.URL.Query().Get("mes"); m != "" {
		comp, err := mesref.Parse(m)
		if err != nil {
			http.Error(w, "mês de referência inválido", http.StatusBadRequest)
			return
		}
		filtro = &comp
	}

	despesas, err := h.Repository.ListarPendentes(h.DB, unidadeID, filtro)
	if err != nil {
		http.Error(w, "erro ao listar despesas pendentes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(despesas)
}

// Pagar dá baixa em uma despesa pendente
func (h *Handler) Pagar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var d Despesa
	if err := h.DB.First(&d, id).Error; err != nil || d.UnidadeID != unidadeID {
		http.Error(w, "despesa não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repository.Pagar(h.DB, id, time.Now()); err != nil {
		http.Error(w, "erro ao pagar despesa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("despesa paga com sucesso"))
}
