package equipe

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

type custoRequest struct {
	Tipo          string  `json:"tipo" validate:"required,oneof=IMPOSTO BENEFICIO"`
	Nome          string  `json:"nome" validate:"required"`
	Valor         float64 `json:"valor" validate:"gte=0"`
	DiaVencimento int     `json:"diaVencimento" validate:"min=1,max=31"`
}

type funcionarioRequest struct {
	Nome              string         `json:"nome" validate:"required"`
	Cargo             string         `json:"cargo"`
	TipoContratacaoID uint           `json:"tipoContratacaoId" validate:"required"`
	SalarioBase       float64        `json:"salarioBase" validate:"gte=0"`
	DiaPagamento      int            `json:"diaPagamento" validate:"min=1,max=31"`
	DataAdmissao      time.Time      `json:"dataAdmissao"`
	Custos            []custoRequest `json:"custos" validate:"dive"`
}

type atualizarFuncionarioRequest struct {
	Nome              string  `json:"nome" validate:"required"`
	Cargo             string  `json:"cargo"`
	TipoContratacaoID uint    `json:"tipoContratacaoId" validate:"required"`
	SalarioBase       float64 `json:"salarioBase" validate:"gte=0"`
	DiaPagamento      int     `json:"diaPagamento" validate:"min=1,max=31"`
	Ativo             bool    `json:"ativo"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Cadastrar cria o funcionário com seus custos iniciais
func (h *Handler) Cadastrar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req funcionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome, tipo de contratação e dias válidos são obrigatórios", http.StatusBadRequest)
		return
	}

	admissao := req.DataAdmissao
	if admissao.IsZero() {
		admissao = time.Now()
	}
	f := Funcionario{
		UnidadeID:         unidadeID,
		Nome:              req.Nome,
		Cargo:             req.Cargo,
		TipoContratacaoID: req.TipoContratacaoID,
		SalarioBase:       utils.ToCents(req.SalarioBase),
		DiaPagamento:      req.DiaPagamento,
		DataAdmissao:      admissao,
	}
	custos := make([]CustoPessoal, 0, len(req.Custos))
	for _, c := range req.Custos {
		custos = append(custos, CustoPessoal{
			Tipo:          c.Tipo,
			Nome:          c.Nome,
			Valor:         utils.ToCents(c.Valor),
			DiaVencimento: c.DiaVencimento,
		})
	}

	if err := h.Repository.CadastrarCompleto(h.DB, &f, custos); err != nil {
		http.Error(w, "erro ao cadastrar funcionário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(f)
}

// Listar lista os funcionários da unidade (?ativos=true filtra)
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	apenasAtivos := r.URL.Query().Get("ativos") == "true"

	funcionarios, err := h.Repository.Listar(h.DB, unidadeID, apenasAtivos)
	if err != nil {
		http.Error(w, "erro ao listar funcionários", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(funcionarios)
}

// BuscarPorID retorna o funcionário com seus custos
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	f, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil || f.UnidadeID != unidadeID {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}
	json.NewEncoder(w).Encode(f)
}

// Atualizar altera o cadastro e sincroniza a folha pendente; ativo=false
// desliga o funcionário
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req atualizarFuncionarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome, tipo de contratação e dias válidos são obrigatórios", http.StatusBadRequest)
		return
	}

	f, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil || f.UnidadeID != unidadeID {
		http.Error(w, "funcionário não encontrado", http.StatusNotFound)
		return
	}
	f.Nome = req.Nome
	f.Cargo = req.Cargo
	f.TipoContratacaoID = req.TipoContratacaoID
	f.SalarioBase = utils.ToCents(req.SalarioBase)
	f.DiaPagamento = req.DiaPagamento
	f.Ativo = req.Ativo
	f.Custos = nil

	if err := h.Repository.Atualizar(h.DB, f, time.Now()); err != nil {
		http.Error(w, "erro ao atualizar funcionário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("funcionário atualizado com sucesso"))
}

// AdicionarCusto acrescenta um custo pessoal ao funcionário
func (h *Handler) AdicionarCusto(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	funcionarioID, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req custoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "tipo (IMPOSTO/BENEFICIO), nome e dia válido são obrigatórios", http.StatusBadRequest)
		return
	}

	c := CustoPessoal{
		UnidadeID:     unidadeID,
		FuncionarioID: funcionarioID,
		Tipo:          req.Tipo,
		Nome:          req.Nome,
		Valor:         utils.ToCents(req.Valor),
		DiaVencimento: req.DiaVencimento,
	}
	if err := h.Repository.AdicionarCusto(h.DB, &c, time.Now()); err != nil {
		http.Error(w, "erro ao adicionar custo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// ExcluirCusto remove o custo e sua despesa pendente
func (h *Handler) ExcluirCusto(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	custoID, err := utils.IDDaRota(r, "custoID")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.ExcluirCusto(h.DB, custoID, unidadeID); err != nil {
		http.Error(w, "erro ao excluir custo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("custo excluído com sucesso"))
}
