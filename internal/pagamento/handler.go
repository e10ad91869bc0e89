package pagamento

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

type receberRequest struct {
	FormaPagamentoID uint    `json:"formaPagamentoId" validate:"required"`
	Taxa             float64 `json:"taxa" validate:"gte=0"`
	NomeAluno        string  `json:"nomeAluno" validate:"required"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// ListarPendentes lista recebimentos em aberto (?mes=MM/YYYY)
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

	linhas, err := h.Repository.ListarPendentes(h.DB, unidadeID, filtro)
	if err != nil {
		http.Error(w, "erro ao listar recebimentos pendentes", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}

// RegistrarRecebimento dá baixa em uma cobrança (gera taxa vinculada se houver)
func (h *Handler) RegistrarRecebimento(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req receberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "forma de pagamento e nome do aluno são obrigatórios", http.StatusBadRequest)
		return
	}

	err = h.Repository.RegistrarRecebimento(h.DB, unidadeID, id, req.FormaPagamentoID,
		utils.ToCents(req.Taxa), req.NomeAluno, time.Now())
	if err != nil {
		http.Error(w, "erro ao registrar recebimento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("recebimento registrado com sucesso"))
}

// Estornar devolve o pagamento a pendente e remove a taxa vinculada
func (h *Handler) Estornar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.Estornar(h.DB, unidadeID, id); err != nil {
		http.Error(w, "erro ao estornar pagamento", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pagamento estornado com sucesso"))
}

// FluxoCaixa retorna entradas e saídas pagas do mês (?mes=MM/YYYY obrigatório)
func (h *Handler) FluxoCaixa(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	mes, err := mesref.Parse(r.URL.Query().Get("mes"))
	if err != nil {
		http.Error(w, "mês de referência inválido", http.StatusBadRequest)
		return
	}

	movimentos, err := h.Repository.FluxoCaixa(h.DB, unidadeID, mes)
	if err != nil {
		http.Error(w, "erro ao montar fluxo de caixa", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(movimentos)
}

// MesesComMovimento lista as competências com pagamento ou despesa
func (h *Handler) MesesComMovimento(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	meses, err := h.Repository.MesesComMovimento(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar meses", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(meses)
}

// HistoricoDoAluno retorna o extrato financeiro de um aluno
func (h *Handler) HistoricoDoAluno(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	alunoID, err := utils.IDDaRota(r, "alunoID")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	linhas, err := h.Repository.HistoricoDoAluno(h.DB, alunoID, unidadeID)
	if err != nil {
		http.Error(w, "erro ao buscar histórico", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}
