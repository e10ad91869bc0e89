package dashboard

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/mesref"
)

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// mesDaQuery lê ?mes=MM/YYYY, com a competência corrente como padrão.
func mesDaQuery(r *http.Request) (mesref.Competencia, error) {
	valor := r.URL.Query().Get("mes")
	if valor == "" {
		return mesref.Nova(time.Now()), nil
	}
	return mesref.Parse(valor)
}

// anoDaQuery lê ?ano=YYYY, com o ano corrente como padrão.
func anoDaQuery(r *http.Request) (int, error) {
	valor := r.URL.Query().Get("ano")
	if valor == "" {
		return time.Now().Year(), nil
	}
	return strconv.Atoi(valor)
}

// Resumo retorna o painel da competência
func (h *Handler) Resumo(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	mes, err := mesDaQuery(r)
	if err != nil {
		http.Error(w, "mês de referência inválido, use MM/YYYY", http.StatusBadRequest)
		return
	}

	resumo, err := h.Repository.Resumo(h.DB, unidadeID, mes)
	if err != nil {
		http.Error(w, "erro ao montar resumo", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(resumo)
}

// Pendencias retorna as filas de recebimento e pagamento
func (h *Handler) Pendencias(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	mes, err := mesDaQuery(r)
	if err != nil {
		http.Error(w, "mês de referência inválido, use MM/YYYY", http.StatusBadRequest)
		return
	}

	pendencias, err := h.Repository.Pendencias(h.DB, unidadeID, mes)
	if err != nil {
		http.Error(w, "erro ao listar pendências", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(pendencias)
}

// SerieAnual retorna receita × despesa mês a mês (?ano=YYYY)
func (h *Handler) SerieAnual(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	ano, err := anoDaQuery(r)
	if err != nil {
		http.Error(w, "ano inválido", http.StatusBadRequest)
		return
	}

	serie, err := h.Repository.SerieAnual(h.DB, unidadeID, ano)
	if err != nil {
		http.Error(w, "erro ao montar série anual", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(serie)
}

// DespesasPorCategoria retorna os totais da competência por categoria
func (h *Handler) DespesasPorCategoria(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	mes, err := mesDaQuery(r)
	if err != nil {
		http.Error(w, "mês de referência inválido, use MM/YYYY", http.StatusBadRequest)
		return
	}

	totais, err := h.Repository.DespesasPorCategoria(h.DB, unidadeID, mes)
	if err != nil {
		http.Error(w, "erro ao agrupar despesas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(totais)
}

// DistribuicaoMatriculas retorna matrículas ativas por disciplina
func (h *Handler) DistribuicaoMatriculas(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	totais, err := h.Repository.DistribuicaoMatriculas(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao agrupar matrículas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(totais)
}

// Inadimplencia retorna as cobranças vencidas e não pagas
func (h *Handler) Inadimplencia(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	inadimplencia, err := h.Repository.Inadimplencia(h.DB, unidadeID, time.Now())
	if err != nil {
		http.Error(w, "erro ao apurar inadimplência", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(inadimplencia)
}

// CustoRH retorna o custo de folha mês a mês (?ano=YYYY)
func (h *Handler) CustoRH(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	ano, err := anoDaQuery(r)
	if err != nil {
		http.Error(w, "ano inválido", http.StatusBadRequest)
		return
	}

	serie, err := h.Repository.CustoRHAnual(h.DB, unidadeID, ano)
	if err != nil {
		http.Error(w, "erro ao apurar custo de RH", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(serie)
}

// FuncionariosAtivos retorna a contagem de funcionários ativos
func (h *Handler) FuncionariosAtivos(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	total, err := h.Repository.FuncionariosAtivos(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao contar funcionários", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"funcionariosAtivos": total})
}

// MesesComFaturamento lista as competências com recebimento pago
func (h *Handler) MesesComFaturamento(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	meses, err := h.Repository.MesesComFaturamento(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar meses", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(meses)
}
