package matricula

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/unidade"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

type matricularRequest struct {
	Aluno         DadosAluno            `json:"aluno" validate:"required"`
	Disciplinas   []DisciplinaMatricula `json:"disciplinas" validate:"required,min=1,dive"`
	DiaVencimento int                   `json:"diaVencimento" validate:"min=1,max=31"`
	Taxa          *float64              `json:"taxa" validate:"omitempty,gte=0"`
}

type novaDisciplinaRequest struct {
	DisciplinaMatricula
	DiaVencimento int `json:"diaVencimento" validate:"min=1,max=31"`
}

type bolsaRequest struct {
	MesesDuracao    int  `json:"mesesDuracao" validate:"min=1"`
	AplicarPendente bool `json:"aplicarPendente"`
}

type novoValorRequest struct {
	Valor float64 `json:"valor" validate:"gte=0"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
	Parametros unidade.Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
		Parametros: unidade.NewRepository(),
	}
}

// Matricular realiza a matrícula completa: aluno, disciplinas, primeiras
// cobranças e taxa de matrícula (quando fora de campanha)
func (h *Handler) Matricular(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req matricularRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "aluno, disciplinas e dia de vencimento (1-31) são obrigatórios", http.StatusBadRequest)
		return
	}

	cpf := utils.LimparCPF(req.Aluno.CPF)
	if cpf != "" {
		if !utils.ValidarCPF(cpf) {
			http.Error(w, "CPF inválido", http.StatusBadRequest)
			return
		}
		req.Aluno.CPF = utils.FormatarCPF(cpf)
	}

	params, err := h.Parametros.BuscarParametros(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao carregar parâmetros da unidade", http.StatusInternalServerError)
		return
	}

	// taxa do payload sobrepõe a padrão da unidade
	taxa := params.ValorTaxaMatricula
	if req.Taxa != nil {
		taxa = utils.ToCents(*req.Taxa)
	}

	itens := make([]ItemMatricula, 0, len(req.Disciplinas))
	for _, d := range req.Disciplinas {
		itens = append(itens, ItemMatricula{
			DisciplinaID:  d.DisciplinaID,
			Valor:         utils.ToCents(d.Valor),
			Justificativa: d.Justificativa,
		})
	}

	alunoID, err := h.Repository.MatricularCompleto(h.DB, unidadeID, req.Aluno, itens,
		req.DiaVencimento, taxa, params.EmCampanhaMatricula, time.Now())
	if err != nil {
		http.Error(w, "erro ao realizar matrícula", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]uint{"alunoId": alunoID})
}

// AdicionarDisciplina matricula um aluno existente em nova disciplina
func (h *Handler) AdicionarDisciplina(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	alunoID, err := utils.IDDaRota(r, "alunoID")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req novaDisciplinaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "disciplina e dia de vencimento (1-31) são obrigatórios", http.StatusBadRequest)
		return
	}

	item := ItemMatricula{
		DisciplinaID:  req.DisciplinaID,
		Valor:         utils.ToCents(req.Valor),
		Justificativa: req.Justificativa,
	}
	m, err := h.Repository.AdicionarParaAluno(h.DB, unidadeID, alunoID, item, req.DiaVencimento, time.Now())
	if err != nil {
		http.Error(w, "erro ao adicionar matrícula", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(m)
}

// ListarDoAluno lista as matrículas (disciplinas) de um aluno
func (h *Handler) ListarDoAluno(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	alunoID, err := utils.IDDaRota(r, "alunoID")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	linhas, err := h.Repository.ListarDoAluno(h.DB, alunoID, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar matrículas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}

// AplicarBolsa concede 50% de desconto por N meses
func (h *Handler) AplicarBolsa(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req bolsaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "duração mínima de 1 mês", http.StatusBadRequest)
		return
	}

	if err := h.Repository.AplicarBolsa(h.DB, id, req.MesesDuracao, req.AplicarPendente, unidadeID); err != nil {
		http.Error(w, "erro ao aplicar bolsa", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("bolsa aplicada com sucesso"))
}

// AtualizarValor altera o valor acordado e sincroniza as pendências
func (h *Handler) AtualizarValor(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var req novoValorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "valor não pode ser negativo", http.StatusBadRequest)
		return
	}

	if err := h.Repository.AtualizarValor(h.DB, id, utils.ToCents(req.Valor), unidadeID); err != nil {
		http.Error(w, "erro ao atualizar valor", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("valor atualizado com sucesso"))
}

// Inativar encerra uma matrícula (define data fim)
func (h *Handler) Inativar(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	m, err := h.Repository.BuscarPorID(h.DB, id)
	if err != nil || m.UnidadeID != unidadeID {
		http.Error(w, "matrícula não encontrada", http.StatusNotFound)
		return
	}

	if err := h.Repository.Inativar(h.DB, id, time.Now()); err != nil {
		http.Error(w, "erro ao inativar matrícula", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("matrícula inativada com sucesso"))
}

// InativarAluno encerra todas as matrículas do aluno
func (h *Handler) InativarAluno(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	alunoID, err := utils.IDDaRota(r, "alunoID")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	if err := h.Repository.InativarAlunoCompleto(h.DB, alunoID, unidadeID, time.Now()); err != nil {
		http.Error(w, "erro ao inativar aluno", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("aluno inativado com sucesso"))
}

// ListarBolsasAtivas lista as bolsas vigentes da unidade
func (h *Handler) ListarBolsasAtivas(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	linhas, err := h.Repository.ListarBolsasAtivas(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar bolsas", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(linhas)
}
