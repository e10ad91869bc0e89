package unidade

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

type parametrosRequest struct {
	Mensalidade float64 `json:"mensalidade" validate:"gte=0"`
	Taxa        float64 `json:"taxa" validate:"gte=0"`
	EmCampanha  bool    `json:"emCampanha"`
}

type royaltyRequest struct {
	Valor        float64 `json:"valor" validate:"gt=0"`
	AnoMesInicio string  `json:"anoMesInicio" validate:"required,len=7"`
}

type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

type criarUnidadeRequest struct {
	Nome string `json:"nome" validate:"required"`
}

// CriarUnidade cadastra uma nova unidade (admin)
func (h *Handler) CriarUnidade(w http.ResponseWriter, r *http.Request) {
	var req criarUnidadeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	u := Unidade{Nome: req.Nome}
	if err := h.Repository.Criar(h.DB, &u); err != nil {
		http.Error(w, "erro ao criar unidade", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// ListarUnidades retorna todas as unidades cadastradas
func (h *Handler) ListarUnidades(w http.ResponseWriter, r *http.Request) {
	unidades, err := h.Repository.ListarTodas(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar unidades", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(unidades)
}

// BuscarParametros retorna os parâmetros da unidade ativa
func (h *Handler) BuscarParametros(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	p, err := h.Repository.BuscarParametros(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao buscar parâmetros", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// SalvarParametros grava (upsert) os parâmetros da unidade ativa
func (h *Handler) SalvarParametros(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req parametrosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "valores não podem ser negativos", http.StatusBadRequest)
		return
	}

	p := Parametros{
		UnidadeID:              unidadeID,
		ValorMensalidadePadrao: utils.ToCents(req.Mensalidade),
		ValorTaxaMatricula:     utils.ToCents(req.Taxa),
		EmCampanhaMatricula:    req.EmCampanha,
	}
	if err := h.Repository.SalvarParametros(h.DB, &p); err != nil {
		http.Error(w, "erro ao salvar parâmetros", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(p)
}

// ListarRoyalties retorna as regras de royalty da unidade
func (h *Handler) ListarRoyalties(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	lista, err := h.Repository.ListarRoyalties(h.DB, unidadeID)
	if err != nil {
		http.Error(w, "erro ao listar royalties", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(lista)
}

// AdicionarRoyalty cria uma regra de royalty
func (h *Handler) AdicionarRoyalty(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	var req royaltyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "valor e início de vigência são obrigatórios", http.StatusBadRequest)
		return
	}

	royalty := ConfigRoyalty{
		UnidadeID:    unidadeID,
		Valor:        utils.ToCents(req.Valor),
		AnoMesInicio: req.AnoMesInicio,
	}
	if err := h.Repository.AdicionarRoyalty(h.DB, &royalty); err != nil {
		http.Error(w, "erro ao adicionar royalty", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(royalty)
}

// ExcluirRoyalty remove uma regra de royalty da unidade
func (h *Handler) ExcluirRoyalty(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())
	id, err := utils.IDDaRota(r, "id")
	if err != nil {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}
	if err := h.Repository.ExcluirRoyalty(h.DB, id, unidadeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "royalty não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "erro ao excluir royalty", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("royalty excluído com sucesso"))
}

// tipoDoTemplate lê ?tipo=, com CONTRATO como padrão.
func tipoDoTemplate(r *http.Request) string {
	tipo := r.URL.Query().Get("tipo")
	if tipo == "" {
		tipo = "CONTRATO"
	}
	return tipo
}

// SalvarTemplate recebe o modelo de contrato via multipart e substitui
// o anterior do mesmo tipo
func (h *Handler) SalvarTemplate(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "arquivo inválido", http.StatusBadRequest)
		return
	}
	arquivo, cabecalho, err := r.FormFile("arquivo")
	if err != nil {
		http.Error(w, "campo arquivo é obrigatório", http.StatusBadRequest)
		return
	}
	defer arquivo.Close()

	conteudo, err := io.ReadAll(arquivo)
	if err != nil {
		http.Error(w, "erro ao ler arquivo", http.StatusBadRequest)
		return
	}

	t := DocTemplate{
		UnidadeID:      unidadeID,
		Tipo:           tipoDoTemplate(r),
		NomeArquivo:    cabecalho.Filename,
		ArquivoBinario: conteudo,
	}
	if err := h.Repository.SalvarTemplate(h.DB, &t); err != nil {
		http.Error(w, "erro ao salvar modelo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"nomeArquivo": t.NomeArquivo, "tipo": t.Tipo})
}

// BuscarTemplate devolve o binário do modelo da unidade
func (h *Handler) BuscarTemplate(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	t, err := h.Repository.BuscarTemplate(h.DB, unidadeID, tipoDoTemplate(r))
	if err != nil {
		http.Error(w, "modelo não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.NomeArquivo+`"`)
	w.Write(t.ArquivoBinario)
}

// ExcluirTemplate remove o modelo da unidade
func (h *Handler) ExcluirTemplate(w http.ResponseWriter, r *http.Request) {
	unidadeID := auth.UnidadeDoContexto(r.Context())

	if err := h.Repository.ExcluirTemplate(h.DB, unidadeID, tipoDoTemplate(r)); err != nil {
		http.Error(w, "erro ao excluir modelo", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("modelo excluído com sucesso"))
}
