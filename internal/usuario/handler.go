package usuario

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

var validate = validator.New()

// request DTOs
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type criarUsuarioRequest struct {
	Username   string `json:"username" validate:"required,min=3"`
	Nome       string `json:"nome" validate:"required"`
	Senha      string `json:"senha" validate:"required,min=6"`
	Admin      bool   `json:"admin"`
	UnidadeIDs []uint `json:"unidadeIds"`
}

type atualizarUsuarioRequest struct {
	Nome       string `json:"nome" validate:"required"`
	Admin      bool   `json:"admin"`
	Ativo      bool   `json:"ativo"`
	NovaSenha  string `json:"novaSenha"`
	UnidadeIDs []uint `json:"unidadeIds"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorUsername(h.DB, req.Username)
	if err != nil || !user.Ativo {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	if !utils.VerificarSenha(user.PasswordHash, req.Password) {
		http.Error(w, "senha incorreta", http.StatusUnauthorized)
		return
	}

	token, err := auth.GerarToken(user.Username, user.Admin)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// CriarUsuario cadastra usuário e vínculos de unidade (admin)
func (h *Handler) CriarUsuario(w http.ResponseWriter, r *http.Request) {
	var req criarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "username, nome e senha (mín. 6) são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(req.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	u := Usuario{
		Username:     req.Username,
		NomeCompleto: req.Nome,
		PasswordHash: hash,
		Admin:        req.Admin,
		Ativo:        true,
	}
	if err := h.Repository.CriarComVinculos(h.DB, &u, req.UnidadeIDs); err != nil {
		http.Error(w, "erro ao salvar usuário", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(u)
}

// ListarUsuarios retorna todos os usuários (admin)
func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	usuarios, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "erro ao listar usuários", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(usuarios)
}

// AtualizarUsuario altera dados, permissões e vínculos (admin)
func (h *Handler) AtualizarUsuario(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	var req atualizarUsuarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "payload inválido", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, "nome é obrigatório", http.StatusBadRequest)
		return
	}

	var novaSenhaHash string
	if req.NovaSenha != "" {
		hash, err := utils.HashSenha(req.NovaSenha)
		if err != nil {
			http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
			return
		}
		novaSenhaHash = hash
	}

	dados := Usuario{NomeCompleto: req.Nome, Admin: req.Admin, Ativo: req.Ativo}
	if err := h.Repository.AtualizarComVinculos(h.DB, username, &dados, novaSenhaHash, req.UnidadeIDs); err != nil {
		http.Error(w, "erro ao atualizar usuário", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("usuário atualizado com sucesso"))
}

// ResetarSenha gera uma senha temporária para o usuário e a devolve em
// texto puro uma única vez (admin)
func (h *Handler) ResetarSenha(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	senha, err := utils.GerarSenhaTemporaria()
	if err != nil {
		http.Error(w, "erro ao gerar senha temporária", http.StatusInternalServerError)
		return
	}
	hash, err := utils.HashSenha(senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	if err := h.Repository.RedefinirSenha(h.DB, username, hash); err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"senhaTemporaria": senha})
}

// MinhasUnidades lista as unidades às quais o usuário logado tem acesso
func (h *Handler) MinhasUnidades(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(auth.CtxUsername).(string)
	ids, err := h.Repository.UnidadesDoUsuario(h.DB, username)
	if err != nil {
		http.Error(w, "erro ao listar unidades do usuário", http.StatusInternalServerError)
		return
	}
	json.NewEncoder(w).Encode(ids)
}

// Me retorna o usuário logado
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	username, _ := r.Context().Value(auth.CtxUsername).(string)
	u, err := h.Repository.BuscarPorUsername(h.DB, username)
	if err != nil {
		http.Error(w, "usuário não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(u)
}
