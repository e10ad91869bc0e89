package usuario

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/utils"
)

// MiddlewareAcessoUnidade resolve o {unidadeID} da rota, confere o
// vínculo do usuário com a unidade (admin passa direto) e injeta o ID
// no contexto. Toda operação de negócio fica escopada a exatamente uma
// unidade.
func MiddlewareAcessoUnidade(db *gorm.DB) func(http.Handler) http.Handler {
	repo := NewRepository()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			unidadeID, err := utils.IDDaRota(r, "unidadeID")
			if err != nil {
				http.Error(w, "unidade inválida", http.StatusBadRequest)
				return
			}

			isAdmin, _ := r.Context().Value(auth.CtxIsAdmin).(bool)
			if !isAdmin {
				username, _ := r.Context().Value(auth.CtxUsername).(string)
				ok, err := repo.TemAcesso(db, username, unidadeID)
				if err != nil {
					http.Error(w, "erro ao verificar acesso", http.StatusInternalServerError)
					return
				}
				if !ok {
					http.Error(w, "acesso negado à unidade", http.StatusForbidden)
					return
				}
			}

			ctx := context.WithValue(r.Context(), auth.CtxUnidadeID, unidadeID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
