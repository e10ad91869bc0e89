package utils

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// IDDaRota lê um parâmetro numérico de rota ({id}, {unidadeID}...).
func IDDaRota(r *http.Request, nome string) (uint, error) {
	valor, err := strconv.Atoi(mux.Vars(r)[nome])
	if err != nil {
		return 0, err
	}
	return uint(valor), nil
}
