package mesref

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"time"
)

// Competencia é o mês de referência de cobranças e despesas.
// Substitui a chave textual "MM/YYYY" por um tipo com ordenação e
// aritmética definidas; no banco continua gravada como "MM/YYYY".
type Competencia struct {
	Ano int
	Mes time.Month
}

// Nova monta a competência de uma data.
func Nova(data time.Time) Competencia {
	return Competencia{Ano: data.Year(), Mes: data.Month()}
}

// Parse lê o formato legado "MM/YYYY".
func Parse(valor string) (Competencia, error) {
	t, err := time.Parse("01/2006", valor)
	if err != nil {
		return Competencia{}, fmt.Errorf("mês de referência inválido %q: %w", valor, err)
	}
	return Competencia{Ano: t.Year(), Mes: t.Month()}, nil
}

// String devolve o formato legado "MM/YYYY".
func (c Competencia) String() string {
	return fmt.Sprintf("%02d/%04d", int(c.Mes), c.Ano)
}

// AdicionarMeses soma n meses, normalizando a virada de ano.
func (c Competencia) AdicionarMeses(n int) Competencia {
	t := time.Date(c.Ano, c.Mes, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return Competencia{Ano: t.Year(), Mes: t.Month()}
}

// Antes informa se c precede outra competência.
func (c Competencia) Antes(outra Competencia) bool {
	if c.Ano != outra.Ano {
		return c.Ano < outra.Ano
	}
	return c.Mes < outra.Mes
}

// Zero informa se a competência não foi preenchida.
func (c Competencia) Zero() bool {
	return c.Ano == 0 && c.Mes == 0
}

// Value implementa driver.Valuer gravando o texto legado.
func (c Competencia) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan implementa sql.Scanner lendo o texto legado.
func (c *Competencia) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*c = Competencia{}
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case []byte:
		return c.Scan(string(v))
	}
	return fmt.Errorf("mesref: tipo inesperado %T", src)
}

// GormDataType orienta o AutoMigrate a criar a coluna como texto.
func (Competencia) GormDataType() string {
	return "varchar(7)"
}

// OrdenarDecrescente ordena textos "MM/YYYY" pela competência, da mais
// recente à mais antiga. Valores fora do formato vão para o fim.
func OrdenarDecrescente(meses []string) {
	sort.Slice(meses, func(i, j int) bool {
		ci, erri := Parse(meses[i])
		cj, errj := Parse(meses[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return cj.Antes(ci)
	})
}
