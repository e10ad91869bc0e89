package matricula

// DisciplinaMatricula é um item da matrícula completa.
type DisciplinaMatricula struct {
	DisciplinaID  uint    `json:"disciplinaId" validate:"required"`
	Valor         float64 `json:"valor" validate:"gte=0"`
	Justificativa string  `json:"justificativa"`
}

// DadosAluno é o cadastro do aluno na matrícula completa.
type DadosAluno struct {
	Nome        string `json:"nome" validate:"required"`
	Responsavel string `json:"responsavel" validate:"required"`
	CPF         string `json:"cpf"`
	CanalID     uint   `json:"canalId"`
}

// LinhaMatricula é a listagem das disciplinas de um aluno.
type LinhaMatricula struct {
	ID                  uint   `json:"id"`
	Disciplina          string `json:"disciplina"`
	ValorAcordado       int64  `json:"valorAcordado"`
	DiaVencimento       int    `json:"diaVencimento"`
	Ativo               bool   `json:"ativo"`
	BolsaAtiva          bool   `json:"bolsaAtiva"`
	BolsaMesesRestantes int    `json:"bolsaMesesRestantes"`
}

// BolsaAtivaLinha é a listagem da gestão de bolsas.
type BolsaAtivaLinha struct {
	Aluno          string `json:"aluno"`
	Disciplina     string `json:"disciplina"`
	ValorOriginal  int64  `json:"valorOriginal"`
	MesesRestantes int    `json:"mesesRestantes"`
}
