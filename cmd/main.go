package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"

	"github.com/EducaFranquia/api-unidade/internal/aluno"
	"github.com/EducaFranquia/api-unidade/internal/auth"
	"github.com/EducaFranquia/api-unidade/internal/catalogo"
	"github.com/EducaFranquia/api-unidade/internal/cofre"
	"github.com/EducaFranquia/api-unidade/internal/config"
	"github.com/EducaFranquia/api-unidade/internal/dashboard"
	"github.com/EducaFranquia/api-unidade/internal/despesa"
	"github.com/EducaFranquia/api-unidade/internal/equipe"
	"github.com/EducaFranquia/api-unidade/internal/matricula"
	"github.com/EducaFranquia/api-unidade/internal/migracao"
	"github.com/EducaFranquia/api-unidade/internal/pagamento"
	"github.com/EducaFranquia/api-unidade/internal/relatorio"
	"github.com/EducaFranquia/api-unidade/internal/robo"
	"github.com/EducaFranquia/api-unidade/internal/unidade"
	"github.com/EducaFranquia/api-unidade/internal/usuario"
	"github.com/EducaFranquia/api-unidade/internal/utils/db"
)

func migrar(conexao *gorm.DB) error {
	migracoes := []func(*gorm.DB) error{
		unidade.Migrate,
		usuario.Migrate,
		catalogo.Migrate,
		aluno.Migrate,
		matricula.Migrate,
		pagamento.Migrate,
		despesa.Migrate,
		equipe.Migrate,
		cofre.Migrate,
	}
	for _, m := range migracoes {
		if err := m(conexao); err != nil {
			return err
		}
	}
	return catalogo.Seed(conexao)
}

func main() {
	conexao, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}
	if err := migrar(conexao); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(conexao)
	unidadeHandler := unidade.NewHandler(conexao)
	catalogoHandler := catalogo.NewHandler(conexao)
	alunoHandler := aluno.NewHandler(conexao)
	matriculaHandler := matricula.NewHandler(conexao)
	pagamentoHandler := pagamento.NewHandler(conexao)
	despesaHandler := despesa.NewHandler(conexao)
	equipeHandler := equipe.NewHandler(conexao)
	cofreHandler := cofre.NewHandler(conexao)
	roboHandler := robo.NewHandler(conexao)
	dashboardHandler := dashboard.NewHandler(conexao)
	relatorioHandler := relatorio.NewHandler(conexao)
	migracaoHandler := migracao.NewHandler(conexao)

	// Router
	r := mux.NewRouter()

	// Rota pública
	r.HandleFunc("/login", usuarioHandler.Login).Methods("POST")

	// Rotas autenticadas fora do escopo de unidade
	autenticado := r.NewRoute().Subrouter()
	autenticado.Use(auth.MiddlewareAutenticacao)
	autenticado.HandleFunc("/me", usuarioHandler.Me).Methods("GET")
	autenticado.HandleFunc("/minhas-unidades", usuarioHandler.MinhasUnidades).Methods("GET")
	autenticado.HandleFunc("/catalogo/disciplinas", catalogoHandler.ListarDisciplinas).Methods("GET")
	autenticado.HandleFunc("/catalogo/canais", catalogoHandler.ListarCanais).Methods("GET")
	autenticado.HandleFunc("/catalogo/formas-pagamento", catalogoHandler.ListarFormasPagamento).Methods("GET")
	autenticado.HandleFunc("/catalogo/categorias-despesas", catalogoHandler.ListarCategoriasDespesas).Methods("GET")
	autenticado.HandleFunc("/catalogo/tipos-contratacao", catalogoHandler.ListarTiposContratacao).Methods("GET")

	// Rotas administrativas
	admin := autenticado.NewRoute().Subrouter()
	admin.Use(auth.RequireAdmin)
	admin.HandleFunc("/unidades", unidadeHandler.CriarUnidade).Methods("POST")
	admin.HandleFunc("/unidades", unidadeHandler.ListarUnidades).Methods("GET")
	admin.HandleFunc("/usuarios", usuarioHandler.CriarUsuario).Methods("POST")
	admin.HandleFunc("/usuarios", usuarioHandler.ListarUsuarios).Methods("GET")
	admin.HandleFunc("/usuarios/{username}", usuarioHandler.AtualizarUsuario).Methods("PUT")
	admin.HandleFunc("/usuarios/{username}/resetar-senha", usuarioHandler.ResetarSenha).Methods("POST")

	// Rotas escopadas à unidade
	u := autenticado.PathPrefix("/unidades/{unidadeID}").Subrouter()
	u.Use(usuario.MiddlewareAcessoUnidade(conexao))

	u.HandleFunc("/parametros", unidadeHandler.BuscarParametros).Methods("GET")
	u.HandleFunc("/parametros", unidadeHandler.SalvarParametros).Methods("PUT")
	u.HandleFunc("/royalties", unidadeHandler.ListarRoyalties).Methods("GET")
	u.HandleFunc("/royalties", unidadeHandler.AdicionarRoyalty).Methods("POST")
	u.HandleFunc("/royalties/{id}", unidadeHandler.ExcluirRoyalty).Methods("DELETE")
	u.HandleFunc("/templates", unidadeHandler.BuscarTemplate).Methods("GET")
	u.HandleFunc("/templates", unidadeHandler.SalvarTemplate).Methods("POST")
	u.HandleFunc("/templates", unidadeHandler.ExcluirTemplate).Methods("DELETE")

	u.HandleFunc("/alunos", alunoHandler.ListarGrid).Methods("GET")
	u.HandleFunc("/alunos/{id}", alunoHandler.BuscarPorID).Methods("GET")
	u.HandleFunc("/alunos/{id}", alunoHandler.AtualizarCadastro).Methods("PUT")
	u.HandleFunc("/alunos/{alunoID}/historico", pagamentoHandler.HistoricoDoAluno).Methods("GET")
	u.HandleFunc("/alunos/{alunoID}/matriculas", matriculaHandler.ListarDoAluno).Methods("GET")
	u.HandleFunc("/alunos/{alunoID}/matriculas", matriculaHandler.AdicionarDisciplina).Methods("POST")
	u.HandleFunc("/alunos/{alunoID}/inativar", matriculaHandler.InativarAluno).Methods("POST")

	u.HandleFunc("/matriculas", matriculaHandler.Matricular).Methods("POST")
	u.HandleFunc("/matriculas/{id}/bolsa", matriculaHandler.AplicarBolsa).Methods("POST")
	u.HandleFunc("/matriculas/{id}/valor", matriculaHandler.AtualizarValor).Methods("PUT")
	u.HandleFunc("/matriculas/{id}/inativar", matriculaHandler.Inativar).Methods("POST")
	u.HandleFunc("/bolsas", matriculaHandler.ListarBolsasAtivas).Methods("GET")

	u.HandleFunc("/recebimentos", pagamentoHandler.ListarPendentes).Methods("GET")
	u.HandleFunc("/recebimentos/{id}/pagar", pagamentoHandler.RegistrarRecebimento).Methods("POST")
	u.HandleFunc("/recebimentos/{id}/estornar", pagamentoHandler.Estornar).Methods("POST")
	u.HandleFunc("/fluxo-caixa", pagamentoHandler.FluxoCaixa).Methods("GET")
	u.HandleFunc("/fluxo-caixa/meses", pagamentoHandler.MesesComMovimento).Methods("GET")

	u.HandleFunc("/despesas", despesaHandler.AdicionarAvulsa).Methods("POST")
	u.HandleFunc("/despesas", despesaHandler.ListarPendentes).Methods("GET")
	u.HandleFunc("/despesas/{id}/pagar", despesaHandler.Pagar).Methods("POST")
	u.HandleFunc("/despesas/recorrentes", despesaHandler.AdicionarRecorrente).Methods("POST")
	u.HandleFunc("/despesas/recorrentes", despesaHandler.ListarRecorrencias).Methods("GET")
	u.HandleFunc("/despesas/recorrentes/{id}", despesaHandler.AtualizarRecorrencia).Methods("PUT")
	u.HandleFunc("/despesas/recorrentes/{id}", despesaHandler.EncerrarRecorrencia).Methods("DELETE")

	u.HandleFunc("/funcionarios", equipeHandler.Cadastrar).Methods("POST")
	u.HandleFunc("/funcionarios", equipeHandler.Listar).Methods("GET")
	u.HandleFunc("/funcionarios/{id}", equipeHandler.BuscarPorID).Methods("GET")
	u.HandleFunc("/funcionarios/{id}", equipeHandler.Atualizar).Methods("PUT")
	u.HandleFunc("/funcionarios/{id}/custos", equipeHandler.AdicionarCusto).Methods("POST")
	u.HandleFunc("/funcionarios/{id}/custos/{custoID}", equipeHandler.ExcluirCusto).Methods("DELETE")

	u.HandleFunc("/cofres", cofreHandler.Criar).Methods("POST")
	u.HandleFunc("/cofres", cofreHandler.Listar).Methods("GET")
	u.HandleFunc("/cofres/percentuais", cofreHandler.AtualizarPercentuais).Methods("PUT")
	u.HandleFunc("/cofres/lucro", cofreHandler.LucroRealizado).Methods("GET")
	u.HandleFunc("/cofres/distribuir", cofreHandler.Distribuir).Methods("POST")
	u.HandleFunc("/cofres/{id}/saque", cofreHandler.Sacar).Methods("POST")
	u.HandleFunc("/cofres/{id}/extrato", cofreHandler.Extrato).Methods("GET")

	u.HandleFunc("/robo", roboHandler.Executar).Methods("POST")

	u.HandleFunc("/dashboard/resumo", dashboardHandler.Resumo).Methods("GET")
	u.HandleFunc("/dashboard/pendencias", dashboardHandler.Pendencias).Methods("GET")
	u.HandleFunc("/dashboard/anual", dashboardHandler.SerieAnual).Methods("GET")
	u.HandleFunc("/dashboard/despesas-categoria", dashboardHandler.DespesasPorCategoria).Methods("GET")
	u.HandleFunc("/dashboard/matriculas-disciplina", dashboardHandler.DistribuicaoMatriculas).Methods("GET")
	u.HandleFunc("/dashboard/inadimplencia", dashboardHandler.Inadimplencia).Methods("GET")
	u.HandleFunc("/dashboard/custo-rh", dashboardHandler.CustoRH).Methods("GET")
	u.HandleFunc("/dashboard/funcionarios-ativos", dashboardHandler.FuncionariosAtivos).Methods("GET")
	u.HandleFunc("/dashboard/meses-faturamento", dashboardHandler.MesesComFaturamento).Methods("GET")

	u.HandleFunc("/relatorios/alunos-periodo", relatorioHandler.AlunosDoPeriodo).Methods("GET")

	u.HandleFunc("/migracao/status", migracaoHandler.Status).Methods("GET")
	u.HandleFunc("/migracao/importar", migracaoHandler.Importar).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	porta := config.Conf.GetString("httpPort")
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
