package usuario

import "gorm.io/gorm"

type Repository interface {
	BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error)
	ListarTodos(db *gorm.DB) ([]Usuario, error)
	CriarComVinculos(db *gorm.DB, u *Usuario, unidadeIDs []uint) error
	AtualizarComVinculos(db *gorm.DB, username string, novosDados *Usuario, novaSenhaHash string, unidadeIDs []uint) error
	RedefinirSenha(db *gorm.DB, username, novaSenhaHash string) error
	UnidadesDoUsuario(db *gorm.DB, username string) ([]uint, error)
	TemAcesso(db *gorm.DB, username string, unidadeID uint) (bool, error)
}

type repositoryImpl struct{}

func NewRepository() Repository {
	return &repositoryImpl{}
}

func (r *repositoryImpl) BuscarPorUsername(db *gorm.DB, username string) (*Usuario, error) {
	var u Usuario
	err := db.Preload("Unidades").Where("username = ?", username).First(&u).Error
	return &u, err
}

func (r *repositoryImpl) ListarTodos(db *gorm.DB) ([]Usuario, error) {
	var usuarios []Usuario
	err := db.Preload("Unidades").Order("nome_completo").Find(&usuarios).Error
	return usuarios, err
}

// CriarComVinculos cria o usuário e os vínculos de unidade em uma
// transação única.
func (r *repositoryImpl) CriarComVinculos(db *gorm.DB, u *Usuario, unidadeIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		for _, uid := range unidadeIDs {
			vinculo := UsuarioUnidade{UsuarioID: u.ID, UnidadeID: uid}
			if err := tx.Create(&vinculo).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// AtualizarComVinculos atualiza dados, permissões e (opcionalmente)
// senha; os vínculos de unidade são removidos e recriados de forma
// atômica.
func (r *repositoryImpl) AtualizarComVinculos(db *gorm.DB, username string, novosDados *Usuario, novaSenhaHash string, unidadeIDs []uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existente Usuario
		if err := tx.Where("username = ?", username).First(&existente).Error; err != nil {
			return err
		}

		existente.NomeCompleto = novosDados.NomeCompleto
		existente.Admin = novosDados.Admin
		existente.Ativo = novosDados.Ativo
		if novaSenhaHash != "" {
			existente.PasswordHash = novaSenhaHash
		}
		if err := tx.Save(&existente).Error; err != nil {
			return err
		}

		if err := tx.Where("usuario_id = ?", existente.ID).Delete(&UsuarioUnidade{}).Error; err != nil {
			return err
		}
		for _, uid := range unidadeIDs {
			vinculo := UsuarioUnidade{UsuarioID: existente.ID, UnidadeID: uid}
			if err := tx.Create(&vinculo).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repositoryImpl) RedefinirSenha(db *gorm.DB, username, novaSenhaHash string) error {
	res := db.Model(&Usuario{}).Where("username = ?", username).
		Update("password_hash", novaSenhaHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repositoryImpl) UnidadesDoUsuario(db *gorm.DB, username string) ([]uint, error) {
	var ids []uint
	err := db.Model(&UsuarioUnidade{}).
		Joins("JOIN usuarios ON usuarios.id = usuario_unidades.usuario_id").
		Where("usuarios.username = ?", username).
		Pluck("usuario_unidades.unidade_id", &ids).Error
	return ids, err
}

func (r *repositoryImpl) TemAcesso(db *gorm.DB, username string, unidadeID uint) (bool, error) {
	var count int64
	err := db.Model(&UsuarioUnidade{}).
		Joins("JOIN usuarios ON usuarios.id = usuario_unidades.usuario_id").
		Where("usuarios.username = ? AND usuario_unidades.unidade_id = ?", username, unidadeID).
		Count(&count).Error
	return count > 0, err
}
