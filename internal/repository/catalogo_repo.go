package repository

import (
	"context"

	"catalogo/internal/model"

	"gorm.io/gorm"
)

// CatalogoRepository defines the data access contract for catalogs.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type CatalogoRepository interface {
	Create(ctx context.Context, c *model.Catalogo) error
	FindByID(ctx context.Context, id uint) (*model.Catalogo, error)
	List(ctx context.Context) ([]model.Catalogo, error)
	// UpdateFields applies a partial column update and touches updated_at.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.Catalogo, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) Create(ctx context.Context, c *model.Catalogo) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *catalogoRepo) FindByID(ctx context.Context, id uint) (*model.Catalogo, error) {
	var c model.Catalogo
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *catalogoRepo) List(ctx context.Context) ([]model.Catalogo, error) {
	var catalogos []model.Catalogo
	err := r.db.WithContext(ctx).Order("id DESC").Find(&catalogos).Error
	return catalogos, err
}

func (r *catalogoRepo) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (*model.Catalogo, error) {
	res := r.db.WithContext(ctx).Model(&model.Catalogo{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *catalogoRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Catalogo{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
