package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

type PlatilloRepository interface {
	Create(ctx context.Context, p *model.Platillo) error
	FindByID(ctx context.Context, id int64) (*model.Platillo, error)
	ListActivos(ctx context.Context) ([]model.Platillo, error)
	ListPorCategoria(ctx context.Context, categoriaID int64) ([]model.Platillo, error)
	Update(ctx context.Context, p *model.Platillo) error
	Desactivar(ctx context.Context, id int64) error

	CreateCategoria(ctx context.Context, c *model.Categoria) error
	ListCategorias(ctx context.Context) ([]model.Categoria, error)
	FindCategoria(ctx context.Context, id int64) (*model.Categoria, error)
}

type platilloRepo struct{ db *gorm.DB }

func NewPlatilloRepository(db *gorm.DB) PlatilloRepository { return &platilloRepo{db: db} }

func (r *platilloRepo) Create(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *platilloRepo) FindByID(ctx context.Context, id int64) (*model.Platillo, error) {
	var p model.Platillo
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *platilloRepo) ListActivos(ctx context.Context) ([]model.Platillo, error) {
	var ps []model.Platillo
	err := r.db.WithContext(ctx).Where("activo = true").Order("nombre ASC").Find(&ps).Error
	return ps, err
}

func (r *platilloRepo) ListPorCategoria(ctx context.Context, categoriaID int64) ([]model.Platillo, error) {
	var ps []model.Platillo
	err := r.db.WithContext(ctx).
		Where("categoria_id = ? AND activo = true", categoriaID).
		Order("nombre ASC").
		Find(&ps).Error
	return ps, err
}

func (r *platilloRepo) Update(ctx context.Context, p *model.Platillo) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *platilloRepo) Desactivar(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Platillo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *platilloRepo) CreateCategoria(ctx context.Context, c *model.Categoria) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *platilloRepo) ListCategorias(ctx context.Context) ([]model.Categoria, error) {
	var cs []model.Categoria
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&cs).Error
	return cs, err
}

func (r *platilloRepo) FindCategoria(ctx context.Context, id int64) (*model.Categoria, error) {
	var c model.Categoria
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}
