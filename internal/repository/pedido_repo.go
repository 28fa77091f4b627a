package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

type PedidoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	FindByID(ctx context.Context, id int64) (*model.Pedido, error)
	// FindForUpdate loads the row under FOR UPDATE inside tx, serializing
	// concurrent merges and settlements against the same order.
	FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*model.Pedido, error)
	Update(ctx context.Context, tx *gorm.DB, p *model.Pedido) error
	MarcarTerminado(ctx context.Context, id int64) (int64, error)
	ListNoTerminados(ctx context.Context) ([]model.Pedido, error)
	// ListTerminadosEntre returns settled orders whose (fecha, hora) pair
	// falls inside the window; fechas limits the date keys scanned.
	ListTerminadosEntre(ctx context.Context, fechas []string) ([]model.Pedido, error)
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type pedidoRepo struct{ db *gorm.DB }

func NewPedidoRepository(db *gorm.DB) PedidoRepository { return &pedidoRepo{db: db} }

func (r *pedidoRepo) DB() *gorm.DB { return r.db }

func (r *pedidoRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *pedidoRepo) FindByID(ctx context.Context, id int64) (*model.Pedido, error) {
	var p model.Pedido
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) FindForUpdate(ctx context.Context, tx *gorm.DB, id int64) (*model.Pedido, error) {
	var p model.Pedido
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&p, id).Error
	return &p, err
}

func (r *pedidoRepo) Update(ctx context.Context, tx *gorm.DB, p *model.Pedido) error {
	return tx.WithContext(ctx).Save(p).Error
}

func (r *pedidoRepo) MarcarTerminado(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Pedido{}).
		Where("id = ? AND terminado = false", id).
		Update("terminado", true)
	return res.RowsAffected, res.Error
}

func (r *pedidoRepo) ListNoTerminados(ctx context.Context) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("terminado = false").
		Order("id ASC").
		Find(&pedidos).Error
	return pedidos, err
}

func (r *pedidoRepo) ListTerminadosEntre(ctx context.Context, fechas []string) ([]model.Pedido, error) {
	var pedidos []model.Pedido
	err := r.db.WithContext(ctx).
		Where("terminado = true AND fecha IN ?", fechas).
		Order("id ASC").
		Find(&pedidos).Error
	return pedidos, err
}
