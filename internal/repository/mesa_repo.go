package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

type MesaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, m *model.MesaOcupada) error
	// FindForUpdate loads the occupancy row for a destination under
	// FOR UPDATE, or gorm.ErrRecordNotFound when the destination is free.
	FindForUpdate(ctx context.Context, tx *gorm.DB, tipo string, numero int) (*model.MesaOcupada, error)
	FindByDestino(ctx context.Context, tipo string, numero int) (*model.MesaOcupada, error)
	Update(ctx context.Context, tx *gorm.DB, m *model.MesaOcupada) error
	DeleteByPedido(ctx context.Context, tx *gorm.DB, pedidoID int64) error
	ListAll(ctx context.Context) ([]model.MesaOcupada, error)
}

type mesaRepo struct{ db *gorm.DB }

func NewMesaRepository(db *gorm.DB) MesaRepository { return &mesaRepo{db: db} }

func (r *mesaRepo) Create(ctx context.Context, tx *gorm.DB, m *model.MesaOcupada) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *mesaRepo) FindForUpdate(ctx context.Context, tx *gorm.DB, tipo string, numero int) (*model.MesaOcupada, error) {
	var m model.MesaOcupada
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tipo = ? AND numero = ?", tipo, numero).
		First(&m).Error
	return &m, err
}

func (r *mesaRepo) FindByDestino(ctx context.Context, tipo string, numero int) (*model.MesaOcupada, error) {
	var m model.MesaOcupada
	err := r.db.WithContext(ctx).
		Where("tipo = ? AND numero = ?", tipo, numero).
		First(&m).Error
	return &m, err
}

func (r *mesaRepo) Update(ctx context.Context, tx *gorm.DB, m *model.MesaOcupada) error {
	return tx.WithContext(ctx).Save(m).Error
}

func (r *mesaRepo) DeleteByPedido(ctx context.Context, tx *gorm.DB, pedidoID int64) error {
	return tx.WithContext(ctx).
		Where("pedido_id = ?", pedidoID).
		Delete(&model.MesaOcupada{}).Error
}

func (r *mesaRepo) ListAll(ctx context.Context) ([]model.MesaOcupada, error) {
	var mesas []model.MesaOcupada
	err := r.db.WithContext(ctx).Order("tipo ASC, numero ASC").Find(&mesas).Error
	return mesas, err
}
