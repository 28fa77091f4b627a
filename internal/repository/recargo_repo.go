package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

// RecargoRepository covers the three deferred-charge ledgers plus the invoice
// queue. The recharge variants are insert/list/delete; a deleted row means
// the charge was collected. Facturas instead carry a facturado flag.
type RecargoRepository interface {
	CreateHabitacion(ctx context.Context, tx *gorm.DB, r *model.PedidoRecargado) error
	CreateEmpleado(ctx context.Context, tx *gorm.DB, r *model.EmpleadoRecargado) error
	CreateEvento(ctx context.Context, tx *gorm.DB, r *model.EventoRecargado) error
	CreateFactura(ctx context.Context, tx *gorm.DB, f *model.Factura) error

	FindHabitacion(ctx context.Context, id int64) (*model.PedidoRecargado, error)
	FindEmpleado(ctx context.Context, id int64) (*model.EmpleadoRecargado, error)
	FindEvento(ctx context.Context, id int64) (*model.EventoRecargado, error)
	FindFactura(ctx context.Context, id int64) (*model.Factura, error)

	ListHabitaciones(ctx context.Context, fecha string) ([]model.PedidoRecargado, error)
	ListEmpleados(ctx context.Context, fecha string) ([]model.EmpleadoRecargado, error)
	ListEventos(ctx context.Context, fecha string) ([]model.EventoRecargado, error)
	// ListFacturasPendientes returns only rows with facturado=false.
	ListFacturasPendientes(ctx context.Context) ([]model.Factura, error)

	DeleteHabitacion(ctx context.Context, tx *gorm.DB, id int64) error
	DeleteEmpleado(ctx context.Context, tx *gorm.DB, id int64) error
	DeleteEvento(ctx context.Context, tx *gorm.DB, id int64) error
	SetFacturado(ctx context.Context, id int64, facturado bool) (int64, error)
	DeleteFactura(ctx context.Context, tx *gorm.DB, id int64) error
}

type recargoRepo struct{ db *gorm.DB }

func NewRecargoRepository(db *gorm.DB) RecargoRepository { return &recargoRepo{db: db} }

func (r *recargoRepo) CreateHabitacion(ctx context.Context, tx *gorm.DB, rec *model.PedidoRecargado) error {
	return tx.WithContext(ctx).Create(rec).Error
}

func (r *recargoRepo) CreateEmpleado(ctx context.Context, tx *gorm.DB, rec *model.EmpleadoRecargado) error {
	return tx.WithContext(ctx).Create(rec).Error
}

func (r *recargoRepo) CreateEvento(ctx context.Context, tx *gorm.DB, rec *model.EventoRecargado) error {
	return tx.WithContext(ctx).Create(rec).Error
}

func (r *recargoRepo) CreateFactura(ctx context.Context, tx *gorm.DB, f *model.Factura) error {
	return tx.WithContext(ctx).Create(f).Error
}

func (r *recargoRepo) FindHabitacion(ctx context.Context, id int64) (*model.PedidoRecargado, error) {
	var rec model.PedidoRecargado
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *recargoRepo) FindEmpleado(ctx context.Context, id int64) (*model.EmpleadoRecargado, error) {
	var rec model.EmpleadoRecargado
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *recargoRepo) FindEvento(ctx context.Context, id int64) (*model.EventoRecargado, error) {
	var rec model.EventoRecargado
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *recargoRepo) FindFactura(ctx context.Context, id int64) (*model.Factura, error) {
	var f model.Factura
	err := r.db.WithContext(ctx).First(&f, id).Error
	return &f, err
}

func (r *recargoRepo) ListHabitaciones(ctx context.Context, fecha string) ([]model.PedidoRecargado, error) {
	var recs []model.PedidoRecargado
	q := r.db.WithContext(ctx).Order("id DESC")
	if fecha != "" {
		q = q.Where("fecha = ?", fecha)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *recargoRepo) ListEmpleados(ctx context.Context, fecha string) ([]model.EmpleadoRecargado, error) {
	var recs []model.EmpleadoRecargado
	q := r.db.WithContext(ctx).Order("id DESC")
	if fecha != "" {
		q = q.Where("fecha = ?", fecha)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *recargoRepo) ListEventos(ctx context.Context, fecha string) ([]model.EventoRecargado, error) {
	var recs []model.EventoRecargado
	q := r.db.WithContext(ctx).Order("id DESC")
	if fecha != "" {
		q = q.Where("fecha = ?", fecha)
	}
	err := q.Find(&recs).Error
	return recs, err
}

func (r *recargoRepo) ListFacturasPendientes(ctx context.Context) ([]model.Factura, error) {
	var fs []model.Factura
	err := r.db.WithContext(ctx).
		Where("facturado = false").
		Order("id DESC").
		Find(&fs).Error
	return fs, err
}

func (r *recargoRepo) DeleteHabitacion(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&model.PedidoRecargado{}, id).Error
}

func (r *recargoRepo) DeleteEmpleado(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&model.EmpleadoRecargado{}, id).Error
}

func (r *recargoRepo) DeleteEvento(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&model.EventoRecargado{}, id).Error
}

func (r *recargoRepo) SetFacturado(ctx context.Context, id int64, facturado bool) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Factura{}).
		Where("id = ?", id).
		Update("facturado", facturado)
	return res.RowsAffected, res.Error
}

func (r *recargoRepo) DeleteFactura(ctx context.Context, tx *gorm.DB, id int64) error {
	return tx.WithContext(ctx).Delete(&model.Factura{}, id).Error
}
