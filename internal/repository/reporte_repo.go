package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

type ReporteRepository interface {
	// Upsert writes the snapshot keyed on (fecha, turno): re-publishing the
	// same shift replaces every column instead of inserting a second row.
	Upsert(ctx context.Context, r *model.ReporteEnviado) error
	FindByID(ctx context.Context, id int64) (*model.ReporteEnviado, error)
	FindByFechaTurno(ctx context.Context, fecha, turno string) (*model.ReporteEnviado, error)
	List(ctx context.Context, limit int) ([]model.ReporteEnviado, error)
}

type reporteRepo struct{ db *gorm.DB }

func NewReporteRepository(db *gorm.DB) ReporteRepository { return &reporteRepo{db: db} }

func (r *reporteRepo) Upsert(ctx context.Context, rep *model.ReporteEnviado) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fecha"}, {Name: "turno"}},
			UpdateAll: true,
		}).
		Create(rep).Error
}

func (r *reporteRepo) FindByID(ctx context.Context, id int64) (*model.ReporteEnviado, error) {
	var rep model.ReporteEnviado
	err := r.db.WithContext(ctx).First(&rep, id).Error
	return &rep, err
}

func (r *reporteRepo) FindByFechaTurno(ctx context.Context, fecha, turno string) (*model.ReporteEnviado, error) {
	var rep model.ReporteEnviado
	err := r.db.WithContext(ctx).
		Where("fecha = ? AND turno = ?", fecha, turno).
		First(&rep).Error
	return &rep, err
}

func (r *reporteRepo) List(ctx context.Context, limit int) ([]model.ReporteEnviado, error) {
	if limit <= 0 {
		limit = 30
	}
	var reps []model.ReporteEnviado
	err := r.db.WithContext(ctx).
		Order("fecha DESC, turno DESC").
		Limit(limit).
		Find(&reps).Error
	return reps, err
}
