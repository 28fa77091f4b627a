package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
)

type PlatilloService interface {
	Crear(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error)
	Actualizar(ctx context.Context, id int64, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error)
	Desactivar(ctx context.Context, id int64) error
	// Carta returns the active catalog grouped by category, the shape the
	// waiter panel renders.
	Carta(ctx context.Context) ([]dto.CategoriaResponse, error)
	CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
}

type platilloService struct {
	repo repository.PlatilloRepository
}

func NewPlatilloService(repo repository.PlatilloRepository) PlatilloService {
	return &platilloService{repo: repo}
}

func opcionesDesdeRequest(reqs []dto.OpcionCatalogoRequest) model.OpcionesCatalogo {
	if len(reqs) == 0 {
		return nil
	}
	out := make(model.OpcionesCatalogo, len(reqs))
	for i, o := range reqs {
		out[i] = model.OpcionCatalogo{Nombre: o.Nombre, Valores: o.Valores}
	}
	return out
}

func (s *platilloService) Crear(ctx context.Context, req dto.CrearPlatilloRequest) (*dto.PlatilloResponse, error) {
	cat, err := s.repo.FindCategoria(ctx, req.CategoriaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	p := &model.Platillo{
		Nombre:      req.Nombre,
		Precio:      req.Precio,
		CategoriaID: cat.ID,
		Opciones:    opcionesDesdeRequest(req.Opciones),
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return platilloToResponse(p, cat.Nombre), nil
}

func (s *platilloService) Actualizar(ctx context.Context, id int64, req dto.ActualizarPlatilloRequest) (*dto.PlatilloResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierror.ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Precio != nil {
		p.Precio = *req.Precio
	}
	if req.CategoriaID != nil {
		p.CategoriaID = *req.CategoriaID
	}
	if req.Opciones != nil {
		p.Opciones = opcionesDesdeRequest(req.Opciones)
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	nombreCat := ""
	if cat, err := s.repo.FindCategoria(ctx, p.CategoriaID); err == nil {
		nombreCat = cat.Nombre
	}
	return platilloToResponse(p, nombreCat), nil
}

func (s *platilloService) Desactivar(ctx context.Context, id int64) error {
	return s.repo.Desactivar(ctx, id)
}

func (s *platilloService) Carta(ctx context.Context) ([]dto.CategoriaResponse, error) {
	cats, err := s.repo.ListCategorias(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(cats))
	for _, cat := range cats {
		platillos, err := s.repo.ListPorCategoria(ctx, cat.ID)
		if err != nil {
			return nil, err
		}
		cr := dto.CategoriaResponse{ID: cat.ID, Nombre: cat.Nombre}
		for i := range platillos {
			cr.Platillos = append(cr.Platillos, *platilloToResponse(&platillos[i], cat.Nombre))
		}
		out = append(out, cr)
	}
	return out, nil
}

func (s *platilloService) CrearCategoria(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	cat := &model.Categoria{Nombre: req.Nombre}
	if err := s.repo.CreateCategoria(ctx, cat); err != nil {
		return nil, err
	}
	return &dto.CategoriaResponse{ID: cat.ID, Nombre: cat.Nombre}, nil
}

func platilloToResponse(p *model.Platillo, categoria string) *dto.PlatilloResponse {
	return &dto.PlatilloResponse{
		ID:        p.ID,
		Nombre:    p.Nombre,
		Precio:    p.Precio,
		Categoria: categoria,
		Opciones:  p.Opciones,
		Activo:    p.Activo,
	}
}
