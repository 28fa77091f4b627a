package service

import (
	"context"
	"fmt"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/apierror"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/borrador"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/repository"
)

// BorradorService exposes the per-waiter draft: add, remove and requantify
// lines before dispatch. Prices always come from the catalog at the moment a
// line enters the draft.
type BorradorService interface {
	Ver(ctx context.Context, usuarioID string) dto.BorradorResponse
	Agregar(ctx context.Context, usuarioID string, req dto.ItemRequest) (*dto.BorradorResponse, error)
	Quitar(ctx context.Context, usuarioID string, req dto.QuitarItemRequest) dto.BorradorResponse
	Cantidad(ctx context.Context, usuarioID string, req dto.CantidadItemRequest) dto.BorradorResponse
	Limpiar(usuarioID string)
}

type borradorService struct {
	store     *borrador.Store
	platillos repository.PlatilloRepository
}

func NewBorradorService(store *borrador.Store, platillos repository.PlatilloRepository) BorradorService {
	return &borradorService{store: store, platillos: platillos}
}

func (s *borradorService) Ver(_ context.Context, usuarioID string) dto.BorradorResponse {
	return dto.NuevoBorradorResponse(s.store.Items(usuarioID))
}

func (s *borradorService) Agregar(ctx context.Context, usuarioID string, req dto.ItemRequest) (*dto.BorradorResponse, error) {
	p, err := s.platillos.FindByID(ctx, req.PlatilloID)
	if err != nil {
		return nil, fmt.Errorf("%w: platillo %d no existe", apierror.ErrValidacion, req.PlatilloID)
	}
	if !p.Activo {
		return nil, fmt.Errorf("%w: platillo %q esta inactivo", apierror.ErrValidacion, p.Nombre)
	}

	items := s.store.AgregarItem(usuarioID, model.Item{
		PlatilloID: p.ID,
		Nombre:     p.Nombre,
		Precio:     p.Precio,
		Cantidad:   req.Cantidad,
		Opciones:   model.NormalizarOpciones(req.Opciones),
		Nota:       req.Nota,
	})
	resp := dto.NuevoBorradorResponse(items)
	return &resp, nil
}

func (s *borradorService) Quitar(_ context.Context, usuarioID string, req dto.QuitarItemRequest) dto.BorradorResponse {
	items := s.store.QuitarItem(usuarioID, req.PlatilloID, model.NormalizarOpciones(req.Opciones), req.Nota)
	return dto.NuevoBorradorResponse(items)
}

func (s *borradorService) Cantidad(_ context.Context, usuarioID string, req dto.CantidadItemRequest) dto.BorradorResponse {
	items := s.store.SetCantidad(usuarioID, req.PlatilloID, model.NormalizarOpciones(req.Opciones), req.Nota, req.Cantidad)
	return dto.NuevoBorradorResponse(items)
}

func (s *borradorService) Limpiar(usuarioID string) { s.store.Limpiar(usuarioID) }
