package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/config"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/dto"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/feed"
	"github.com/Restaurante-SanFrancisco/RestauranteSanFrancisco/internal/model"
)

type stubUsuarioRepo struct {
	users map[string]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{users: make(map[string]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = uuid.New()
	r.users[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.users[username]
	if !ok || !u.Activo {
		return nil, errors.New("not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	users := make([]model.Usuario, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.users[u.Username] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	for _, u := range r.users {
		if u.ID == id {
			u.Activo = false
			return nil
		}
	}
	return errors.New("not found")
}

// stubPublicador records every event handed to it.
type stubPublicador struct {
	eventos []eventoPublicado
}

type eventoPublicado struct {
	tabla, tipo string
	newRow      interface{}
}

func (p *stubPublicador) Publicar(_ context.Context, tabla, tipo string, newRow, _ interface{}) {
	p.eventos = append(p.eventos, eventoPublicado{tabla: tabla, tipo: tipo, newRow: newRow})
}

func newAuthCfg() *config.Config {
	return &config.Config{
		JWTSecret:          "test_jwt_secret_32_chars_minimum!",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
	}
}

func sembrarUsuario(repo *stubUsuarioRepo, username, rol string) *model.Usuario {
	u := &model.Usuario{
		ID: uuid.New(), Username: username, Nombre: "Ana Lopez",
		PasswordHash: "$2a$12$irrelevante", Rol: rol, Activo: true,
	}
	repo.users[username] = u
	return u
}

func TestActualizarUsuarioPublicaElCambio(t *testing.T) {
	repo := newStubUsuarioRepo()
	pub := &stubPublicador{}
	svc := NewAuthService(repo, newAuthCfg(), pub)
	ctx := context.Background()

	u := sembrarUsuario(repo, "ana", "mesero")

	resp, err := svc.ActualizarUsuario(ctx, u.ID, dto.ActualizarUsuarioRequest{Rol: "administrador"})
	require.NoError(t, err)
	assert.Equal(t, "administrador", resp.Rol)

	require.Len(t, pub.eventos, 1)
	ev := pub.eventos[0]
	assert.Equal(t, feed.TablaUsuarios, ev.tabla)
	assert.Equal(t, feed.TipoUpdate, ev.tipo)

	fila, ok := ev.newRow.(dto.UsuarioResponse)
	require.True(t, ok)
	assert.Equal(t, u.ID.String(), fila.ID)
	assert.Equal(t, "administrador", fila.Rol)
}

func TestDesactivarUsuarioPublicaFilaInactiva(t *testing.T) {
	repo := newStubUsuarioRepo()
	pub := &stubPublicador{}
	svc := NewAuthService(repo, newAuthCfg(), pub)
	ctx := context.Background()

	u := sembrarUsuario(repo, "ana", "mesero")

	require.NoError(t, svc.DesactivarUsuario(ctx, u.ID))
	assert.False(t, repo.users["ana"].Activo)

	// La sesion viva de Ana ve su propia fila con activo=false y cierra.
	require.Len(t, pub.eventos, 1)
	ev := pub.eventos[0]
	assert.Equal(t, feed.TablaUsuarios, ev.tabla)
	assert.Equal(t, feed.TipoUpdate, ev.tipo)

	fila, ok := ev.newRow.(dto.UsuarioResponse)
	require.True(t, ok)
	assert.Equal(t, u.ID.String(), fila.ID)
	assert.False(t, fila.Activo)
}

func TestDesactivarUsuarioInexistente(t *testing.T) {
	repo := newStubUsuarioRepo()
	pub := &stubPublicador{}
	svc := NewAuthService(repo, newAuthCfg(), pub)

	err := svc.DesactivarUsuario(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Empty(t, pub.eventos)
}
