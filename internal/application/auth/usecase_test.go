package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/pkg/token"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	var list []*entity.User
	for _, u := range r.users {
		cp := *u
		list = append(list, &cp)
	}
	return list, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type fakeTokenRepo struct {
	tokens map[string]string // token ID -> user ID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]string{}}
}

func (r *fakeTokenRepo) Create(_ context.Context, t *entity.AuthToken) error {
	r.tokens[t.ID] = t.UserID
	return nil
}

func (r *fakeTokenRepo) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.tokens[id]
	return ok, nil
}

func (r *fakeTokenRepo) DeleteByUser(_ context.Context, userID string) error {
	for id, uid := range r.tokens {
		if uid == userID {
			delete(r.tokens, id)
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const testSecret = "test-secret-key-for-unit-tests"

func testUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return &entity.User{
		ID:           "00000000-0000-0000-0000-000000000001",
		Name:         "Admin",
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Image:        "no_image.jpg",
		Status:       1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func buildAuthUC(users *fakeUserRepo, tokens *fakeTokenRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(users, tokens, auth.TokenConfig{
		Secret: testSecret,
		Issuer: "almacen-api-test",
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	u := testUser(t, "password")
	users := newFakeUserRepo(u)
	tokens := newFakeTokenRepo()
	uc := buildAuthUC(users, tokens)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "password"})
	require.NoError(t, err)

	assert.Equal(t, "Login successful", out.Message)
	assert.Equal(t, u.Email, out.User.Email)
	assert.NotEmpty(t, out.Token)

	// El token emitido debe resolver con la identidad del usuario y registrarse.
	tokenID, userID, role, err := token.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)

	active, err := tokens.Exists(context.Background(), tokenID)
	require.NoError(t, err)
	assert.True(t, active, "el token debe quedar registrado al hacer login")

	// last_login queda marcado.
	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	u := testUser(t, "password")
	uc := buildAuthUC(newFakeUserRepo(u), newFakeTokenRepo())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "otra"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Usuario inexistente responde igual que password incorrecto: no filtra qué emails existen.
func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := buildAuthUC(newFakeUserRepo(), newFakeTokenRepo())

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "password"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	u := testUser(t, "password")
	u.Status = 0
	uc := buildAuthUC(newFakeUserRepo(u), newFakeTokenRepo())

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: u.Email, Password: "password"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Logout revoca todos los tokens del usuario, incluidos los de otras sesiones.
func TestLogout_RevocaTodosLosTokens(t *testing.T) {
	u := testUser(t, "password")
	users := newFakeUserRepo(u)
	tokens := newFakeTokenRepo()
	uc := buildAuthUC(users, tokens)

	ctx := context.Background()
	first, err := uc.Login(ctx, dto.LoginRequest{Email: u.Email, Password: "password"})
	require.NoError(t, err)
	second, err := uc.Login(ctx, dto.LoginRequest{Email: u.Email, Password: "password"})
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, u.ID))

	for _, signed := range []string{first.Token, second.Token} {
		tokenID, _, _, err := token.Parse(testSecret, signed)
		require.NoError(t, err)
		active, err := tokens.Exists(ctx, tokenID)
		require.NoError(t, err)
		assert.False(t, active, "todos los tokens del usuario deben quedar revocados")
	}
}

func TestUpdateProfile_EmailOcupado(t *testing.T) {
	u := testUser(t, "password")
	other := testUser(t, "password")
	other.ID = "00000000-0000-0000-0000-000000000002"
	other.Username = "manager"
	other.Email = "manager@example.com"
	uc := buildAuthUC(newFakeUserRepo(u, other), newFakeTokenRepo())

	_, err := uc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{
		Name:  "Admin",
		Email: other.Email,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Conservar el propio email no cuenta como colisión.
func TestUpdateProfile_MismoEmailPropio(t *testing.T) {
	u := testUser(t, "password")
	users := newFakeUserRepo(u)
	uc := buildAuthUC(users, newFakeTokenRepo())

	out, err := uc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{
		Name:  "Administrador",
		Email: u.Email,
	})
	require.NoError(t, err)
	assert.Equal(t, "Administrador", out.Name)
}

// Password vacío en la edición de perfil no toca el hash existente.
func TestUpdateProfile_PasswordVacioNoCambiaHash(t *testing.T) {
	u := testUser(t, "password")
	users := newFakeUserRepo(u)
	uc := buildAuthUC(users, newFakeTokenRepo())

	_, err := uc.UpdateProfile(context.Background(), u.ID, dto.UpdateProfileRequest{
		Name:  u.Name,
		Email: u.Email,
	})
	require.NoError(t, err)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password")))
}
