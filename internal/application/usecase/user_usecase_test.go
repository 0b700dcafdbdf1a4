package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

type fakeUserRepo struct {
	users map[string]*entity.User
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

func seedUser() *entity.User {
	now := time.Now()
	return &entity.User{
		ID:           "user-1",
		Name:         "Admin",
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: "$2a$04$fakehashfakehashfakehash",
		Role:         entity.RoleAdmin,
		Image:        "no_image.jpg",
		Status:       1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func strPtr(s string) *string { return &s }

func TestUserCreate_OK(t *testing.T) {
	repo := newFakeUserRepo()
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name:     "Manager",
		Username: "manager",
		Email:    "manager@example.com",
		Password: "secreto1",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)

	assert.Equal(t, "manager", out.Username)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, "no_image.jpg", out.Image)
	assert.EqualValues(t, 1, out.Status)

	// El password se guarda hasheado, nunca en claro.
	stored, err := repo.GetByUsername(context.Background(), "manager")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto1")))
}

func TestUserCreate_UsernameOcupado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(seedUser()))

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name:     "Otro",
		Username: "admin",
		Email:    "otro@example.com",
		Password: "secreto1",
		Role:     entity.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUserCreate_EmailOcupado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo(seedUser()))

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name:     "Otro",
		Username: "otro",
		Email:    "admin@example.com",
		Password: "secreto1",
		Role:     entity.RoleUser,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserCreate_RolInvalido(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Name:     "Otro",
		Username: "otro",
		Email:    "otro@example.com",
		Password: "secreto1",
		Role:     "superadmin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Actualización parcial: solo cambian los campos presentes.
func TestUserUpdate_Parcial(t *testing.T) {
	u := seedUser()
	repo := newFakeUserRepo(u)
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{
		Name: strPtr("Administrador"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Administrador", out.Name)
	assert.Equal(t, u.Username, out.Username, "los campos ausentes no cambian")
	assert.Equal(t, u.Email, out.Email)
	assert.Equal(t, u.Role, out.Role)
}

// Conservar el propio username/email no cuenta como colisión.
func TestUserUpdate_MismoUsernamePropio(t *testing.T) {
	u := seedUser()
	uc := usecase.NewUserUseCase(newFakeUserRepo(u))

	out, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{
		Username: strPtr(u.Username),
		Email:    strPtr(u.Email),
	})
	require.NoError(t, err)
	assert.Equal(t, u.Username, out.Username)
}

func TestUserUpdate_UsernameDeOtro(t *testing.T) {
	u := seedUser()
	other := seedUser()
	other.ID = "user-2"
	other.Username = "manager"
	other.Email = "manager@example.com"
	uc := usecase.NewUserUseCase(newFakeUserRepo(u, other))

	_, err := uc.Update(context.Background(), u.ID, dto.UpdateUserRequest{
		Username: strPtr("manager"),
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestUserUpdate_NoEncontrado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateUserRequest{Name: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDelete_NoEncontrado(t *testing.T) {
	uc := usecase.NewUserUseCase(newFakeUserRepo())

	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserDelete_OK(t *testing.T) {
	u := seedUser()
	repo := newFakeUserRepo(u)
	uc := usecase.NewUserUseCase(repo)

	require.NoError(t, uc.Delete(context.Background(), u.ID))
	assert.Empty(t, repo.users)
}
