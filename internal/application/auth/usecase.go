package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
	"github.com/auditoriapp/auditoria-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de identidad: login, registro y gestión de usuarios.
type UseCase struct {
	users       repository.UserRepository
	assignments repository.AssignmentRepository
	jwtCfg      JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(users repository.UserRepository, assignments repository.AssignmentRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, assignments: assignments, jwtCfg: jwtCfg}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Register crea un usuario con hash bcrypt y asignaciones a locales.
// Devuelve ErrUsernameAlreadyUsed si el username ya existe.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, err := uc.users.FindByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameAlreadyUsed
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleAuditor
	}
	now := time.Now()
	user := &entity.User{
		Name:         in.Name,
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	for _, localID := range in.LocalIDs {
		if err := uc.assignments.Assign(ctx, user.ID, localID); err != nil {
			return nil, err
		}
	}
	user.LocalIDs = in.LocalIDs
	return toUserResponse(user), nil
}

// Me devuelve el usuario autenticado.
func (uc *UseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListUsers lista todos los usuarios (solo ADMIN por ruta).
func (uc *UseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// UpdateUser actualiza campos presentes y reemplaza asignaciones si vienen.
func (uc *UseCase) UpdateUser(ctx context.Context, userID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if in.LocalIDs != nil {
		if err := uc.assignments.Replace(ctx, user.ID, *in.LocalIDs); err != nil {
			return nil, err
		}
		user.LocalIDs = *in.LocalIDs
	}
	return toUserResponse(user), nil
}

// DeleteUser elimina el usuario.
func (uc *UseCase) DeleteUser(ctx context.Context, userID int64) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.Delete(ctx, userID)
}

// ListSupervisors lista los usuarios con rol SUPERVISOR.
func (uc *UseCase) ListSupervisors(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := uc.users.ListByRole(ctx, entity.RoleSupervisor)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// GetSupervisor devuelve un supervisor por id.
func (uc *UseCase) GetSupervisor(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.HasRole(entity.RoleSupervisor) {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// ListSupervisorsByLocal lista supervisores asignados a un local.
func (uc *UseCase) ListSupervisorsByLocal(ctx context.Context, localID int64) ([]dto.UserResponse, error) {
	users, err := uc.users.ListByRoleAndLocal(ctx, entity.RoleSupervisor, localID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	locals := u.LocalIDs
	if locals == nil {
		locals = []int64{}
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Role:      u.Role,
		LocalIDs:  locals,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
