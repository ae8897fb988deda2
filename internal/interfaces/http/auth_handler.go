package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/auth"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/domain/entity"
)

// AuthHandler maneja login, registro y gestión de usuarios.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica por username/password y emite el JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fields := map[string][]string{}
	if in.Username == "" {
		fields["username"] = append(fields["username"], "requerido")
	}
	if in.Password == "" {
		fields["password"] = append(fields["password"], "requerido")
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Me devuelve el usuario autenticado.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Register crea un usuario (solo ADMIN por ruta).
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	fields := map[string][]string{}
	if in.Name == "" {
		fields["name"] = append(fields["name"], "requerido")
	}
	if in.Username == "" {
		fields["username"] = append(fields["username"], "requerido")
	}
	if len(in.Password) < 6 {
		fields["password"] = append(fields["password"], "mínimo 6 caracteres")
	}
	if in.Role != "" && !validRole(in.Role) {
		fields["role"] = append(fields["role"], "rol desconocido")
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRoles devuelve los roles del sistema.
func (h *AuthHandler) ListRoles(c *fiber.Ctx) error {
	return c.JSON(entity.Roles())
}

// ListUsers lista todos los usuarios (solo ADMIN por ruta).
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateUser actualiza campos presentes y asignaciones (solo ADMIN por ruta).
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Role != nil && !validRole(*in.Role) {
		return validationError(c, map[string][]string{"role": {"rol desconocido"}})
	}
	out, err := h.uc.UpdateUser(c.Context(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser elimina un usuario (solo ADMIN por ruta).
func (h *AuthHandler) DeleteUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	if err := h.uc.DeleteUser(c.Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// ListSupervisors lista los usuarios con rol SUPERVISOR.
func (h *AuthHandler) ListSupervisors(c *fiber.Ctx) error {
	out, err := h.uc.ListSupervisors(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSupervisor devuelve un supervisor por id.
func (h *AuthHandler) GetSupervisor(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return invalidParam(c, "id")
	}
	out, err := h.uc.GetSupervisor(c.Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSupervisorsByLocal lista supervisores asignados a un local.
func (h *AuthHandler) ListSupervisorsByLocal(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	out, err := h.uc.ListSupervisorsByLocal(c.Context(), localID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func validRole(role string) bool {
	for _, r := range entity.Roles() {
		if role == r {
			return true
		}
	}
	return false
}

// paramID parsea un parámetro de ruta numérico.
func paramID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// invalidParam responde 400 por parámetro de ruta no numérico.
func invalidParam(c *fiber.Ctx, name string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PARAM", Message: name + " debe ser numérico"})
}
