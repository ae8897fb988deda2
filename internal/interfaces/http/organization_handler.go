package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/application/organization"
)

// OrganizationHandler maneja empresas y locales.
type OrganizationHandler struct {
	uc *organization.UseCase
}

// NewOrganizationHandler construye el handler.
func NewOrganizationHandler(uc *organization.UseCase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// CreateCompany registra una empresa (solo ADMIN por ruta).
func (h *OrganizationHandler) CreateCompany(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	out, err := h.uc.CreateCompany(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCompanies lista todas las empresas.
func (h *OrganizationHandler) ListCompanies(c *fiber.Ctx) error {
	out, err := h.uc.ListCompanies(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateLocal registra un local bajo una empresa (solo ADMIN por ruta).
func (h *OrganizationHandler) CreateLocal(c *fiber.Ctx) error {
	companyID, ok := paramID(c, "companyId")
	if !ok {
		return invalidParam(c, "companyId")
	}
	var in dto.CreateLocalRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	out, err := h.uc.CreateLocal(c.Context(), companyID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListLocals lista los locales de una empresa.
func (h *OrganizationHandler) ListLocals(c *fiber.Ctx) error {
	companyID, ok := paramID(c, "companyId")
	if !ok {
		return invalidParam(c, "companyId")
	}
	out, err := h.uc.ListLocals(c.Context(), companyID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
