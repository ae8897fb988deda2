package http

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/application/inventories"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
	"github.com/auditoriapp/auditoria-api/internal/infrastructure/spreadsheet"
)

// InventoriesHandler maneja las peticiones HTTP de inventarios.
type InventoriesHandler struct {
	uc *inventories.UseCase
}

// NewInventoriesHandler construye el handler.
func NewInventoriesHandler(uc *inventories.UseCase) *InventoriesHandler {
	return &InventoriesHandler{uc: uc}
}

// Index lista inventories globales paginados con filtros company_id,
// local_id y area_id.
func (h *InventoriesHandler) Index(c *fiber.Ctx) error {
	var f repository.InventoryFilter
	if v, err := strconv.ParseInt(c.Query("company_id"), 10, 64); err == nil {
		f.CompanyID = &v
	}
	if v, err := strconv.ParseInt(c.Query("local_id"), 10, 64); err == nil {
		f.LocalID = &v
	}
	if v, err := strconv.ParseInt(c.Query("area_id"), 10, 64); err == nil {
		f.AreaID = &v
	}
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 15)

	out, err := h.uc.Index(c.Context(), GetActor(c), f, page, perPage)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAreas lista las áreas del local con conteo de items.
func (h *InventoriesHandler) ListAreas(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	out, err := h.uc.ListAreas(c.Context(), GetActor(c), localID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByArea devuelve el área con sus items.
func (h *InventoriesHandler) ListByArea(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	out, err := h.uc.ListByArea(c.Context(), GetActor(c), areaID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddArea crea (o reusa) un área del local y anexa items.
func (h *InventoriesHandler) AddArea(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	var in dto.AddAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	out, err := h.uc.AddAreaWithInventories(c.Context(), GetActor(c), localID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddInventories upserta items en un área existente.
func (h *InventoriesHandler) AddInventories(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	var in dto.AddInventoriesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Inventories) == 0 {
		return validationError(c, map[string][]string{"inventories": {"requerido"}})
	}
	out, err := h.uc.AddInventoriesToArea(c.Context(), GetActor(c), areaID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RenameArea cambia el nombre del área.
func (h *InventoriesHandler) RenameArea(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	var in dto.RenameAreaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	if err := h.uc.RenameArea(c.Context(), GetActor(c), areaID, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// DeleteArea elimina el área con sus items.
func (h *InventoriesHandler) DeleteArea(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	if err := h.uc.RemoveArea(c.Context(), GetActor(c), areaID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// UpdateInventory actualiza parcialmente un item del área.
func (h *InventoriesHandler) UpdateInventory(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	inventoryID, ok := paramID(c, "inventoryId")
	if !ok {
		return invalidParam(c, "inventoryId")
	}
	var in dto.UpdateInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateInventory(c.Context(), GetActor(c), areaID, inventoryID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteInventory elimina un item del área.
func (h *InventoriesHandler) DeleteInventory(c *fiber.Ctx) error {
	areaID, ok := paramID(c, "areaId")
	if !ok {
		return invalidParam(c, "areaId")
	}
	inventoryID, ok := paramID(c, "inventoryId")
	if !ok {
		return invalidParam(c, "inventoryId")
	}
	if err := h.uc.RemoveInventory(c.Context(), GetActor(c), areaID, inventoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// Import recibe la planilla (multipart, campo "file") y la vuelca sobre
// el local. El campo "mode" elige la política: append (default, agrupa
// por sub_area) o match (requiere area_id). Errores por fila responden
// 422 con el detalle.
func (h *InventoriesHandler) Import(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	records, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	mode := importer.Mode(c.FormValue("mode", string(importer.ModeAppend)))
	var areaID *int64
	if v, err := strconv.ParseInt(c.FormValue("area_id"), 10, 64); err == nil {
		areaID = &v
	}

	out, err := h.uc.ImportSpreadsheet(c.Context(), GetActor(c), localID, areaID, mode, records)
	if err != nil {
		return respondError(c, err)
	}
	if len(out.Errors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// Export descarga el inventario completo del local como xlsx.
func (h *InventoriesHandler) Export(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	sheet, err := h.uc.ExportSheet(c.Context(), GetActor(c), localID)
	if err != nil {
		return respondError(c, err)
	}
	var buf bytes.Buffer
	if err := spreadsheet.WriteXLSX(sheet, &buf); err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("inventario_local_%d.xlsx", localID)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}
