package http

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/auditoriapp/auditoria-api/internal/application/audit"
	"github.com/auditoriapp/auditoria-api/internal/application/dto"
	"github.com/auditoriapp/auditoria-api/internal/application/importer"
	"github.com/auditoriapp/auditoria-api/internal/domain/repository"
	"github.com/auditoriapp/auditoria-api/internal/infrastructure/spreadsheet"
)

// AuditHandler maneja las peticiones HTTP de auditorías.
type AuditHandler struct {
	uc *audit.UseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.UseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List lista auditorías con filtros por query: company_id, local_id,
// supervisor_id, status, date_from, date_to (dd/mm/yyyy), page, per_page.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var f repository.AuditFilter
	if v, err := strconv.ParseInt(c.Query("company_id"), 10, 64); err == nil {
		f.CompanyID = &v
	}
	if v, err := strconv.ParseInt(c.Query("local_id"), 10, 64); err == nil {
		f.LocalID = &v
	}
	if v, err := strconv.ParseInt(c.Query("supervisor_id"), 10, 64); err == nil {
		f.SupervisorID = &v
	}
	f.Status = c.Query("status")
	if v, err := time.Parse(dto.DateLayout, c.Query("date_from")); err == nil {
		f.DateFrom = &v
	}
	if v, err := time.Parse(dto.DateLayout, c.Query("date_to")); err == nil {
		// incluir el día completo
		end := v.Add(24*time.Hour - time.Nanosecond)
		f.DateTo = &end
	}
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 15)

	out, err := h.uc.List(c.Context(), GetActor(c), f, page, perPage)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByLocal devuelve la auditoría más reciente del local (o la
// estructura vacía si el local no tiene auditorías).
func (h *AuditHandler) GetByLocal(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	out, err := h.uc.GetByLocal(c.Context(), GetActor(c), localID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByUUID devuelve el detalle completo de una auditoría.
func (h *AuditHandler) GetByUUID(c *fiber.Ctx) error {
	id := c.Params("uuid")
	if id == "" {
		return invalidParam(c, "uuid")
	}
	out, err := h.uc.GetByUUID(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Open abre una auditoría nueva para el local, con identidad fresca.
func (h *AuditHandler) Open(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	out, err := h.uc.Open(c.Context(), GetActor(c), localID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddCategory agrega una categoría con items a la auditoría abierta del local.
func (h *AuditHandler) AddCategory(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	var in dto.AddCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	out, err := h.uc.AddCategoryWithItems(c.Context(), GetActor(c), localID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddItems upserta items en una categoría.
func (h *AuditHandler) AddItems(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	var in dto.AddItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Items) == 0 {
		return validationError(c, map[string][]string{"items": {"requerido"}})
	}
	out, err := h.uc.AddItemsToCategory(c.Context(), GetActor(c), categoryID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RenameCategory cambia el nombre de una categoría.
func (h *AuditHandler) RenameCategory(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	var in dto.RenameCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return validationError(c, map[string][]string{"name": {"requerido"}})
	}
	if err := h.uc.RenameCategory(c.Context(), GetActor(c), categoryID, in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// DeleteCategory elimina la categoría con sus items.
func (h *AuditHandler) DeleteCategory(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	if err := h.uc.RemoveCategory(c.Context(), GetActor(c), categoryID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// UpdateItem actualiza parcialmente un item.
func (h *AuditHandler) UpdateItem(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return invalidParam(c, "itemId")
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(c.Context(), GetActor(c), categoryID, itemID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteItem elimina un item de la categoría.
func (h *AuditHandler) DeleteItem(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return invalidParam(c, "itemId")
	}
	if err := h.uc.RemoveItem(c.Context(), GetActor(c), categoryID, itemID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OkResponse{Ok: true})
}

// Close cierra la auditoría (transición terminal).
func (h *AuditHandler) Close(c *fiber.Ctx) error {
	id := c.Params("uuid")
	if id == "" {
		return invalidParam(c, "uuid")
	}
	out, err := h.uc.Close(c.Context(), GetActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CategoryItems devuelve una categoría con sus items.
func (h *AuditHandler) CategoryItems(c *fiber.Ctx) error {
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return invalidParam(c, "categoryId")
	}
	out, err := h.uc.CategoryItems(c.Context(), GetActor(c), categoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LocalCategories lista categorías de la auditoría más reciente del local.
func (h *AuditHandler) LocalCategories(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	out, err := h.uc.LocalCategories(c.Context(), GetActor(c), localID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListItems lista items globales con filtros company_id y category_id.
func (h *AuditHandler) ListItems(c *fiber.Ctx) error {
	var f repository.ItemFilter
	if v, err := strconv.ParseInt(c.Query("company_id"), 10, 64); err == nil {
		f.CompanyID = &v
	}
	if v, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil {
		f.CategoryID = &v
	}
	out, err := h.uc.ListItems(c.Context(), GetActor(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Enums devuelve los enums de estado y ranking.
func (h *AuditHandler) Enums(c *fiber.Ctx) error {
	return c.JSON(h.uc.Enums())
}

// Import recibe la planilla (multipart, campo "file") y la vuelca sobre
// la auditoría del local. El campo "mode" elige la política: match
// (default) o append. Errores por fila responden 422 con el detalle.
func (h *AuditHandler) Import(c *fiber.Ctx) error {
	localID, ok := paramID(c, "localId")
	if !ok {
		return invalidParam(c, "localId")
	}
	records, err := readUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILE", Message: err.Error()})
	}
	mode := importer.Mode(c.FormValue("mode", string(importer.ModeMatch)))

	out, err := h.uc.ImportSpreadsheet(c.Context(), GetActor(c), localID, mode, records)
	if err != nil {
		return respondError(c, err)
	}
	if len(out.Errors) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// Export descarga la auditoría más reciente del local como xlsx.
func (h *AuditHandler) Export(c *fiber.Ctx) error {
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
	filename := fmt.Sprintf("auditoria_local_%d.xlsx", localID)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buf.Bytes())
}

// readUpload abre el archivo multipart "file" y lo parsea a registros.
func readUpload(c *fiber.Ctx) ([]map[string]string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("archivo requerido en el campo file")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("abrir archivo: %w", err)
	}
	defer f.Close()
	return spreadsheet.Read(fh.Filename, f)
}
