package handlers

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service  *services.SupplierService
	validate *validator.Validate
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the supplier routes.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router) {
	supplierRoutes := router.Group("/suppliers")
	supplierRoutes.Get("/", h.HandleList)
	supplierRoutes.Post("/", h.HandleCreate)
	supplierRoutes.Put("/:id", h.HandleUpdate)
	supplierRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists suppliers, filtered by the optional q name prefix.
func (h *SupplierHandler) HandleList(c *fiber.Ctx) error {
	suppliers, err := h.service.Search(c.Query("q"))
	if err != nil {
		return readFailed(c, "suppliers", err)
	}
	return c.JSON(suppliers)
}

// HandleCreate creates a supplier.
func (h *SupplierHandler) HandleCreate(c *fiber.Ctx) error {
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		log.Printf("Error parsing supplier request body: %v", err)
		return invalidBody(c, err)
	}
	supplier.ID = 0
	if err := h.validate.Struct(supplier); err != nil {
		return validationFailed(c, err)
	}
	return createdOrConflict(c, h.service.Create(&supplier))
}

// HandleUpdate overwrites the supplier named by :id.
func (h *SupplierHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	var supplier models.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return invalidBody(c, err)
	}
	supplier.ID = id
	if err := h.validate.Struct(supplier); err != nil {
		return validationFailed(c, err)
	}
	return writeOutcome(c, h.service.Update(&supplier), "Supplier updated successfully!", "Could not update supplier")
}

// HandleDelete removes the supplier named by :id.
func (h *SupplierHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	return writeOutcome(c, h.service.Delete(id), "Supplier deleted successfully!", "Could not delete supplier")
}
