package handlers

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleList)
	productRoutes.Post("/", h.HandleCreate)
	productRoutes.Put("/:id", h.HandleUpdate)
	productRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists products with their category and supplier names,
// filtered by the optional q name prefix.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.Search(c.Query("q"))
	if err != nil {
		return readFailed(c, "products", err)
	}
	return c.JSON(products)
}

// HandleCreate creates a product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return invalidBody(c, err)
	}
	product.ID = 0
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}
	return createdOrConflict(c, h.service.Create(&product))
}

// HandleUpdate overwrites the product named by :id.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return invalidBody(c, err)
	}
	product.ID = id
	if err := h.validate.Struct(product); err != nil {
		return validationFailed(c, err)
	}
	return writeOutcome(c, h.service.Update(&product), "Product updated successfully!", "Could not update product")
}

// HandleDelete removes the product named by :id.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	return writeOutcome(c, h.service.Delete(id), "Product deleted successfully!", "Could not delete product")
}
