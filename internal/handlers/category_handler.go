package handlers

import (
	"log"

	"swiftstock/internal/models"
	"swiftstock/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleList)
	categoryRoutes.Post("/", h.HandleCreate)
	categoryRoutes.Put("/:id", h.HandleUpdate)
	categoryRoutes.Delete("/:id", h.HandleDelete)
}

// HandleList lists categories, filtered by the optional q name prefix.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.Search(c.Query("q"))
	if err != nil {
		return readFailed(c, "categories", err)
	}
	return c.JSON(categories)
}

// HandleCreate creates a category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return invalidBody(c, err)
	}
	category.ID = 0
	if err := h.validate.Struct(category); err != nil {
		return validationFailed(c, err)
	}
	return createdOrConflict(c, h.service.Create(&category))
}

// HandleUpdate overwrites the category named by :id.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return invalidBody(c, err)
	}
	category.ID = id
	if err := h.validate.Struct(category); err != nil {
		return validationFailed(c, err)
	}
	return writeOutcome(c, h.service.Update(&category), "Category updated successfully!", "Could not update category")
}

// HandleDelete removes the category named by :id.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return invalidBody(c, err)
	}
	return writeOutcome(c, h.service.Delete(id), "Category deleted successfully!", "Could not delete category")
}
