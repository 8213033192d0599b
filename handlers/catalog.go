package handlers

import (
	"net/http"

	"servify/models"
	"servify/services/catalog"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public category hierarchy and the admin CRUD on it.
type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(service catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// ListCategories returns browsable categories.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.Service.ActiveCategories()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load categories", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// ListSubcategories returns the active subcategories of one category.
func (h *CatalogHandler) ListSubcategories(c *gin.Context) {
	categoryID := c.Param("categoryID")
	subcategories, err := h.Service.ActiveSubcategories(categoryID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to load subcategories", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategories": subcategories})
}

// ListOfferings returns approved, active offerings under a subcategory.
func (h *CatalogHandler) ListOfferings(c *gin.Context) {
	subcategoryID := c.Param("subcategoryID")
	offerings, err := h.Service.ApprovedOfferings(subcategoryID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to load offerings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": offerings})
}

// CreateCategory handles admin category creation.
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	category, err := h.Service.CreateCategory(input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create category", err.Error())
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles admin category edits.
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	input.ID = c.Param("id")
	if err := h.Service.UpdateCategory(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update category", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetCategoryActive soft-activates or soft-deactivates a category.
func (h *CatalogHandler) SetCategoryActive(c *gin.Context) {
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Service.SetCategoryActive(c.Param("id"), input.IsActive); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update category", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// CreateSubcategory handles admin subcategory creation; the price band is
// validated before persistence.
func (h *CatalogHandler) CreateSubcategory(c *gin.Context) {
	var input models.Subcategory
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	subcategory, err := h.Service.CreateSubcategory(input)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to create subcategory", err.Error())
		return
	}
	c.JSON(http.StatusCreated, subcategory)
}

// UpdateSubcategory handles admin subcategory edits.
func (h *CatalogHandler) UpdateSubcategory(c *gin.Context) {
	var input models.Subcategory
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	input.ID = c.Param("id")
	if err := h.Service.UpdateSubcategory(input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to update subcategory", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// SetSubcategoryActive soft-activates or soft-deactivates a subcategory.
func (h *CatalogHandler) SetSubcategoryActive(c *gin.Context) {
	var input struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Service.SetSubcategoryActive(c.Param("id"), input.IsActive); err != nil {
		utils.JSONError(c, http.StatusNotFound, "Failed to update subcategory", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
