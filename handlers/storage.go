package handlers

import (
	"net/http"

	"servify/services/storage"
	"servify/utils"

	"github.com/gin-gonic/gin"
)

// StorageHandler accepts license/ID document uploads and returns the stored
// document URL.
type StorageHandler struct {
	Service storage.StorageService
}

func NewStorageHandler(service storage.StorageService) *StorageHandler {
	return &StorageHandler{Service: service}
}

// UploadLicense stores a provider's license document and returns its URL.
func (h *StorageHandler) UploadLicense(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Missing document file", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Failed to read document file", err.Error())
		return
	}
	defer file.Close()

	url, err := h.Service.UploadDocument(c.Request.Context(), file, "licenses")
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "Failed to upload document", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
