package controllers

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/montasssar/EcommerceSnazzyWear/services"
)

const MaxUploadSize = 10 * 1024 * 1024 // 10MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

type UploadController struct {
	uploader *services.ImageUploader
}

func NewUploadController(uploader *services.ImageUploader) *UploadController {
	return &UploadController{uploader: uploader}
}

// UploadImage stores a product image in the blob store and returns its URL
// for the product form to reference.
func (uc *UploadController) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File upload required"})
		return
	}
	if file.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large (max 10MB)"})
		return
	}
	if !isValidImageType(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type. Allowed: jpeg, jpg, png, webp, gif"})
		return
	}

	url, err := uc.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		zap.L().Error("Image upload failed", zap.String("filename", file.Filename), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

func isValidImageType(file *multipart.FileHeader) bool {
	if allowedImageTypes[file.Header.Get("Content-Type")] {
		return true
	}
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}
