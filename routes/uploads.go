package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homekeep/middleware"
)

// UploadHandler stores uploaded images on local disk under dir and serves
// them back through the /uploads static route.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

// UploadRoutes sets up the image upload route and the static file server
// behind it.
func UploadRoutes(router *gin.Engine, h *UploadHandler) {
	uploads := router.Group("/uploads")
	uploads.Use(middleware.AuthMiddleware())
	{
		uploads.POST("/images", h.UploadImage())
	}
	router.Static("/uploads/images", h.dir)
}

// UploadImage accepts a multipart "file" field, verifies it is an image by
// sniffing the content rather than trusting the declared Content-Type, and
// stores it under a fresh UUID filename.
func (h *UploadHandler) UploadImage() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
			return
		}

		if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File must be an image"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
			return
		}
		defer file.Close()

		mtype, err := mimetype.DetectReader(file)
		if err != nil || !strings.HasPrefix(mtype.String(), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File content is not a recognized image format"})
			return
		}

		if err := os.MkdirAll(h.dir, 0o755); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prepare upload directory"})
			return
		}

		ext := mtype.Extension()
		if ext == "" {
			ext = filepath.Ext(fileHeader.Filename)
		}
		name := uuid.NewString() + ext
		dst := filepath.Join(h.dir, name)

		if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"filename": name,
			"url":      "/uploads/images/" + name,
		})
	}
}
