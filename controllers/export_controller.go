package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/smk-kristen-pedan/order-tracker/utils"
)

// ServeExport handles GET /api/v1/exports/:filename - serves files shared by the local sharer
func ServeExport(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		filename := c.Param("filename")

		if err := utils.ValidateFilename(filename); err != nil {
			var fileErr *utils.FileError
			if errors.As(err, &fileErr) {
				respondError(c, http.StatusBadRequest, fileErr.Code, fileErr.Message)
				return
			}
			respondError(c, http.StatusBadRequest, codeInvalidRequest, err.Error())
			return
		}

		filePath := filepath.Join(dir, filename)
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "File not found")
			return
		}

		c.Header("Content-Type", utils.ContentType(filename))
		c.Header("Cache-Control", "private, max-age=3600")
		c.File(filePath)
	}
}
