package api

import (
	"net/http"      // HTTP status codes
	"os"            // Upload staging directory
	"path/filepath" // File names
	"strings"       // Extension normalization
	"time"          // Archive key prefix

	"health_guardian/internal/domain"     // Importing domain models
	"health_guardian/internal/middleware" // Principal lookup
	"health_guardian/internal/service"    // Upload type

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/google/uuid"     // Unique staging names
	"github.com/sirupsen/logrus" // Logging library
)

// UploadPredictionsHandler stages an occurrence file, runs the model and stores significant predictions
func UploadPredictionsHandler(predictions Predictions, uploadDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file") // Multipart field "file"
		if err != nil {
			badRequest(c, "CSV file is required")
			return
		}
		if err := os.MkdirAll(uploadDir, 0o755); err != nil {
			respondError(c, err)
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		id := uuid.NewString()                                   // Staged name never reuses client input
		path := filepath.Join(uploadDir, id+ext)                 // Staging path
		key := time.Now().UTC().Format("2006/01/02/") + id + ext // Archive object key
		if err := c.SaveUploadedFile(file, path); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{"file": file.Filename, "size": file.Size, "staged": path}).Info("Prediction upload received")

		result, err := predictions.Ingest(c.Request.Context(), middleware.PrincipalFrom(c), service.Upload{
			Path: path,
			Name: file.Filename,
			Key:  key,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ListDiseasesHandler returns stored predictions newest first
func ListDiseasesHandler(predictions Predictions) gin.HandlerFunc {
	return func(c *gin.Context) {
		diseases, err := predictions.ListDiseases(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if diseases == nil {
			diseases = []domain.Disease{} // Always return an array
		}
		c.JSON(http.StatusOK, gin.H{"diseases": diseases})
	}
}
