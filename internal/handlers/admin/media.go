package admin

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"lotus_back_end/internal/database"
	"lotus_back_end/internal/models"
	"lotus_back_end/internal/services"
)

// POST /api/admin/media: upload multipart vers MinIO + entrée médiathèque
func UploadMedia(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier manquant"})
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "media"
	}

	mediaID := gocql.TimeUUID()
	objectKey := fmt.Sprintf("media/%s%s", mediaID, filepath.Ext(file.Filename))

	url, err := services.UploadFile(bucket, objectKey, file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	media := models.Media{
		ID:          mediaID,
		FileName:    file.Filename,
		ObjectKey:   objectKey,
		URL:         url,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		UploadedBy:  c.GetString("user_id"),
		CreatedAt:   time.Now(),
	}

	if err := session.Query(`INSERT INTO media (media_id, file_name, object_key, url, content_type, size, uploaded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		media.ID, media.FileName, media.ObjectKey, media.URL, media.ContentType,
		media.Size, media.UploadedBy, media.CreatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement média: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, media)
}

// GET /api/admin/media
func ListMedia(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT media_id, file_name, object_key, url, content_type, size, uploaded_by, created_at FROM media`).Iter()

	var files []models.Media
	var m models.Media
	for iter.Scan(&m.ID, &m.FileName, &m.ObjectKey, &m.URL, &m.ContentType, &m.Size, &m.UploadedBy, &m.CreatedAt) {
		files = append(files, m)
		m = models.Media{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture médiathèque: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"media": files})
}

// DELETE /api/admin/media/:id
func DeleteMedia(c *gin.Context) {
	mediaID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID média invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var objectKey string
	if err := session.Query(`SELECT object_key FROM media WHERE media_id = ?`, mediaID).Scan(&objectKey); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Média introuvable"})
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "media"
	}
	if err := services.DeleteFile(bucket, objectKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression fichier: " + err.Error()})
		return
	}

	if err := session.Query(`DELETE FROM media WHERE media_id = ?`, mediaID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression média: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Média supprimé"})
}
