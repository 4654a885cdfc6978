package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"lotus_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile upload un fichier dans le bucket et retourne son URL publique
func UploadFile(bucket, objectName string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	_, err = database.MinIO.PutObject(context.Background(), bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("http://%s/%s/%s", os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}

// DeleteFile supprime un objet du bucket
func DeleteFile(bucket, objectName string) error {
	if database.MinIO == nil {
		return fmt.Errorf("MinIO non initialisé")
	}
	return database.MinIO.RemoveObject(context.Background(), bucket, objectName, minio.RemoveObjectOptions{})
}

// PresignedURL génère une URL signée temporaire (téléchargement privé)
func PresignedURL(bucket, objectName string, expiry time.Duration) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}
	u, err := database.MinIO.PresignedGetObject(context.Background(), bucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
