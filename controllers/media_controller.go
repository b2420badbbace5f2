package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"mingle_server/services"
)

// MediaController hands out presigned S3 URLs for uploads and reads
type MediaController struct {
	Media *services.MediaService
}

// GeneratePresignedURL generates a presigned URL for S3 uploads
func (c *MediaController) GeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.FileName == "" || payload.FileType == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	url, key, err := c.Media.GenerateUploadURL(payload.FileName, payload.FileType)
	if err != nil {
		log.Printf("Error generating presigned upload URL: %v", err)
		http.Error(w, "Failed to generate presigned URL", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"url": url, "key": key})
}

// GetPresignedReadURL generates a presigned URL for reading S3 objects
func (c *MediaController) GetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	url, err := c.Media.GenerateReadURL(payload.Key)
	if err != nil {
		log.Printf("Error generating presigned read URL: %v", err)
		http.Error(w, "Failed to generate read presigned URL", http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
