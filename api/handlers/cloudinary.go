package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/corregedoria/procedimentos-api/config"
)

// CloudinaryHandler handles Cloudinary related requests
type CloudinaryHandler struct {
	UploadPreset string
	APISecret    string
}

type assinatura struct {
	Sucesso      bool   `json:"sucesso"`
	Timestamp    string `json:"timestamp"`
	Signature    string `json:"signature"`
	UploadPreset string `json:"upload_preset"`
}

// GenerateSignature generates a signature for direct Cloudinary uploads of
// procedure attachments
func (c CloudinaryHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	if c.APISecret == "" {
		config.ErrorStatus("cloudinary não configurado", http.StatusServiceUnavailable, w, nil)
		return
	}
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params := url.Values{
		"timestamp":     {timestamp},
		"upload_preset": {c.UploadPreset},
	}
	signature, err := api.SignParameters(params, c.APISecret)
	if err != nil {
		config.ErrorStatus("failed to sign parameters", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, assinatura{
		Sucesso:      true,
		Timestamp:    timestamp,
		Signature:    signature,
		UploadPreset: c.UploadPreset,
	})
}
