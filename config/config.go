package config

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/corregedoria/procedimentos-api/models"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	JWTSecret      string
	RequestTimeout time.Duration

	SendgridAPIKey    string
	MailFrom          string
	MapaDestinatarios []string

	CloudinaryURL          string
	CloudinaryUploadPreset string
	CloudinaryAPISecret    string

	ChromeControlURL string
	LogoPath         string
	TiposProcesso    []string
}

// New sets up all config related services
func New() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "local")
	v.SetDefault("DB_NAME", "corregedoria")
	v.SetDefault("REQUEST_TIMEOUT", "30s")
	v.SetDefault("MAIL_FROM", "no-reply@corregedoria.local")
	v.SetDefault("TIPOS_PROCESSO", "IPM,SR,PADS,FP,CD")

	//setup zap logger and replace default logger
	logger, err := setLogger(v.GetString("ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:                    v.GetString("DB_URI"),
		DatabaseName:           v.GetString("DB_NAME"),
		BaseURL:                v.GetString("BASE_URL"),
		Port:                   v.GetString("PORT"),
		Env:                    v.GetString("ENV"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		RequestTimeout:         v.GetDuration("REQUEST_TIMEOUT"),
		SendgridAPIKey:         v.GetString("SENDGRID_API_KEY"),
		MailFrom:               v.GetString("MAIL_FROM"),
		MapaDestinatarios:      splitList(v.GetString("MAPA_DESTINATARIOS")),
		CloudinaryURL:          v.GetString("CLOUDINARY_URL"),
		CloudinaryUploadPreset: v.GetString("CLOUDINARY_UPLOAD_PRESET"),
		CloudinaryAPISecret:    v.GetString("CLOUDINARY_API_SECRET"),
		ChromeControlURL:       v.GetString("CHROME_CONTROL_URL"),
		LogoPath:               v.GetString("LOGO_PATH"),
		TiposProcesso:          splitList(v.GetString("TIPOS_PROCESSO")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().Errorw(message, "error", err)
	mensagem := message
	if err != nil {
		mensagem = fmt.Sprintf("%s: %v", message, err)
	}
	b, _ := json.Marshal(models.Resposta{Sucesso: false, Mensagem: mensagem})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}
