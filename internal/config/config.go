package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	DatabaseURL     string
	JWTSecret       string
	SessionTTL      string
	GoogleAudience  string
	AllowOrigins    []string
	LogstashTCPAddr string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool
	MinIOBucket    string
	MinIOPublicURL string

	UploadDir         string
	UploadMaxBytes    int64
	ImageMaxDimension int
	FFMPEGPath        string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	uploadMax := int64(10 * 1024 * 1024)
	if v, err := strconv.ParseInt(getenv("UPLOAD_MAX_BYTES", "10485760"), 10, 64); err == nil && v > 0 {
		uploadMax = v
	}

	maxDimension := 0
	if v, err := strconv.Atoi(getenv("IMAGE_MAX_DIMENSION", "0")); err == nil && v > 0 {
		maxDimension = v
	}

	return Config{
		Port:            getenv("PORT", "5000"),
		DatabaseURL:     must("DATABASE_URL"),
		JWTSecret:       must("JWT_SECRET"),
		SessionTTL:      getenv("SESSION_TTL", "720h"),
		GoogleAudience:  getenv("GOOGLE_AUDIENCE", ""),
		AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
		LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),

		MinIOEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		MinIOBucket:    getenv("MINIO_BUCKET", "odo-valley-uploads"),
		MinIOPublicURL: getenv("MINIO_PUBLIC_URL", ""),

		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:    uploadMax,
		ImageMaxDimension: maxDimension,
		FFMPEGPath:        getenv("FFMPEG_PATH", ""),
	}
}

// UseMinIO reports whether uploads should go to object storage instead of
// the local uploads directory.
func (c Config) UseMinIO() bool {
	return strings.TrimSpace(c.MinIOEndpoint) != ""
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
