package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/odovalley/odo-valley-api/internal/config"
	"github.com/odovalley/odo-valley-api/internal/logging"
	"github.com/odovalley/odo-valley-api/internal/media"
	"github.com/odovalley/odo-valley-api/internal/repository/localdisk"
	miniorepo "github.com/odovalley/odo-valley-api/internal/repository/minio"
	"github.com/odovalley/odo-valley-api/internal/repository/ports"
	"github.com/odovalley/odo-valley-api/internal/repository/postgres"
	"github.com/odovalley/odo-valley-api/internal/service"
	transport "github.com/odovalley/odo-valley-api/internal/transport/http"
	"github.com/odovalley/odo-valley-api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Fatalf("logstash writer: %v", err)
		}
		defer writer.Close()
		log.SetOutput(io.MultiWriter(os.Stderr, writer))
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	var storage ports.ObjectStorage
	uploadDir := ""
	if cfg.UseMinIO() {
		client, err := miniorepo.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
		if err != nil {
			log.Fatalf("minio client: %v", err)
		}
		storage = miniorepo.NewStorage(client, cfg.MinIOPublicURL)
	} else {
		local, err := localdisk.NewStorage(cfg.UploadDir)
		if err != nil {
			log.Fatalf("upload directory: %v", err)
		}
		storage = local
		uploadDir = cfg.UploadDir
	}

	var processor media.Processor
	if cfg.FFMPEGPath != "" || cfg.ImageMaxDimension > 0 {
		processor = media.NewFFMPEGProcessor(cfg.FFMPEGPath, cfg.ImageMaxDimension)
	}
	uploader := service.NewUploader(storage, processor, cfg.MinIOBucket, cfg.UploadMaxBytes)

	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 30 * 24 * time.Hour
	}
	jwtManager := util.NewJWTManager(cfg.JWTSecret, sessionTTL)

	auth := service.NewAuthService(postgres.NewUserRepo(db), jwtManager, cfg.GoogleAudience)
	destinations := service.NewDestinationService(postgres.NewDestinationRepo(db), uploader)
	tours := service.NewTourService(postgres.NewTourRepo(db), uploader)
	testimonials := service.NewTestimonialService(postgres.NewTestimonialRepo(db), uploader)
	gallery := service.NewGalleryService(postgres.NewGalleryRepo(db), uploader)
	heroCards := service.NewHeroCardService(postgres.NewHeroCardRepo(db))

	e := transport.NewRouter(transport.RouterConfig{
		AllowOrigins: cfg.AllowOrigins,
		// One MiB of headroom over the file ceiling for the other form fields.
		BodyLimit: fmt.Sprintf("%dK", (cfg.UploadMaxBytes+1024*1024)/1024),
		UploadDir: uploadDir,
	})

	transport.RegisterAuth(e, auth)
	transport.RegisterDestinations(e, auth, destinations)
	transport.RegisterTours(e, auth, tours)
	transport.RegisterTestimonials(e, auth, testimonials)
	transport.RegisterGallery(e, auth, gallery)
	transport.RegisterHeroCards(e, auth, heroCards)
	transport.RegisterSwagger(e)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
