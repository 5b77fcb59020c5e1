// launching the http server and the operation event publisher
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ds124wfegd/imagetools/config"
	"github.com/ds124wfegd/imagetools/internal/pkg/codec"
	"github.com/ds124wfegd/imagetools/internal/pkg/kafka"
	"github.com/ds124wfegd/imagetools/internal/service"
	"github.com/ds124wfegd/imagetools/internal/transport"
	"github.com/gin-gonic/gin"

	"github.com/sirupsen/logrus"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},           // ban on outdate TLS certificate
		ErrorLog:          log.New(os.Stderr, "SERVER ERROR: ", log.LstdFlags), // os.Stderr can be replaced with ElsasticSearch in the feature
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires codec, service and routes. It holds no request state and
// is built once per process.
func NewHandler(cfg *config.Config, producer kafka.Producer) http.Handler {
	imgCodec := codec.NewImagingCodec()
	imgService := service.NewImageService(imgCodec, producer, cfg.Limits)
	imgHandler := transport.NewImageHandler(imgService)

	return transport.InitRoutes(imgHandler, cfg.CORS.AllowOrigins)
}

func NewServer(cfg *config.Config) {

	setupLogger(cfg.Log)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	producer := kafka.NewProducer(cfg.Kafka)
	defer func() {
		if err := producer.Close(); err != nil {
			logrus.Errorf("error occured on closing kafka producer: %s", err.Error())
		}
	}()

	srv := new(Server)
	go func() {
		if err := srv.Run(cfg, NewHandler(cfg, producer)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.WithField("port", cfg.Server.Port).Print("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}
}

func setupLogger(cfg config.LogConfig) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
