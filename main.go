package main

import (
	"context"
	"os"
	"os/signal"

	"imgbus/internal/adapters/converter"
	"imgbus/internal/adapters/handler"
	"imgbus/internal/adapters/storage"
	"imgbus/internal/core/domain/operation"
	"imgbus/internal/core/service"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting imgbus...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("resizer.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	providers := buildProviders(ctx)
	defer providers.Close()

	imagingConverter := converter.NewImaging()

	operations := &operation.Registry{}
	operations.Register(operation.NewResize(providers, imagingConverter, imagingConverter))
	operations.Register(operation.NewCrop(providers, imagingConverter, imagingConverter))
	operations.Register(operation.NewCompress(providers, imagingConverter, imagingConverter))
	operations.Register(operation.NewResizeMultiple(providers, imagingConverter, imagingConverter))

	resizerHandler := handler.NewResizer(operations)

	busURL := viper.GetString("resizer.bus_url")
	if busURL == "" {
		busURL = nats.DefaultURL
	}

	nc, err := nats.Connect(busURL)
	if err != nil {
		log.Fatal().Err(err).Str("busUrl", busURL).Msg("failed connecting to message bus")
	}
	defer nc.Close()

	address := viper.GetString("resizer.address")
	if address == "" {
		address = "image.resizer"
	}

	// All provider registration has settled by now, so the service may
	// start receiving requests. Requests are handled on a fresh context,
	// not the shutdown context: messages still in flight while the
	// subscription drains must run to a terminal outcome.
	sub, err := nc.QueueSubscribe(address, "resizer", func(msg *nats.Msg) {
		go func() {
			if err := msg.Respond(resizerHandler.Handle(context.Background(), msg.Data)); err != nil {
				log.Err(err).Msg("failed to publish reply")
			}
		}()
	})
	if err != nil {
		log.Fatal().Err(err).Str("address", address).Msg("failed subscribing")
	}

	log.Info().Str("address", address).Strs("schemes", providers.Schemes()).
		Msg("image resizer listening")

	<-ctx.Done()

	log.Info().Msg("shutting down")

	if err := sub.Drain(); err != nil {
		log.Warn().Err(err).Msg("error draining subscription")
	}
}

// buildProviders registers the filesystem provider and, when their
// configuration is complete and their handshake succeeds, the optional
// gridfs and s3 providers. A failing optional provider is logged and
// left out; it never aborts startup.
func buildProviders(ctx context.Context) *service.ProviderRegistry {
	providers := service.NewProviderRegistry()

	basePath := viper.GetString("storage.base_path")
	if basePath == "" {
		basePath, _ = os.Getwd()
	}

	providers.Register("file", storage.NewFile(basePath))

	if viper.GetString("gridfs.db_name") != "" {
		viper.SetDefault("gridfs.host", "localhost")
		viper.SetDefault("gridfs.port", 27017)
		viper.SetDefault("gridfs.pool_size", 10)

		gridFS, err := storage.NewGridFS(ctx, storage.GridFSConfig{
			Host:     viper.GetString("gridfs.host"),
			Port:     viper.GetInt("gridfs.port"),
			DBName:   viper.GetString("gridfs.db_name"),
			Username: viper.GetString("gridfs.username"),
			Password: viper.GetString("gridfs.password"),
			PoolSize: viper.GetInt("gridfs.pool_size"),
		})
		if err != nil {
			log.Error().Err(err).Msg("invalid gridfs configuration")
		} else {
			providers.Register("gridfs", gridFS)
		}
	}

	s3Config := storage.S3Config{
		URI:  viper.GetString("s3.uri"),
		User: viper.GetString("s3.user"),
		Key:  viper.GetString("s3.key"),
	}
	if s3Config.URI != "" && s3Config.User != "" && s3Config.Key != "" {
		s3, err := storage.NewS3(ctx, s3Config)
		if err != nil {
			log.Error().Err(err).Msg("s3 authentication error")
		} else {
			providers.Register("s3", s3)
		}
	}

	return providers
}
