package main

import (
	"context"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	cartapp "github.com/greengarden/greenery/application/cart"
	catalogapp "github.com/greengarden/greenery/application/catalog"
	messageapp "github.com/greengarden/greenery/application/message"
	reviewapp "github.com/greengarden/greenery/application/review"
	userapp "github.com/greengarden/greenery/application/user"
	"github.com/greengarden/greenery/cmd/config"
	redisclient "github.com/greengarden/greenery/cmd/redis"
	"github.com/greengarden/greenery/constant"
	_ "github.com/greengarden/greenery/docs"
	"github.com/greengarden/greenery/model"
	listingRepo "github.com/greengarden/greenery/repository/listing"
	messageRepo "github.com/greengarden/greenery/repository/message"
	redisRepo "github.com/greengarden/greenery/repository/redis"
	userRepo "github.com/greengarden/greenery/repository/user"
	"github.com/greengarden/greenery/thirdparty/objectstore"
	"github.com/greengarden/greenery/thirdparty/rabbitmq"
	"github.com/greengarden/greenery/transport"
	"github.com/greengarden/greenery/utils/logger"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title GREENERY MARKETPLACE API
// @version 1.0
// @description Multi-tenant storefront with admin moderation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Object storage for listing images
	images, err := objectstore.NewS3Store(ctx, objectstore.S3Config{
		Bucket:        cfg.Storage.Bucket,
		Region:        cfg.Storage.Region,
		Endpoint:      cfg.Storage.Endpoint,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		UsePathStyle:  cfg.Storage.UsePathStyle,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		logger.Fatal("err init object storage", zap.Error(err))
	}

	// Moderation events are optional; the catalog works without a broker
	var events catalogapp.EventPublisher
	if cfg.Rabbit.Enabled {
		publisher, err := rabbitmq.NewPublisher(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password)
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer publisher.Close()
		events = publisher

		consumer, err := rabbitmq.NewConsumer(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password,
			func(ctx context.Context, event model.ModerationEvent) error {
				logger.Info("moderation event",
					zap.String("category", event.Category.String()),
					zap.Uint64("listing_id", event.ListingID),
					zap.Uint64("owner_id", event.OwnerID),
					zap.String("action", event.Action))
				return nil
			})
		if err != nil {
			logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
		}
		defer consumer.Close()
		if err := consumer.Start(ctx); err != nil {
			logger.Fatal("err start rabbitmq consumer", zap.Error(err))
		}
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	RedisRepo := redisRepo.NewRepository()
	ListingRepo := listingRepo.NewListingRepository(db)
	MessageRepo := messageRepo.NewMessageRepository(db)

	// Initialize application layers: one catalog store per partition, plus
	// a public-view synchronizer each so anonymous reads are served from a
	// periodically refreshed snapshot.
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)

	catalogs := make(map[constant.Category]catalogapp.CatalogApp, len(constant.Categories()))
	catalogList := make([]catalogapp.CatalogApp, 0, len(constant.Categories()))
	syncs := make(map[constant.Category]*catalogapp.Synchronizer, len(constant.Categories()))
	for _, category := range constant.Categories() {
		app := catalogapp.NewCatalogApp(category, ListingRepo, events, images)
		catalogs[category] = app
		catalogList = append(catalogList, app)

		sync := catalogapp.NewSynchronizer(app, model.Anonymous(), cfg.Catalog.RefreshInterval)
		sync.Start(ctx)
		syncs[category] = sync
	}

	CartApp := cartapp.NewCartApp(cartapp.NewManager(), catalogs)
	ReviewApp := reviewapp.NewReviewApp(catalogList)
	MessageApp := messageapp.NewMessageApp(MessageRepo)

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:    UserApp,
		CartApp:    CartApp,
		ReviewApp:  ReviewApp,
		MessageApp: MessageApp,
		Catalogs:   catalogs,
		Syncs:      syncs,
		Images:     images,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
