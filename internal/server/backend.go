package server

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	adminapp "github.com/sngm3741/halal-food-club/api/internal/admin/application"
	"github.com/sngm3741/halal-food-club/api/internal/config"
	kafkapub "github.com/sngm3741/halal-food-club/api/internal/infrastructure/kafka"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/memory"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/messenger"
	mongodoc "github.com/sngm3741/halal-food-club/api/internal/infrastructure/mongo"
	"github.com/sngm3741/halal-food-club/api/internal/infrastructure/postgres"
	redislock "github.com/sngm3741/halal-food-club/api/internal/infrastructure/redis"
	publicapp "github.com/sngm3741/halal-food-club/api/internal/public/application"
)

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

type closer struct {
	name  string
	close func(ctx context.Context) error
}

// backend holds the adapters selected by configuration.
type backend struct {
	submissions       adminapp.SubmissionRepository
	adminRestaurants  adminapp.RestaurantRepository
	publicRestaurants publicapp.RestaurantRepository
	reviews           publicapp.ReviewRepository
	locker            adminapp.Locker
	events            adminapp.EventPublisher
	notifier          adminapp.Notifier
	checks            []healthCheck
	closers           []closer
}

func openBackend(ctx context.Context, cfg config.Config, logger *log.Logger) (*backend, error) {
	b := &backend{}
	var err error
	switch cfg.StoreBackend {
	case config.BackendMongo:
		err = b.openMongo(ctx, cfg, logger)
	case config.BackendPostgres:
		err = b.openPostgres(ctx, cfg, logger)
	default:
		b.openMemory(logger)
	}
	if err != nil {
		b.close(context.Background(), logger)
		return nil, err
	}

	b.openLocker(cfg, logger)
	b.openEvents(cfg, logger)
	b.notifier = messenger.NewNotifier(messenger.Config{
		Endpoint:           cfg.MessengerEndpoint,
		Destination:        cfg.MessengerDestination,
		AdminSubmissionURL: cfg.AdminSubmissionBaseURL,
		Timeout:            cfg.MessengerTimeout,
		RetryDelay:         500 * time.Millisecond,
		Logger:             logger,
	})
	return b, nil
}

func (b *backend) openMemory(logger *log.Logger) {
	logger.Printf("using in-memory store; data is lost on restart")
	store := memory.NewRestaurantStore()
	b.submissions = memory.NewSubmissionRepository()
	b.adminRestaurants = store.Admin()
	b.publicRestaurants = store.Public()
	b.reviews = store.Reviews()
}

func (b *backend) openMongo(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	b.closers = append(b.closers, closer{name: "mongo", close: client.Disconnect})

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	names := mongodoc.Collections{
		Submissions: cfg.SubmissionCollection,
		Restaurants: cfg.RestaurantCollection,
		Reviews:     cfg.ReviewCollection,
	}
	if err := mongodoc.EnsureIndexes(connectCtx, db, names); err != nil {
		return err
	}

	b.submissions = mongodoc.NewSubmissionRepository(db, names.Submissions)
	b.adminRestaurants = mongodoc.NewAdminRestaurantRepository(db, names.Restaurants)
	b.publicRestaurants = mongodoc.NewPublicRestaurantRepository(db, names.Restaurants)
	b.reviews = mongodoc.NewReviewRepository(db, names.Reviews, names.Restaurants)
	b.checks = append(b.checks, healthCheck{name: "mongo", check: func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}})
	logger.Printf("using mongo store db=%s", cfg.MongoDatabase)
	return nil
}

func (b *backend) openPostgres(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	db, err := postgres.Open(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	b.closers = append(b.closers, closer{name: "postgres", close: func(context.Context) error { return db.Close() }})

	b.submissions = postgres.NewSubmissionRepository(db)
	b.adminRestaurants = postgres.NewAdminRestaurantRepository(db)
	b.publicRestaurants = postgres.NewPublicRestaurantRepository(db)
	b.reviews = postgres.NewReviewRepository(db)
	b.checks = append(b.checks, healthCheck{name: "postgres", check: db.PingContext})
	logger.Printf("using postgres store")
	return nil
}

func (b *backend) openLocker(cfg config.Config, logger *log.Logger) {
	if cfg.RedisAddr == "" {
		b.locker = memory.NewKeyedLocker()
		return
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	locker := redislock.NewLocker(client, cfg.LockTTL, logger)
	b.locker = locker
	b.checks = append(b.checks, healthCheck{name: "redis", check: locker.Ping})
	b.closers = append(b.closers, closer{name: "redis", close: func(context.Context) error { return client.Close() }})
	logger.Printf("using redis submission locks addr=%s", cfg.RedisAddr)
}

func (b *backend) openEvents(cfg config.Config, logger *log.Logger) {
	if len(cfg.KafkaBrokers) == 0 {
		b.events = adminapp.LogPublisher{Logger: logger}
		return
	}
	publisher := kafkapub.NewPublisher(cfg.KafkaBrokers, cfg.KafkaLifecycleTopic)
	b.events = publisher
	b.closers = append(b.closers, closer{name: "kafka", close: func(context.Context) error { return publisher.Close() }})
	logger.Printf("publishing lifecycle events to kafka topic=%s", cfg.KafkaLifecycleTopic)
}

// close releases resources in reverse order of acquisition.
func (b *backend) close(ctx context.Context, logger *log.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		c := b.closers[i]
		closeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := c.close(closeCtx); err != nil {
			logger.Printf("%s close failed: %v", c.name, err)
		}
		cancel()
	}
	b.closers = nil
}
