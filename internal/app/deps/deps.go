package deps

import (
	"context"
	"net/url"
	"resetme/internal/config"
	"resetme/internal/core/domain/events"
	dl "resetme/internal/core/domain/logging"
	drl "resetme/internal/core/domain/rate_limiter"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/session"
	dtranslation "resetme/internal/core/domain/translation"
	duow "resetme/internal/core/domain/unit_of_work"
	"resetme/internal/core/domain/user"
	dbresettoken "resetme/internal/db/resettoken"
	uow "resetme/internal/db/unit_of_work"
	dbuser "resetme/internal/db/user"
	"resetme/internal/implementations/email"
	"resetme/internal/implementations/logging"
	passwordhasher "resetme/internal/implementations/password_hasher"
	passwordtoken "resetme/internal/implementations/password_token"
	ratelimiter "resetme/internal/implementations/rate_limiter"
	sessionstore "resetme/internal/implementations/session_store"
	"resetme/internal/implementations/translation"
	"resetme/internal/rabbitmq"
	securityevents "resetme/internal/rabbitmq/publishers/security_events"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
)

type Deps struct {
	Config    *config.Config
	AwsConfig aws.Config
	Logger    dl.Logger

	DB       *pgxpool.Pool
	Redis    *redis.Client
	Rabbitmq *rabbitmq.Connection

	Now func() time.Time

	UnitOfWork             duow.UnitOfWork
	UserRepository         user.UserRepository
	SessionRepository      user.SessionRepository
	ResetRequestRepository resettoken.RequestRepository

	RateLimiter drl.RateLimiter

	TokenCodec  resettoken.Codec
	TokenSender resettoken.TokenSender

	TokenStore session.TokenStore
	FlashStore session.FlashStore

	PasswordHasher user.PasswordHasher
	Translator     dtranslation.Translator

	EventPublisher events.Publisher
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	deps.initAwsConfig()

	closeLogger := deps.initLogger()
	closePgxPool := deps.initPgxPool()
	closeRedisClient := deps.initRedisClient()
	closeRabbitmqConn := deps.initRabbitmqConnection()

	deps.Now = func() time.Time { return time.Now().UTC() }

	deps.UnitOfWork = uow.NewPgxUnitOfWork(deps.DB)
	deps.UserRepository = dbuser.NewPgxRepository(deps.DB)
	deps.SessionRepository = dbuser.NewPgxSessionRepository(deps.DB)
	deps.ResetRequestRepository = dbresettoken.NewPgxRepository(deps.DB)

	deps.RateLimiter = ratelimiter.NewRedis(deps.Redis, deps.Logger, deps.Now)

	deps.TokenCodec = passwordtoken.NewHMAC(
		deps.Config.Secret,
		deps.Config.PasswordResetValidDuration,
		deps.Now,
	)
	deps.TokenSender = email.NewTokenSender(
		deps.AwsConfig,
		deps.Config.EmailSender,
		deps.Config.PasswordResetTemplate,
		deps.passwordResetBaseURL(),
	)

	sessionStore := sessionstore.NewRedis(deps.Redis, deps.Config.ResetSessionTTL)
	deps.TokenStore = sessionStore
	deps.FlashStore = sessionStore

	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.Translator = translation.NewInMemory()

	closeEventPublisher := deps.initEventPublisher()

	return deps, func() {
		closeFuncs := []func(){
			closeEventPublisher,
			closeRabbitmqConn,
			closeRedisClient,
			closePgxPool,
			closeLogger,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) passwordResetBaseURL() url.URL {
	baseURL, err := url.Parse(deps.Config.PasswordResetBaseURL)
	if err != nil {
		panic(err)
	}
	return *baseURL
}

func (deps *Deps) initAwsConfig() {
	cfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKeyID,
				deps.Config.AwsSecretAccessKey,
				"",
			),
		),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	)
	if err != nil {
		panic(err)
	}
	deps.AwsConfig = cfg
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger()
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initPgxPool() func() {
	db, err := pgxpool.Connect(context.Background(), deps.Config.PostgresqlURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = db
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		db.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initRedisClient() func() {
	redisOpt, err := redis.ParseURL(deps.Config.RedisURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to Redis.", dl.Entry("err", err))
		panic(err)
	}
	redisClient := redis.NewClient(redisOpt)
	deps.Redis = redisClient
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down Redis client.")
		redisClient.Close()
		deps.Logger.Info(context.Background(), "Redis client shut down.")
	}
}

func (deps *Deps) initRabbitmqConnection() func() {
	rabbitmqConnection, err := rabbitmq.Dial(deps.Config.RabbitmqURL, deps.Logger)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to RabbitMQ.", dl.Entry("err", err))
		panic("could not connect to RabbitMQ")
	}
	deps.Rabbitmq = rabbitmqConnection
	return func() {
		deps.Logger.Info(context.Background(), "Shutting down RabbitMQ connection.")
		rabbitmqConnection.Close()
		deps.Logger.Info(context.Background(), "RabbitMQ connection shut down.")
	}
}

func (deps *Deps) initEventPublisher() func() {
	rabbitmqChannel, err := deps.Rabbitmq.Channel()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ channel.", dl.Entry("err", err))
		panic(err)
	}

	err = rabbitmqChannel.ExchangeDeclare(
		deps.Config.SecurityEventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not create RabbitMQ exchange.", dl.Entry("err", err))
		panic(err)
	}

	deps.EventPublisher = securityevents.NewRabbitMQ(
		deps.Logger,
		rabbitmqChannel,
		deps.Config.SecurityEventsExchange,
	)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down security events publisher.")
		rabbitmqChannel.Close()
		deps.Logger.Info(context.Background(), "Security events publisher shut down.")
	}
}
