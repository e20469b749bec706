package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/georgechang0117/shawty/base/kvstore"
	"github.com/georgechang0117/shawty/base/lock"
	"github.com/georgechang0117/shawty/base/metrics"
	"github.com/georgechang0117/shawty/base/trace"
	"github.com/georgechang0117/shawty/core/history"
	"github.com/georgechang0117/shawty/core/session"
	"github.com/georgechang0117/shawty/core/shortener"
	"github.com/georgechang0117/shawty/rest"

	"code.cloudfoundry.org/clock"
	"github.com/go-redis/redis"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	serviceName    = "shawty"
	redisKeyPrefix = "shawty:"
)

var (
	restPort              = flag.Int("rest_port", 8080, "rest port")
	storeKind             = flag.String("store", "bolt", "history store: bolt, sqlite, mysql, redis or memory")
	boltPath              = flag.String("bolt_path", "data/shawty.db", "bolt database file")
	sqlitePath            = flag.String("sqlite_path", "data/shawty.sqlite", "sqlite database file")
	redisAddr             = flag.String("redis_addr", "", "redis address, required by -store=redis and -lock=redis")
	lockKind              = flag.String("lock", "local", "submission lock: local or redis")
	shortenerEndpoint     = flag.String("shortener_endpoint", "", "shortening service address, overrides SHORTENER_ENDPOINT")
	shortenerTimeout      = flag.Duration("shortener_timeout", 10*time.Second, "timeout of a shortening service call")
	otlpEndpoint          = flag.String("otlp_endpoint", "", "OTLP gRPC collector address; spans are only logged when empty")
	resetMalformedHistory = flag.Bool("reset_malformed_history", false, "reset stored history when it cannot be parsed")
)

func main() {
	flag.Parse()

	rand.Seed(time.Now().UnixNano())

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("fail to init zap logger")
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Sugar().Warnf("fail to load .env, err: %v", err)
	}
	cfg, err := loadEnvConfig()
	if err != nil {
		logger.Sugar().Fatalf("fail to parse env config, err: %v", err)
	}
	if *shortenerEndpoint != "" {
		cfg.ShortenerEndpoint = *shortenerEndpoint
	}

	shutdownTrace, err := trace.Init(context.Background(), *otlpEndpoint, serviceName)
	if err != nil {
		logger.Sugar().Fatalf("fail to init tracing, err: %v", err)
	}
	defer shutdownTrace(context.Background())

	var rdb *redis.Client
	if *storeKind == "redis" || *lockKind == "redis" {
		if *redisAddr == "" {
			logger.Sugar().Fatal("redis_addr is empty")
		}
		rdb = redis.NewClient(&redis.Options{
			Addr:       *redisAddr,
			Password:   cfg.RedisPassword,
			PoolSize:   10,
			MaxRetries: 2,
			DB:         0,
		})
	}

	store, err := newStore(*storeKind, cfg, rdb)
	if err != nil {
		logger.Sugar().Fatalf("fail to init %s store, err: %v", *storeKind, err)
	}

	var locker lock.DistributedLocker
	switch *lockKind {
	case "local":
		locker = lock.NewLocal()
	case "redis":
		locker = lock.NewRedis(rdb)
	default:
		logger.Sugar().Fatalf("unknown lock: %s", *lockKind)
	}

	sess, err := session.New(
		store,
		shortener.NewHTTP(cfg.ShortenerEndpoint, nil),
		locker,
		clock.NewClock(),
		*shortenerTimeout,
	)
	var malformed *history.MalformedHistoryError
	if errors.As(err, &malformed) && *resetMalformedHistory {
		logger.Sugar().Warnf("resetting malformed history, err: %v", err)
		err = sess.History.Reset()
	}
	if err != nil {
		logger.Sugar().Fatalf("fail to start session, err: %v", err)
	}
	defer sess.Close()

	if args := flag.Args(); len(args) > 0 {
		code := submitAll(sess, args)
		sess.Close()
		shutdownTrace(context.Background())
		logger.Sync()
		os.Exit(code)
	}

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		logger.Sugar().Fatalf("fail to register metrics, err: %v", err)
	}
	r := rest.NewRest(*restPort, sess.Submitter, sess.History, reg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r.Shutdown(ctx); err != nil {
			logger.Sugar().Errorf("fail to shutdown rest, err: %v", err)
		}
	}()

	if err := r.Start(); err != nil {
		logger.Sugar().Errorf("rest stopped, err: %v", err)
	}
}

func newStore(kind string, cfg envConfig, rdb *redis.Client) (kvstore.KVStore, error) {
	switch kind {
	case "bolt":
		return kvstore.NewBolt(*boltPath)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(*sqlitePath), 0700); err != nil {
			return nil, err
		}
		db, err := gorm.Open(sqlite.Open(*sqlitePath), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return kvstore.NewGorm(db)
	case "mysql":
		if cfg.MySQLConnStr == "" {
			return nil, errors.New("MYSQL_CONN_STR is empty")
		}
		db, err := gorm.Open(mysql.Open(cfg.mysqlDSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return kvstore.NewGorm(db)
	case "redis":
		return kvstore.NewRedis(rdb, redisKeyPrefix), nil
	case "memory":
		return kvstore.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store: %s", kind)
	}
}

// submitAll submits each url in turn and prints the results, returning the exit code.
func submitAll(sess *session.Session, urls []string) int {
	code := 0
	for _, u := range urls {
		result, err := sess.Submitter.Submit(context.Background(), u)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", u, err)
			code = 1
			continue
		}
		fmt.Println(result.ShortURL)
	}
	return code
}
