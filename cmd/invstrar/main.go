package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/invstrar/internal/adapter/handler"
	"github.com/rl1809/invstrar/internal/adapter/storage"
	"github.com/rl1809/invstrar/internal/config"
	"github.com/rl1809/invstrar/internal/core/service"
	"github.com/rl1809/invstrar/internal/port"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Printf("invalid configuration: %v", err)
		return handler.ExitUsage
	}

	// Initialize store
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Printf("failed to open %s store: %v", cfg.Store, err)
		return handler.ExitInternal
	}
	defer closeStore()

	// Initialize MySQL archive, optional
	var archive port.BackupArchive
	var mysqlAdapter *storage.MySQLAdapter
	if cfg.MySQLDSN != "" {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Printf("failed to connect mysql: %v", err)
			return handler.ExitInternal
		}
		defer db.Close()
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Printf("failed to ping mysql: %v", err)
			return handler.ExitInternal
		}
		mysqlAdapter = storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.Migrate(ctx); err != nil {
			log.Printf("failed to migrate mysql: %v", err)
			return handler.ExitInternal
		}
		archive = mysqlAdapter
	}

	services := service.NewServices(store, archive, service.Options{
		LowStockThreshold: cfg.LowStockThreshold,
		SampleData:        cfg.SampleData,
	}, cfg.ArchiveQueueSize)

	// Start archive workers
	var wg sync.WaitGroup
	if mysqlAdapter != nil {
		for i := 0; i < cfg.ArchiveWorkers; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				service.ArchiveWorker(id, services.Backup.GetArchiveQueue(), mysqlAdapter)
			}(i)
		}
	}
	defer func() {
		// Close archive queue and wait for workers
		services.Backup.Close()
		wg.Wait()
	}()

	if len(args) > 0 && args[0] == "watch" {
		return watch(ctx, cancel, services, archive, cfg.AutoBackupInterval)
	}

	h := handler.NewCLIHandler(services, os.Stdout, cfg.Output)
	if err := h.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "invstrar: %v\n", err)
		return handler.ExitCode(err)
	}
	return handler.ExitOK
}

// watch snapshots into the archive on an interval until SIGINT or SIGTERM.
func watch(ctx context.Context, cancel context.CancelFunc, services *service.Services, archive port.BackupArchive, interval time.Duration) int {
	if archive == nil {
		log.Println("watch needs INVSTRAR_MYSQL_DSN for the backup archive")
		return handler.ExitUsage
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		service.AutoBackup(ctx, services.Backup, interval)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")
	cancel()
	<-done
	log.Println("auto-backup stopped")
	return handler.ExitOK
}

func openStore(ctx context.Context, cfg *config.Config) (port.KeyValueStore, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 10,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, err
		}
		log.Printf("connected to redis at %s", cfg.RedisAddr)
		return storage.NewRedisAdapter(rdb, cfg.RedisPrefix), func() { rdb.Close() }, nil

	case config.StoreMemory:
		return storage.NewMemoryAdapter(), func() {}, nil

	default:
		adapter, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return adapter, func() { adapter.Close() }, nil
	}
}
