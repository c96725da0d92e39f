package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/rl1809/invstrar/internal/adapter/storage"
	"github.com/rl1809/invstrar/internal/core/domain"
	"github.com/rl1809/invstrar/internal/core/service"
)

const (
	redisAddr     = "localhost:6379"
	keyPrefix     = "invstrar-stress:"
	initialStock  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous run
	for _, key := range domain.StorageKeys {
		rdb.Del(ctx, keyPrefix+key)
	}

	store := storage.NewRedisAdapter(rdb, keyPrefix)
	services := service.NewServices(store, nil, service.Options{LowStockThreshold: domain.DefaultLowStockThreshold}, 0)

	item, err := services.Inventory.Add(ctx, domain.InventoryItem{
		Name:      "Stress Item",
		Quantity:  initialStock,
		UnitPrice: decimal.NewFromInt(1),
	})
	if err != nil {
		log.Fatalf("failed to add item: %v", err)
	}

	// Counters
	var successCount atomic.Int32
	var refusedCount atomic.Int32
	var failedCount atomic.Int32

	// Each request takes one unit; takes beyond the stock on hand are refused
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			_, err := services.Inventory.Take(ctx, item.ID, 1)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrInsufficientStock):
				refusedCount.Add(1)
			default:
				log.Printf("take failed: %v", err)
				failedCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Results
	success := successCount.Load()
	refused := refusedCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Initial Stock:    %d\n", initialStock)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Taken:            %d\n", success)
	fmt.Printf("Refused:          %d\n", refused)
	fmt.Printf("Errors:           %d\n", failedCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == int32(initialStock) && refused == int32(totalRequests-initialStock) {
		fmt.Printf("PASS: Exactly %d units taken, %d refused\n", initialStock, totalRequests-initialStock)
	} else {
		fmt.Printf("FAIL: Expected %d taken/%d refused, got %d/%d\n",
			initialStock, totalRequests-initialStock, success, refused)
	}

	final, err := services.Inventory.Get(ctx, item.ID)
	if err != nil {
		log.Fatalf("failed to read item: %v", err)
	}
	fmt.Printf("Final Quantity: %d (%s)\n", final.Quantity, final.Status)

	if final.Quantity == 0 && final.Status == domain.StockStatusOutOfStock {
		fmt.Println("PASS: Stock depleted to 0 and marked Out of Stock")
	} else {
		fmt.Printf("FAIL: Expected 0 / Out of Stock, got %d / %s\n", final.Quantity, final.Status)
	}

	alerts, err := services.Alerts.Unread(ctx)
	if err != nil {
		log.Fatalf("failed to read alerts: %v", err)
	}
	if len(alerts) == 1 && alerts[0].Kind == domain.AlertKindOutOfStock {
		fmt.Println("PASS: One out_of_stock alert raised")
	} else {
		fmt.Printf("FAIL: Expected one out_of_stock alert, got %d\n", len(alerts))
	}
}
