package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"modemgate/pkg/config"
	"modemgate/pkg/device"
	"modemgate/pkg/docsis"
	"modemgate/pkg/publish"
)

func main() {
	log.Println("Initializing Modemgate...")

	// 1. Config (.env is optional; real deployments set the environment)
	_ = godotenv.Load()
	cfg := config.FromEnv()

	if cfg.Modem.Hostname == "" || cfg.Modem.Username == "" || cfg.Modem.Password == "" {
		log.Fatal("MODEM_HOSTNAME, MODEM_USERNAME and MODEM_PASSWORD must be set")
	}

	// 2. Device client
	client := device.NewClient(
		cfg.Modem.Hostname,
		cfg.Modem.Username,
		cfg.Modem.Password,
		device.ParseEncryption(cfg.Modem.Encryption),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 3. One-shot test mode when no broker is configured
	if cfg.Redis.Address == "" {
		log.Println("REDIS_ADDRESS not set. Running in one-shot test mode.")
		metrics, _, err := fetchOnce(ctx, client)
		if err != nil {
			log.Fatalf("Poll failed: %v", err)
		}
		out, _ := json.MarshalIndent(metrics, "", "    ")
		fmt.Println(string(out))
		return
	}

	// 4. Publisher
	redisPub := publish.NewRedisPublisher(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	defer redisPub.Close()
	if err := redisPub.Ping(ctx); err != nil {
		log.Fatalf("Failed to reach Redis at %s: %v", cfg.Redis.Address, err)
	}

	// 5. Poll loop
	log.Printf("Modemgate running. Polling every %ds. Press Ctrl+C to stop.", cfg.PollInterval)
	ticker := time.NewTicker(time.Duration(cfg.PollInterval) * time.Second)
	defer ticker.Stop()

	var tracker docsis.RateTracker
	poll(ctx, client, redisPub, cfg.Redis.Topic, &tracker)
	for {
		select {
		case <-ctx.Done():
			log.Println("Shutting down...")
			return
		case <-ticker.C:
			poll(ctx, client, redisPub, cfg.Redis.Topic, &tracker)
		}
	}
}

// published is the per-poll payload: parsed metrics with the raw counter
// sums swapped for computed per-minute rates.
type published struct {
	Status      string            `json:"status"`
	IPv4Address string            `json:"ipv4_address"`
	Downstream  publishDownstream `json:"downstream"`
	Upstream    docsis.Upstream   `json:"upstream"`
	System      docsis.System     `json:"system"`
}

type publishDownstream struct {
	PowerAvg            float64 `json:"power_avg_dbmv"`
	PowerMin            float64 `json:"power_min_dbmv"`
	PowerMax            float64 `json:"power_max_dbmv"`
	SNRAvg              float64 `json:"snr_avg_db"`
	Channels            int     `json:"channels"`
	CorrectablePerMin   float64 `json:"correctable_per_minute"`
	UncorrectablePerMin float64 `json:"uncorrectable_per_minute"`
}

func poll(ctx context.Context, client *device.Client, pub publish.Publisher, baseTopic string, tracker *docsis.RateTracker) {
	metrics, metadata, err := fetchOnce(ctx, client)
	if err != nil {
		log.Printf("Poll failed: %v", err)
		return
	}
	if metadata.SerialNumber == "" {
		log.Println("Could not determine serial number. Cannot publish metrics.")
		return
	}
	log.Printf("Collected device metadata: %s %s (serial %s, sw %s)",
		metadata.Manufacturer, metadata.ModelNumber, metadata.SerialNumber, metadata.SoftwareVersion)

	correctable, uncorrectable := tracker.Rates(time.Now(),
		metrics.Downstream.CorrectableSum, metrics.Downstream.UncorrectableSum)

	payload := published{
		Status:      metrics.Status,
		IPv4Address: metrics.IPv4Address,
		Downstream: publishDownstream{
			PowerAvg:            metrics.Downstream.PowerAvg,
			PowerMin:            metrics.Downstream.PowerMin,
			PowerMax:            metrics.Downstream.PowerMax,
			SNRAvg:              metrics.Downstream.SNRAvg,
			Channels:            metrics.Downstream.Channels,
			CorrectablePerMin:   correctable,
			UncorrectablePerMin: uncorrectable,
		},
		Upstream: metrics.Upstream,
		System:   metrics.System,
	}

	base := baseTopic + "/" + metadata.SerialNumber
	if err := publish.Metrics(ctx, pub, base, payload); err != nil {
		log.Printf("Publish failed: %v", err)
	}
}

// fetchOnce logs in, pulls the full device tree and parses it. The whole
// tree is fetched at once because the firmware rejects deep xpaths.
func fetchOnce(ctx context.Context, client *device.Client) (*docsis.Metrics, *docsis.Metadata, error) {
	if err := client.Login(ctx); err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := client.Logout(ctx); err != nil {
			log.Printf("Logout failed: %v", err)
		}
	}()

	raw, err := client.GetValueByXPath(ctx, "Device")
	if err != nil {
		return nil, nil, err
	}
	return docsis.Parse(raw)
}
