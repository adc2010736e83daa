// Command authapi runs the authentication service over a Redis user store.
//
// Configuration is flag-driven with environment fallbacks for the signing
// key (AUTHAPI_JWT_SECRET, then SECRET_KEY). The -dev flag starts an
// embedded in-process Redis so the service runs with no external
// dependencies.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	authapi "github.com/MrEthical07/authapi"
	"github.com/MrEthical07/authapi/httpapi"
	"github.com/MrEthical07/authapi/redisstore"
)

func main() {
	var (
		addr        = flag.String("addr", ":8000", "listen address")
		redisAddr   = flag.String("redis", "localhost:6379", "redis address")
		redisPrefix = flag.String("redis-prefix", "", "redis key prefix (default authapi)")
		jwtSecret   = flag.String("jwt-secret", "", "HS256 signing key, >= 32 bytes (env AUTHAPI_JWT_SECRET or SECRET_KEY)")
		accessTTL   = flag.Duration("access-ttl", 30*time.Minute, "issued token lifetime")
		dev         = flag.Bool("dev", false, "run an embedded in-process redis")
	)
	flag.Parse()

	secret := *jwtSecret
	if secret == "" {
		secret = os.Getenv("AUTHAPI_JWT_SECRET")
	}
	if secret == "" {
		secret = os.Getenv("SECRET_KEY")
	}
	if secret == "" {
		log.Fatal("signing key required: set -jwt-secret, AUTHAPI_JWT_SECRET, or SECRET_KEY")
	}

	target := *redisAddr
	if *dev {
		mini, err := miniredis.Run()
		if err != nil {
			log.Fatalf("start embedded redis: %v", err)
		}
		defer mini.Close()
		target = mini.Addr()
		log.Printf("dev mode: embedded redis at %s", target)
	}

	client := redis.NewClient(&redis.Options{Addr: target})
	defer func() { _ = client.Close() }()

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis ping %s: %v", target, err)
	}

	cfg := authapi.DefaultConfig()
	cfg.JWT.SigningKey = []byte(secret)
	cfg.JWT.AccessTTL = *accessTTL

	engine, err := authapi.New().
		WithConfig(cfg).
		WithUserStore(redisstore.New(client, *redisPrefix)).
		WithAuditSink(authapi.NewJSONWriterSink(os.Stdout)).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		log.Fatalf("build engine: %v", err)
	}
	defer engine.Close()

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewHandler(engine),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
