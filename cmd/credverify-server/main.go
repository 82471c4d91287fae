package main

import (
	"context"
	"log"

	"credverify/internal/config"
	"credverify/internal/domain"
	httpapi "credverify/internal/http"
	"credverify/internal/infra/cachemem"
	"credverify/internal/infra/db"
	"credverify/internal/infra/policyrego"
	"credverify/internal/infra/ratelimit"
	"credverify/internal/usecase"
)

func main() {
	cfg := config.FromEnv()

	gdb, err := db.Open(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}

	registryRepo := db.NewRegistryRepository(gdb)
	verificationRepo := db.NewVerificationRepository(gdb)

	var limiter domain.RateLimiter
	if cfg.RedisAddr != "" {
		limiter, err = ratelimit.NewRedisLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, nil)
		if err != nil {
			log.Fatalf("failed to init redis rate limiter: %v", err)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
	}

	var policy usecase.PolicyEngine
	if cfg.PolicyBundlePath != "" {
		engine, err := policyrego.NewEngineFromBundlePath(context.Background(), cfg.PolicyBundlePath, cfg.PolicyBundleID)
		if err != nil {
			log.Fatalf("failed to load policy bundle: %v", err)
		}
		log.Printf("policy bundle loaded (hash %s)", engine.BundleHash())
		policy = engine
	}

	verifier := &usecase.VerifyCertificate{
		Registry:      registryRepo,
		Verifications: verificationRepo,
		Verdicts:      usecase.NewVerdictEngine(),
		Policy:        policy,
		Cache:         cachemem.New(),
		CacheTTL:      cfg.CacheTTL,
		Match:         usecase.DefaultMatchConfig(),
	}

	srv := httpapi.NewServer(cfg, httpapi.ServerDeps{
		Verifier:      verifier,
		Registry:      registryRepo,
		Verifications: verificationRepo,
		Limiter:       limiter,
	})
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
