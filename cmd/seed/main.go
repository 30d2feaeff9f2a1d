package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/reviewhub/backend/internal/adapters/snapshot"
	"github.com/reviewhub/backend/internal/domain/providers"
	redisclient "github.com/reviewhub/backend/internal/infrastructure/clients/redis"
	"github.com/reviewhub/backend/internal/infrastructure/observability"
	"github.com/reviewhub/backend/internal/store"
	"github.com/reviewhub/backend/pkg/config"
)

// Resets the snapshot slot to the built-in seed document. Destroys whatever
// the slot currently holds.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("reviewhub-seed", cfg.Env)

	ctx := context.Background()

	var slot providers.SnapshotProvider
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Str("file", cfg.Snapshot.FilePath).
			Msg("Redis unavailable, seeding the file slot")
		slot = snapshot.NewFileAdapter(cfg.Snapshot.FilePath)
	} else {
		defer redisClient.Close()
		slot = snapshot.NewRedisAdapter(redisClient, cfg.Snapshot.Key)
	}

	st := store.New(slot)
	if err := st.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load store")
	}
	if err := st.Reset(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to reset store")
	}

	st.View(func(s *store.State) {
		log.Info().
			Int("users", len(s.Users)).
			Int("companies", len(s.Companies)).
			Int("services", len(s.Services)).
			Int("managerApplications", len(s.ManagerApplications)).
			Msg("store reset to seed document")
	})
}
