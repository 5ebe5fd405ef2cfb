// Command seed loads the division and district reference collections
// from a JSON file. The API serves them read-only, so this is the only
// write path for geographic data. Reruns are idempotent.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"server/internal/adapter/repo"
	"server/internal/domain"
	"server/internal/infra"
)

type seedFile struct {
	Divisions []domain.Division `json:"divisions"`
	Districts []domain.District `json:"districts"`
}

func main() {
	path := flag.String("file", "geo.json", "path to the geo reference JSON file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	raw, err := os.ReadFile(*path)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *path).Msg("failed to read seed file")
	}
	var data seedFile
	if err := json.Unmarshal(raw, &data); err != nil {
		logger.Fatal().Err(err).Msg("failed to parse seed file")
	}
	if len(data.Divisions) == 0 && len(data.Districts) == 0 {
		logger.Fatal().Msg("seed file holds no divisions or districts")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := infra.ConnectMongo(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect store")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	geo := repo.NewGeoRepository(db)
	if err := geo.SeedDivisions(ctx, data.Divisions); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed divisions")
	}
	if err := geo.SeedDistricts(ctx, data.Districts); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed districts")
	}

	logger.Info().
		Int("divisions", len(data.Divisions)).
		Int("districts", len(data.Districts)).
		Msg("reference data seeded")
}
