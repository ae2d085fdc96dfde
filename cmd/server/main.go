package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	httpadapter "civmap/internal/adapter/http"
	metricsinmem "civmap/internal/adapter/metrics/inmemory"
	gormrepo "civmap/internal/adapter/repo/gorm"
	"civmap/internal/adapter/repo/memory"
	"civmap/internal/app/generate"
	"civmap/internal/app/observe"
	"civmap/internal/app/ports"
	"civmap/internal/app/status"
	"civmap/internal/app/transform"
	"civmap/internal/app/turn"
	"civmap/internal/domain/worldgen"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	repo, txManager := mustBuildRepos()
	generators, err := buildGeneratorsFromEnv()
	if err != nil {
		log.Fatalf("worldgen config: %v", err)
	}
	kpiRecorder := metricsinmem.NewRecorder()

	h := httpadapter.Handler{
		GenerateUC: generate.UseCase{
			Repo:       repo,
			Generators: generators,
			Metrics:    kpiRecorder,
			Now:        time.Now,
		},
		StatusUC:    status.UseCase{Repo: repo},
		ObserveUC:   observe.UseCase{Repo: repo},
		TransformUC: transform.UseCase{TxManager: txManager, Repo: repo, Metrics: kpiRecorder, Now: time.Now},
		CancelUC:    transform.CancelUseCase{TxManager: txManager, Repo: repo, Metrics: kpiRecorder, Now: time.Now},
		TurnUC:      turn.UseCase{TxManager: txManager, Repo: repo, Metrics: kpiRecorder, Now: time.Now},
		KPI:         kpiRecorder,
	}

	addr := stringEnv("CIVMAP_ADDR", ":8080")
	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("civmap server listening on %s (default strategy: %s)", addr, generators[0].Strategy())
	s.Spin()
}

// mustBuildRepos uses postgres when CIVMAP_DB_DSN is set and an in-process
// store otherwise.
func mustBuildRepos() (ports.WorldRepository, ports.TxManager) {
	dsn := stringEnv("CIVMAP_DB_DSN", "")
	if dsn == "" {
		log.Println("CIVMAP_DB_DSN not set, worlds are kept in memory")
		store := memory.NewStore()
		return memory.NewWorldRepo(store), memory.NewTxManager(store)
	}
	db, err := gormrepo.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	dir := stringEnv("CIVMAP_MIGRATIONS_DIR", "db/migrations")
	if err := gormrepo.ApplyMigrations(context.Background(), db, dir); err != nil {
		log.Fatalf("apply migrations from %s: %v", dir, err)
	}
	return gormrepo.NewWorldRepo(db), gormrepo.NewTxManager(db)
}

// buildGeneratorsFromEnv returns one generator per strategy, with the one
// named by WORLDGEN_STRATEGY first so it serves requests that omit a strategy.
func buildGeneratorsFromEnv() ([]ports.WorldGenerator, error) {
	preferred, err := worldgen.ParseStrategy(os.Getenv("WORLDGEN_STRATEGY"))
	if err != nil {
		return nil, err
	}
	base := worldgen.Config{
		Scale:        floatEnv("WORLDGEN_SCALE", worldgen.DefaultScale),
		MinWaterBody: intEnv("WORLDGEN_MIN_WATER_BODY", worldgen.DefaultMinWaterBody),
	}

	out := make([]ports.WorldGenerator, 0, 2)
	for _, s := range []worldgen.Strategy{worldgen.StrategyIsland, worldgen.StrategyThreshold} {
		cfg := base
		cfg.Strategy = s
		g := worldgen.NewGenerator(cfg)
		if s == preferred {
			out = append([]ports.WorldGenerator{g}, out...)
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatEnv(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
