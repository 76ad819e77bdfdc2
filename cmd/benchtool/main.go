package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"fleet-route-solver/internal/adapters/instance"
	"fleet-route-solver/internal/adapters/repositories"
	"fleet-route-solver/internal/domain"
	"fleet-route-solver/internal/platform/db"
	"fleet-route-solver/internal/solver"
)

// BenchConfig describes one benchmark sweep: a set of instances, a set of
// solver configurations, and shared trial parameters.
type BenchConfig struct {
	Instances []InstanceConfig `yaml:"instances"`
	Configs   []SolverConfig   `yaml:"configurations"`
	Trials    int              `yaml:"trials"`
	Seed      uint64           `yaml:"seed"`
	Workers   int              `yaml:"workers"`
	Output    string           `yaml:"output"`
	// CapacityFile is a CSV of instance name to vehicle capacity rows,
	// used for nodes-format instances that carry no capacity of their own.
	CapacityFile string `yaml:"capacity_file"`
}

type InstanceConfig struct {
	Name      string  `yaml:"name"`
	File      string  `yaml:"file"`
	Format    string  `yaml:"format"`   // "tsplib" or "nodes"
	Capacity  float64 `yaml:"capacity"` // nodes format only
	Reference float64 `yaml:"reference"`
}

type SolverConfig struct {
	Policy       string  `yaml:"policy"`
	Distribution string  `yaml:"distribution"`
	Bias         float64 `yaml:"bias"`
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	configPath := flag.String("config", "bench.yaml", "path to the sweep configuration")
	flag.Parse()

	cfg, err := readConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	runs, err := runSweep(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Output != "" {
		if err := writeCSV(cfg.Output, runs); err != nil {
			log.Fatal(err)
		}
		log.Printf("Report written path=%s rows=%d", cfg.Output, len(runs))
	}

	// Persist the sweep when a results database is configured.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		if err := persistRuns(context.Background(), url, runs); err != nil {
			log.Fatal(err)
		}
		log.Printf("Sweep persisted rows=%d", len(runs))
	}
}

func readConfig(path string) (BenchConfig, error) {
	var cfg BenchConfig

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if cfg.Trials < 1 {
		cfg.Trials = 50
	}
	if len(cfg.Instances) == 0 {
		return cfg, fmt.Errorf("read config %q: no instances listed", path)
	}
	if len(cfg.Configs) == 0 {
		return cfg, fmt.Errorf("read config %q: no solver configurations listed", path)
	}
	return cfg, nil
}

func loadInstance(ic InstanceConfig, capacities map[string]float64) (*domain.Instance, error) {
	switch ic.Format {
	case "", "tsplib":
		return instance.ParseTSPLIB(ic.File)
	case "nodes":
		// The inline capacity wins; the shared capacity table fills the gap.
		capacity := ic.Capacity
		if capacity == 0 {
			capacity = capacities[ic.Name]
		}
		return instance.ParseNodesFile(ic.File, ic.Name, capacity)
	default:
		return nil, fmt.Errorf("load instance %q: unknown format %q", ic.Name, ic.Format)
	}
}

func runSweep(ctx context.Context, cfg BenchConfig) ([]repositories.BenchmarkRun, error) {
	runs := make([]repositories.BenchmarkRun, 0, len(cfg.Instances)*len(cfg.Configs))

	var capacities map[string]float64
	if cfg.CapacityFile != "" {
		var err error
		capacities, err = instance.LoadCapacityTable(cfg.CapacityFile)
		if err != nil {
			return nil, fmt.Errorf("run sweep: %w", err)
		}
	}

	for _, ic := range cfg.Instances {
		inst, err := loadInstance(ic, capacities)
		if err != nil {
			return nil, fmt.Errorf("run sweep: %w", err)
		}
		if ic.Name != "" {
			inst.Name = ic.Name
		}

		for _, sc := range cfg.Configs {
			policy, err := solver.NewPolicy(sc.Policy, solver.Distribution(sc.Distribution), sc.Bias)
			if err != nil {
				return nil, fmt.Errorf("run sweep: %w", err)
			}

			// The deterministic policy always reproduces the classical
			// Clarke-Wright construction, so one trial is enough.
			trials := cfg.Trials
			if sc.Policy == "deterministic" {
				trials = 1
			}

			start := time.Now()
			res, err := solver.SearchInstance(ctx, inst, solver.Config{
				Trials:  trials,
				Policy:  policy,
				Seed:    cfg.Seed,
				Workers: cfg.Workers,
			})
			if err != nil {
				return nil, fmt.Errorf("run sweep: instance %q: %w", inst.Name, err)
			}

			runs = append(runs, repositories.BenchmarkRun{
				Instance:      inst.Name,
				Policy:        sc.Policy,
				Distribution:  sc.Distribution,
				BiasParameter: sc.Bias,
				Trials:        trials,
				Seed:          cfg.Seed,
				BestCost:      res.Best.Cost,
				ReferenceCost: ic.Reference,
				Elapsed:       time.Since(start),
			})
			log.Printf("instance=%s policy=%s distribution=%s bias=%g best=%.2f",
				inst.Name, sc.Policy, sc.Distribution, sc.Bias, res.Best.Cost)
		}
	}

	return runs, nil
}

func writeCSV(path string, runs []repositories.BenchmarkRun) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{
		"Instance",
		"Policy",
		"Distribution",
		"Bias",
		"Trials",
		"Seed",
		"Best cost",
		"Reference cost",
		"Deviation [%]",
		"Elapsed [ms]",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, run := range runs {
		deviation := ""
		if run.ReferenceCost > 0 {
			deviation = fmt.Sprintf("%.2f", 100*(run.BestCost-run.ReferenceCost)/run.ReferenceCost)
		}
		record := []string{
			run.Instance,
			run.Policy,
			run.Distribution,
			fmt.Sprintf("%.2f", run.BiasParameter),
			strconv.Itoa(run.Trials),
			strconv.FormatUint(run.Seed, 10),
			fmt.Sprintf("%.2f", run.BestCost),
			fmt.Sprintf("%.2f", run.ReferenceCost),
			deviation,
			strconv.FormatInt(run.Elapsed.Milliseconds(), 10),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func persistRuns(ctx context.Context, databaseURL string, runs []repositories.BenchmarkRun) error {
	pg, err := db.Open(databaseURL)
	if err != nil {
		return fmt.Errorf("persist runs: %w", err)
	}
	defer pg.Close()

	repo := repositories.NewPgBenchmarkRepository(pg)
	if err := repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("persist runs: %w", err)
	}
	for _, run := range runs {
		if err := repo.InsertRun(ctx, run); err != nil {
			return fmt.Errorf("persist runs: %w", err)
		}
	}
	return nil
}
