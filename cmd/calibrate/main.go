// Package main tunes detector and classical-model parameters with gonum's
// Nelder-Mead and writes the adjusted config.
//
// Usage: go run ./cmd/calibrate -stage spread -output out/
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/doubleslit/components"
	"github.com/pthm-cable/doubleslit/config"
)

// formatDuration formats a duration as HhMMmSSs or MmSSs for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	stage := flag.String("stage", "spread", "What to tune: spread | detector")
	maxTicks := flag.Int("max-ticks", 20000, "Ticks per simulation run (detector stage)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation (detector stage)")
	samples := flag.Int("samples", 800, "Screen samples per profile (spread stage)")
	maxEvals := flag.Int("max-evals", 60, "Maximum number of evaluations")
	kind := flag.String("kind", "quantum", "Particle kind for the detector stage")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	var (
		params    *ParamVector
		evaluator Evaluator
		detector  *DetectorEvaluator
	)
	switch *stage {
	case "spread":
		params = SpreadParams()
		evaluator = NewSpreadEvaluator(params, baseCfg, *samples)
	case "detector":
		k, err := components.ParseParticleKind(*kind)
		if err != nil {
			log.Fatalf("invalid -kind: %v", err)
		}
		if k == components.KindWave {
			log.Fatal("the wave regime records no hits; pick classical or quantum")
		}
		r := baseCfg.Derived.Regime
		r.Kind = k
		baseCfg.SetRegime(r)

		evalSeeds := make([]uint64, *seeds)
		for i := range evalSeeds {
			evalSeeds[i] = uint64(i*1000 + 42)
		}
		params = DetectorParams()
		detector = NewDetectorEvaluator(params, baseCfg, evalSeeds, int32(*maxTicks))
		evaluator = detector
	default:
		log.Fatalf("unknown -stage %q", *stage)
	}

	logPath := filepath.Join(*outputDir, "calibrate_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	header := []string{"eval", "distance"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)

	evalCount := 0
	bestDistance := 1e9
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			distance := evaluator.Evaluate(raw)
			evalCount++

			if distance < bestDistance {
				bestDistance = distance
				bestParams = raw
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", distance)}
			for _, v := range raw {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			line := fmt.Sprintf("Eval %d/%d: distance=%.4f (best=%.4f)", evalCount, *maxEvals, distance, bestDistance)
			if detector != nil {
				line += fmt.Sprintf(" seed_std=%.4f", detector.LastSpread())
			}
			fmt.Printf("%s | elapsed: %s\n", line, formatDuration(elapsed))

			return distance
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
	}
	method := &optimize.NelderMead{
		SimplexSize: 0.2,
	}

	fmt.Printf("Calibrating %s with %d parameters, max_evals=%d\n", *stage, params.Dim(), *maxEvals)

	initX := params.Normalize(params.Extract(baseCfg))
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		log.Printf("optimization ended: %v", err)
	}
	if bestParams == nil {
		log.Fatal("no evaluations completed")
	}

	fmt.Printf("\nCalibration complete after %d evaluations in %s\n", evalCount, formatDuration(time.Since(startTime)))
	fmt.Printf("Best distance: %.4f\n", bestDistance)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Path, bestParams[i])
	}

	// Reload so only the tuned values differ from the input config
	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.Apply(bestCfg, bestParams)

	configOutPath := filepath.Join(*outputDir, "calibrated_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write calibrated config: %v", err)
	} else {
		fmt.Printf("\nCalibrated config saved to: %s\n", configOutPath)
	}
}
