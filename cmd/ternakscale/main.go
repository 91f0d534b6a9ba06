package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"github.com/galuhadi/ternakscale/internal/catalog"
	"github.com/galuhadi/ternakscale/internal/config"
	"github.com/galuhadi/ternakscale/internal/formula"
	"github.com/galuhadi/ternakscale/internal/service"
	"github.com/galuhadi/ternakscale/internal/tui"
)

func main() {
	var (
		speciesFlag = flag.String("species", "", "species: cattle, goat or sheep (sapi/kambing/domba also accepted)")
		methodFlag  = flag.String("method", "", "formula name, e.g. Winter or NSA-Australia")
		breedFlag   = flag.String("breed", "", "breed name from the catalog, e.g. \"Sapi Bali\"")
		sexFlag     = flag.String("sex", "", "male or female (jantan/betina also accepted)")
		girthFlag   = flag.Float64("girth", 0, "chest girth in cm")
		lengthFlag  = flag.Float64("length", 0, "body length in cm")
		listFlag    = flag.Bool("list", false, "print the formula registry and breed catalog")
		verboseFlag = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verboseFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	cat, err := catalog.Load()
	if err != nil {
		logger.Error("load breed catalog", "err", err)
		os.Exit(1)
	}
	est := &service.Estimator{
		Catalog: cat,
		Limits:  service.Range{Min: cfg.Limits.MinCM, Max: cfg.Limits.MaxCM},
		StepCM:  cfg.Sensitivity.StepCM,
		Span:    cfg.Sensitivity.Span,
	}

	switch {
	case *listFlag:
		printRegistry(cat)
	case *speciesFlag != "" || *girthFlag != 0 || *lengthFlag != 0:
		if err := runOnce(est, *speciesFlag, *methodFlag, *breedFlag, *sexFlag, *girthFlag, *lengthFlag); err != nil {
			logger.Error("estimate", "err", err)
			os.Exit(1)
		}
	default:
		logger.Debug("starting tui", "step_cm", cfg.Sensitivity.StepCM, "span", cfg.Sensitivity.Span)
		app := tui.New(cfg, cat, est)
		if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
			logger.Error("tui", "err", err)
			os.Exit(1)
		}
	}
}

// runOnce is the scripting path: one estimate printed as a plain table, no
// TUI.
func runOnce(est *service.Estimator, speciesName, methodName, breedName, sexName string, girth, length float64) error {
	species, err := formula.ParseSpecies(speciesName)
	if err != nil {
		return err
	}
	sex, err := catalog.ParseSex(sexName)
	if err != nil {
		return err
	}
	if methodName == "" && breedName == "" {
		return fmt.Errorf("either -method or -breed is required")
	}

	res, err := est.Estimate(service.Request{
		Species:    species,
		Method:     methodName,
		Breed:      breedName,
		Sex:        sex,
		ChestGirth: girth,
		BodyLength: length,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Estimated weight: %.2f kg\n", res.Weight)
	fmt.Printf("Formula: %s = %s\n", res.Method.Name(), res.Method.Expression())
	if res.Breed != "" {
		fmt.Printf("Breed: %s (factor %g, sex factor %g)\n", res.Breed, res.Factor, res.SexFactor)
	}
	fmt.Printf("Reference: %s\n\n", res.Method.Reference())

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LD (cm)\tPB (cm)\tWeight (kg)\t")
	for _, row := range res.Sensitivity {
		mark := ""
		if row.Base {
			mark = "  <- measured"
		}
		fmt.Fprintf(w, "%.1f\t%.1f\t%.2f%s\t\n", row.ChestGirth, row.BodyLength, row.Weight, mark)
	}
	return w.Flush()
}

func printRegistry(cat *catalog.Catalog) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, species := range formula.AllSpecies {
		fmt.Fprintf(w, "%s\t\t\t\n", species)
		for _, m := range formula.Methods(species) {
			fmt.Fprintf(w, "  %s\t%s\t%s\t\n", m.Name(), m.Expression(), m.Description())
		}
		for _, b := range cat.Breeds(species) {
			fmt.Fprintf(w, "  %s\t%s formula\tchest %g-%g cm, length %g-%g cm\t\n",
				b.Name, b.MethodName, b.Chest.Min, b.Chest.Max, b.Length.Min, b.Length.Max)
		}
		fmt.Fprintln(w, "\t\t\t")
	}
	_ = w.Flush()
}
