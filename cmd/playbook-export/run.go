package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	pbexport "github.com/alnah/go-playbook-export"
	"github.com/alnah/go-playbook-export/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput        = errors.New("no playbook file specified")
	ErrMissingOffer   = errors.New("--offer is required for this operation")
	ErrConflictingOps = errors.New("conflicting operation flags")
	ErrUnknownOffer   = errors.New("unknown offer selector")
	ErrMissingAPIKey  = errors.New("missing API key")
)

// operation identifies which export the CLI runs.
type operation int

const (
	opPackage operation = iota
	opSection
	opOffer
	opAsset
	opBundle
	opFull
	opList
)

// selectOperation maps operation flags to one operation. The full
// package is the default; selecting more than one operation is an
// error.
func selectOperation(f *operationFlags) (operation, error) {
	var ops []operation
	if f.section != "" {
		ops = append(ops, opSection)
	}
	if f.asset != assetIndexSentinel {
		ops = append(ops, opAsset)
	}
	if f.bundle {
		ops = append(ops, opBundle)
	}
	// --offer alone selects the offer document; with --asset or
	// --bundle it only names the target offer.
	if f.offer != "" && f.asset == assetIndexSentinel && !f.bundle {
		ops = append(ops, opOffer)
	}
	if f.full {
		ops = append(ops, opFull)
	}
	if f.pkg {
		ops = append(ops, opPackage)
	}
	if f.listDocs {
		ops = append(ops, opList)
	}

	switch len(ops) {
	case 0:
		return opPackage, nil
	case 1:
		op := ops[0]
		if (op == opAsset || op == opBundle) && f.offer == "" {
			return 0, ErrMissingOffer
		}
		return op, nil
	default:
		return 0, fmt.Errorf("%w: choose one of --section, --offer, --asset, --bundle, --full, --package, --list", ErrConflictingOps)
	}
}

// parseOfferRef maps the --offer value to an offer reference.
func parseOfferRef(s string) (pbexport.OfferRef, error) {
	switch s {
	case "one":
		return pbexport.OfferRefOne, nil
	case "two":
		return pbexport.OfferRefTwo, nil
	case "downsell":
		return pbexport.OfferRefDownsell, nil
	default:
		return 0, fmt.Errorf("%w: %q (use one, two, or downsell)", ErrUnknownOffer, s)
	}
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if cfg.Output.DefaultDir != "" {
		return cfg.Output.DefaultDir
	}
	return "."
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", config.ErrInvalidWorkers, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", config.ErrInvalidWorkers, n, config.MaxWorkers)
	}
	return nil
}

// newLogger builds the CLI logger. Quiet mode silences everything,
// verbose mode lowers the level to debug.
func newLogger(verbose, quiet bool) *zap.Logger {
	if quiet {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// run orchestrates the export process.
func run(ctx context.Context, flags *exportFlags, args []string, env *Environment) error {
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg := env.Config
	if flags.common.config != "" {
		loaded, err := config.Load(flags.common.config)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
		env.Config = cfg
	}

	op, err := selectOperation(&flags.operation)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return ErrNoInput
	}

	// Resolve operation parameters before any expensive setup.
	params := &exportParams{op: op, flags: flags}
	if op == opSection {
		params.section = pbexport.SectionID(flags.operation.section)
		if _, err := pbexport.SectionTitle(params.section); err != nil {
			return err
		}
	}
	if op == opOffer || op == opAsset || op == opBundle {
		params.offer, err = parseOfferRef(flags.operation.offer)
		if err != nil {
			return err
		}
		params.asset = flags.operation.asset
	}
	if flags.contextPath != "" {
		params.biz, err = pbexport.LoadBusinessContext(flags.contextPath)
		if err != nil {
			return err
		}
	}

	if op == opList {
		return listDocuments(args[0], env)
	}

	apiKey := env.Getenv(cfg.Generator.APIKeyEnv)
	if apiKey == "" && (op == opAsset || op == opBundle) {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, cfg.Generator.APIKeyEnv)
	}
	var genOpts []option.RequestOption
	if cfg.Generator.BaseURL != "" {
		genOpts = append(genOpts, option.WithBaseURL(cfg.Generator.BaseURL))
	}
	params.gen = pbexport.NewOpenAIGenerator(apiKey, cfg.Generator.Model, genOpts...)

	var convOpts []pbexport.ConverterOption
	if cfg.Export.TimeoutSeconds > 0 {
		convOpts = append(convOpts, pbexport.WithTimeout(time.Duration(cfg.Export.TimeoutSeconds)*time.Second))
	}

	params.log = newLogger(flags.common.verbose, flags.common.quiet)
	defer func() { _ = params.log.Sync() }()

	workers := flags.workers
	if workers == 0 {
		workers = cfg.Export.Workers
	}
	poolSize := pbexport.ResolvePoolSize(workers)
	if poolSize > len(args) {
		poolSize = len(args)
	}
	params.log.Debug("pool sized", zap.Int("size", poolSize))

	pool := newConverterPool(poolSize, func() pbexport.DocumentConverter {
		return pbexport.NewPDFConverter(convOpts...)
	})
	defer func() { _ = pool.Close() }()

	jobs := buildJobs(args, resolveOutputDir(flags.output, cfg))
	results := exportBatch(ctx, pool, jobs, params)

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}
	if failed > 0 {
		return fmt.Errorf("%d export(s) failed", failed)
	}
	return nil
}

// listDocuments prints the package manifest for a playbook without
// exporting anything.
func listDocuments(path string, env *Environment) error {
	p, err := pbexport.LoadPlaybook(path)
	if err != nil {
		return err
	}
	for _, group := range pbexport.Manifest(p) {
		fmt.Fprintf(env.Stdout, "%s\n", group.Title)
		for _, unit := range group.Units {
			fmt.Fprintf(env.Stdout, "  %s\n", unit.Path)
		}
	}
	fmt.Fprintf(env.Stdout, "  %s\n", pbexport.NavigationFilename)
	return nil
}
