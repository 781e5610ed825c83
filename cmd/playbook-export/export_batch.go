package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	pbexport "github.com/alnah/go-playbook-export"
)

// exportParams groups parameters shared across batch exports.
type exportParams struct {
	op      operation
	flags   *exportFlags
	section pbexport.SectionID
	offer   pbexport.OfferRef
	asset   int
	biz     pbexport.BusinessContext
	gen     pbexport.Generator
	log     *zap.Logger
}

// PlaybookToExport represents a single playbook file to process.
type PlaybookToExport struct {
	InputPath string
	OutputDir string
}

// ExportResult holds the outcome of a single export.
type ExportResult struct {
	InputPath string
	OutputDir string
	Err       error
	Duration  time.Duration
}

// buildJobs pairs each input playbook with its output directory. A
// single input exports directly into outDir; multiple inputs each get
// a subdirectory named after the file.
func buildJobs(inputs []string, outDir string) []PlaybookToExport {
	jobs := make([]PlaybookToExport, len(inputs))
	for i, in := range inputs {
		dir := outDir
		if len(inputs) > 1 {
			base := filepath.Base(in)
			stem := strings.TrimSuffix(base, filepath.Ext(base))
			dir = filepath.Join(outDir, stem)
		}
		jobs[i] = PlaybookToExport{InputPath: in, OutputDir: dir}
	}
	return jobs
}

// exportBatch processes playbooks concurrently using the converter pool.
func exportBatch(ctx context.Context, pool Pool, jobs []PlaybookToExport, params *exportParams) []ExportResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(jobs) {
		concurrency = len(jobs)
	}

	results := make([]ExportResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			defer pool.Release(conv)

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = ExportResult{
						InputPath: jobs[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = exportOne(ctx, conv, jobs[idx], params)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// exportOne processes a single playbook file and returns the result.
// The converter comes from the pool; the exporter around it is cheap
// and built per job so each job saves into its own directory.
func exportOne(ctx context.Context, conv pbexport.DocumentConverter, job PlaybookToExport, params *exportParams) ExportResult {
	start := time.Now()
	result := ExportResult{
		InputPath: job.InputPath,
		OutputDir: job.OutputDir,
	}

	p, err := pbexport.LoadPlaybook(job.InputPath)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	opts := []pbexport.ExporterOption{
		pbexport.WithLogger(params.log.With(zap.String("playbook", job.InputPath))),
	}
	if params.flags.common.verbose {
		opts = append(opts, pbexport.WithProgressFunc(func(st pbexport.ExportState) {
			params.log.Debug("progress",
				zap.String("playbook", job.InputPath),
				zap.Stringer("status", st.Status),
				zap.Int("percent", st.Progress))
		}))
	}
	e := pbexport.NewExporter(params.gen, conv, pbexport.DirSaver{Dir: job.OutputDir}, opts...)

	switch params.op {
	case opSection:
		result.Err = e.ExportSection(ctx, p, params.section)
	case opOffer:
		result.Err = e.ExportOffer(ctx, p, params.offer)
	case opAsset:
		result.Err = e.ExportAsset(ctx, p, params.offer, params.asset, params.biz)
	case opBundle:
		result.Err = e.ExportAssetBundle(ctx, p, params.offer, params.biz)
	case opFull:
		result.Err = e.ExportPlaybook(ctx, p)
	case opPackage:
		result.Err = e.ExportPackage(ctx, p, params.biz)
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs export results using the environment's writers.
func printResults(results []ExportResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputDir, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Exported %s\n", r.InputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
