// Package batch rewrites statement files, one at a time or a directory of
// them through a pool of workers.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/fileutils"
	"fjacquet/camt-fix/internal/logging"
	"fjacquet/camt-fix/internal/parsererror"
	"fjacquet/camt-fix/internal/xmlutils"
)

// Result statuses.
const (
	StatusFixed   = "fixed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Options configure a Processor.
type Options struct {
	// Workers bounds the number of files rewritten at once; 0 uses one per CPU.
	Workers int
	// Suffix is inserted before the extension of output file names.
	Suffix string
	// Validate re-reads every output and checks it is a statement document.
	Validate bool
}

// Result describes what happened to one input file.
type Result struct {
	Input    string
	Output   string
	Status   string
	Report   *camtfix.Report
	Err      error
	Duration time.Duration
}

// Entries is the number of statement entries in the output, 0 on failure.
func (r Result) Entries() int {
	if r.Report == nil {
		return 0
	}
	return r.Report.Entries
}

// Processor reads statement files, rewrites them and writes the results.
// A file is either written completely or not at all.
type Processor struct {
	rewriter *camtfix.Rewriter
	logger   logging.Logger
	opts     Options
}

// NewProcessor creates a Processor around rewriter.
func NewProcessor(rewriter *camtfix.Rewriter, opts Options, logger logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Suffix == "" {
		opts.Suffix = "_FIXED"
	}
	return &Processor{rewriter: rewriter, logger: logger, opts: opts}
}

// OutputPath is where the rewritten copy of input goes: next to it, or in
// outDir when one is given.
func (p *Processor) OutputPath(input, outDir string) string {
	out := fileutils.FixedOutputPath(input, p.opts.Suffix)
	if outDir == "" {
		return out
	}
	return filepath.Join(outDir, filepath.Base(out))
}

// ProcessFile rewrites input into output. Parse failures come back as a
// *parsererror.ParseError naming the input file; nothing is written then.
func (p *Processor) ProcessFile(ctx context.Context, input, output string) Result {
	start := time.Now()
	res := Result{Input: input, Output: output, Status: StatusFailed}
	log := p.logger.WithFields(
		logging.F(logging.FieldInputFile, input),
		logging.F(logging.FieldOutputFile, output))

	if err := ctx.Err(); err != nil {
		res.Status = StatusSkipped
		res.Err = err
		return res
	}

	data, err := fileutils.ReadFile(input)
	if err != nil {
		res.Err = err
		log.WithError(err).Error("Failed to read statement")
		return res
	}

	out, report, err := p.rewriter.TransformWithReport(data)
	if err != nil {
		res.Err = withSource(err, input)
		log.WithError(err).Error("Failed to rewrite statement")
		return res
	}
	report.Source = input

	if p.opts.Validate {
		if err := xmlutils.ValidateStatement(output, out); err != nil {
			res.Err = err
			log.WithError(err).Error("Rewritten statement failed validation")
			return res
		}
	}

	if err := fileutils.WriteFileAtomic(output, out, 0644); err != nil {
		res.Err = err
		log.WithError(err).Error("Failed to write statement")
		return res
	}

	res.Status = StatusFixed
	res.Report = report
	res.Duration = time.Since(start)
	log.Info("Statement rewritten",
		logging.F(logging.FieldCount, report.Entries),
		logging.F(logging.FieldDuration, res.Duration.Milliseconds()))
	return res
}

// ProcessDirectory rewrites every .xml file directly inside inDir into
// outDir (inDir itself when empty). Files already carrying the output
// suffix are left out. Results keep the sorted order of the inputs;
// per-file failures are reported in them, the error is for listing
// failures and cancellation.
func (p *Processor) ProcessDirectory(ctx context.Context, inDir, outDir string) ([]Result, error) {
	files, err := fileutils.ListFilesWithExtension(inDir, ".xml")
	if err != nil {
		return nil, err
	}
	if outDir == "" {
		outDir = inDir
	}
	if err := fileutils.EnsureDirectoryExists(outDir); err != nil {
		return nil, err
	}

	jobs := make([]job, 0, len(files))
	for _, file := range files {
		if fileutils.IsFixedName(file, p.opts.Suffix) {
			p.logger.Debug("Skipping already rewritten file", logging.F(logging.FieldFile, file))
			continue
		}
		jobs = append(jobs, job{input: file, output: p.OutputPath(file, outDir)})
	}

	results := p.run(ctx, jobs)
	return results, ctx.Err()
}

type job struct {
	input  string
	output string
}

// run spreads jobs over the workers and returns one result per job, in job
// order. Jobs not started before ctx is done are reported as skipped.
func (p *Processor) run(ctx context.Context, jobs []job) []Result {
	results := make([]Result, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	workers := p.workerCount(len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.ProcessFile(ctx, jobs[i].input, jobs[i].output)
			}
		}()
	}

	next := 0
feed:
	for ; next < len(jobs); next++ {
		select {
		case indexes <- next:
		case <-ctx.Done():
			break feed
		}
	}
	close(indexes)
	wg.Wait()

	for i := next; i < len(jobs); i++ {
		results[i] = Result{Input: jobs[i].input, Output: jobs[i].output, Status: StatusSkipped, Err: ctx.Err()}
	}

	p.logger.Debug("Batch processing completed",
		logging.F(logging.FieldCount, len(jobs)),
		logging.F(logging.FieldWorkers, workers))
	return results
}

func (p *Processor) workerCount(jobs int) int {
	workers := p.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > jobs {
		workers = jobs
	}
	return workers
}

// Summary counts results by status.
type Summary struct {
	Fixed   int
	Failed  int
	Skipped int
}

// Summarize counts the results by status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusFixed:
			s.Fixed++
		case StatusSkipped:
			s.Skipped++
		default:
			s.Failed++
		}
	}
	return s
}

// String renders the summary for the CLI.
func (s Summary) String() string {
	return fmt.Sprintf("%d fixed, %d failed, %d skipped", s.Fixed, s.Failed, s.Skipped)
}

func withSource(err error, source string) error {
	var pe *parsererror.ParseError
	if errors.As(err, &pe) {
		return pe.WithSource(source)
	}
	return err
}
