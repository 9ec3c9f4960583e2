package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantatel/quantatel-go/internal/bootstrap"
	"github.com/quantatel/quantatel-go/internal/domain/classify"
	"github.com/quantatel/quantatel-go/internal/domain/model"
	"github.com/quantatel/quantatel-go/internal/domain/progress"
	"github.com/quantatel/quantatel-go/internal/service"
)

type submitOptions struct {
	Title        string
	Description  string
	Priority     int
	DataSources  string
	ThreatType   string
	TimeWindow   string
	UseSimulator bool
	Tags         string
	Track        bool
}

func parseSubmitFlags(args []string) (submitOptions, error) {
	var opts submitOptions
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.StringVar(&opts.Title, "title", "", "job title (required)")
	fs.StringVar(&opts.Description, "description", "", "job description")
	fs.IntVar(&opts.Priority, "priority", 5, "job priority, 1-10")
	fs.StringVar(&opts.DataSources, "sources", "", "comma-separated data source identifiers (required)")
	fs.StringVar(&opts.ThreatType, "threat-type", "malware", "threat type to analyze")
	fs.StringVar(&opts.TimeWindow, "time-window", "24h", "analysis time window")
	fs.BoolVar(&opts.UseSimulator, "simulator", true, "run on the simulator backend")
	fs.StringVar(&opts.Tags, "tags", "", "comma-separated tags")
	fs.BoolVar(&opts.Track, "track", false, "track the job after submission")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runSubmit(cmdCtx *commandContext, args []string) error {
	opts, err := parseSubmitFlags(args)
	if err != nil {
		return err
	}

	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return err
	}

	submitter, err := service.NewSubmissionService(service.SubmissionServiceOptions{
		Submitter: client,
		Logger:    cmdCtx.Logger,
	})
	if err != nil {
		return err
	}

	submission := model.JobSubmission{
		Title:        opts.Title,
		Description:  opts.Description,
		Priority:     opts.Priority,
		DataSources:  splitCSV(opts.DataSources),
		ThreatType:   opts.ThreatType,
		TimeWindow:   opts.TimeWindow,
		UseSimulator: opts.UseSimulator,
		Tags:         splitCSV(opts.Tags),
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, time.Minute)
	jobID, err := submitter.Submit(ctx, submission)
	cancel()
	if err != nil {
		return err
	}

	if err := writef(os.Stdout, "job submitted: %s\n", jobID); err != nil {
		return err
	}

	if opts.Track {
		return trackJob(cmdCtx, jobID)
	}
	return nil
}

type trackOptions struct {
	JobID string
}

func parseTrackFlags(args []string) (trackOptions, error) {
	var opts trackOptions
	fs := flag.NewFlagSet("track", flag.ContinueOnError)
	fs.StringVar(&opts.JobID, "job", "", "job id to track (required)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.JobID == "" {
		return opts, errors.New("-job is required")
	}
	return opts, nil
}

func runTrack(cmdCtx *commandContext, args []string) error {
	opts, err := parseTrackFlags(args)
	if err != nil {
		return err
	}
	return trackJob(cmdCtx, opts.JobID)
}

// trackJob polls the job until it reaches a terminal status, rendering a live
// progress view between polls. Ctrl-C cancels tracking without touching the
// job itself: the backend keeps running it.
func trackJob(cmdCtx *commandContext, jobID string) error {
	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return err
	}

	poller, err := bootstrap.NewPoller(client, cmdCtx.Config.Poller, cmdCtx.Logger)
	if err != nil {
		return err
	}

	notifier, err := bootstrap.NewCompletionNotifier(cmdCtx.Config.Notify, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ticker := service.NewProgressTicker(service.ProgressTickerOptions{
		Tick:   cmdCtx.Config.Poller.ProgressTick,
		Logger: cmdCtx.Logger,
	})

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := poller.Start(ctx, jobID); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	pollingDone := make(chan struct{})
	g.Go(func() error {
		defer close(pollingDone)
		for update := range poller.Updates() {
			if update.Err != nil {
				cmdCtx.Logger.Warn("poll failed, retrying", "job_id", jobID, "error", update.Err)
			}
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
			poller.Cancel()
		case <-pollingDone:
		}
		return nil
	})

	g.Go(func() error {
		err := ticker.Run(gctx, poller.Snapshot, renderProgress)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if ctx.Err() != nil {
		return writeln(os.Stdout, "tracking cancelled; the job keeps running on the backend")
	}

	final := poller.Snapshot()
	if final == nil {
		return errors.New("no job state observed")
	}

	if notifier != nil {
		if nerr := notifier.Notify(cmdCtx.Ctx, final); nerr != nil {
			cmdCtx.Logger.Warn("completion webhook failed", "job_id", jobID, "error", nerr)
		}
	}

	if jobErr := poller.Err(); jobErr != nil {
		return jobErr
	}
	return renderClassification(final)
}

// renderProgress prints the three-step view, one line per step.
func renderProgress(view progress.View) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, step := range view.Steps {
		detail := step.Detail
		if step.Timestamp != nil {
			detail = step.Timestamp.Format(time.RFC3339)
		}
		_ = writef(w, "%s\t%s\t%s\n", step.Name, step.State, detail)
	}
	_ = writeln(w)
	_ = w.Flush()
}

// renderClassification prints the verdict, confidence band, and outcome
// distribution for a completed job.
func renderClassification(job *model.QuantumJob) error {
	if job.Status != model.JobStatusCompleted {
		return nil
	}

	cls, err := classify.Classify(job.Result)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "Verdict\t%s\n", cls.Verdict); err != nil {
		return err
	}
	if err := writef(w, "Confidence\t%.1f%% (%s)\n", cls.Confidence, cls.Band); err != nil {
		return err
	}
	for _, share := range cls.Distribution {
		if err := writef(w, "Outcome %s\t%d (%.1f%%)\n", share.Label, share.Count, share.Percent); err != nil {
			return err
		}
	}
	if job.ExecutionTimeSeconds != nil {
		if err := writef(w, "Execution Time\t%ds\n", *job.ExecutionTimeSeconds); err != nil {
			return err
		}
	}
	return w.Flush()
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
