package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"text/tabwriter"
	"time"

	"github.com/quantatel/quantatel-go/internal/bootstrap"
	"github.com/quantatel/quantatel-go/internal/core"
	"github.com/quantatel/quantatel-go/internal/domain/classify"
	"github.com/quantatel/quantatel-go/internal/domain/model"
)

const readTimeout = 30 * time.Second

type threatsOptions struct {
	Severity   string
	ThreatType string
	Source     string
	Country    string
	Page       int
	PageSize   int
}

func parseThreatsFlags(args []string) (threatsOptions, error) {
	var opts threatsOptions
	fs := flag.NewFlagSet("threats", flag.ContinueOnError)
	fs.StringVar(&opts.Severity, "severity", "", "filter by severity (critical, high, medium, low)")
	fs.StringVar(&opts.ThreatType, "type", "", "filter by threat type")
	fs.StringVar(&opts.Source, "source", "", "filter by source")
	fs.StringVar(&opts.Country, "country", "", "filter by country code")
	fs.IntVar(&opts.Page, "page", 1, "page number")
	fs.IntVar(&opts.PageSize, "page-size", 20, "page size")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	return opts, nil
}

func runThreats(cmdCtx *commandContext, args []string) error {
	opts, err := parseThreatsFlags(args)
	if err != nil {
		return err
	}

	severity := model.ThreatSeverity(opts.Severity)
	if opts.Severity != "" && !severity.Valid() {
		return errors.New("invalid severity: " + opts.Severity)
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, readTimeout)
	defer cancel()

	threats, closeFn, err := buildThreatService(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	records, err := threats.ListThreats(ctx, model.ThreatQuery{
		Severity:    severity,
		ThreatType:  opts.ThreatType,
		Source:      opts.Source,
		CountryCode: opts.Country,
		Page:        opts.Page,
		PageSize:    opts.PageSize,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "IP\tType\tSeverity\tConfidence\tSource\tCountry"); err != nil {
		return err
	}
	for _, record := range records {
		if err := writef(w, "%s\t%s\t%s\t%.1f\t%s\t%s\n",
			record.IPAddress, record.ThreatType, record.Severity,
			record.ConfidenceScore, record.Source, record.CountryCode); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runStats(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, readTimeout)
	defer cancel()

	threats, closeFn, err := buildThreatService(ctx, cmdCtx)
	if err != nil {
		return err
	}
	defer closeFn()

	stats, err := threats.ThreatStats(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "Total Threats\t%d\n", stats.TotalThreats); err != nil {
		return err
	}
	if err := writef(w, "Critical Severity\t%d\n", stats.CriticalSeverityCount); err != nil {
		return err
	}
	if err := writef(w, "High Severity\t%d\n", stats.HighSeverityCount); err != nil {
		return err
	}
	if err := writef(w, "Unique Sources\t%d\n", stats.UniqueSources); err != nil {
		return err
	}
	if err := writef(w, "Added Today\t%d\n", stats.TodayAdded); err != nil {
		return err
	}
	return w.Flush()
}

func runCollect(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ips := fs.Args()
	if len(ips) == 0 {
		return errors.New("at least one IP address argument is required")
	}

	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, readTimeout)
	defer cancel()

	if len(ips) == 1 {
		if err := client.CollectIP(ctx, ips[0]); err != nil {
			return err
		}
	} else {
		if err := client.CollectBulkIP(ctx, ips); err != nil {
			return err
		}
	}
	return writef(os.Stdout, "collection triggered for %d address(es)\n", len(ips))
}

func runBreaches(cmdCtx *commandContext, args []string) error {
	var account string
	fs := flag.NewFlagSet("breaches", flag.ContinueOnError)
	fs.StringVar(&account, "account", "", "account (email) to look up (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if account == "" {
		return errors.New("-account is required")
	}

	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, readTimeout)
	defer cancel()

	breaches, err := client.AccountBreaches(ctx, account)
	if err != nil {
		return err
	}
	if len(breaches) == 0 {
		return writeln(os.Stdout, "no breaches found")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(w, "Breach\tDate\tAccounts\tSeverity\tVerified"); err != nil {
		return err
	}
	for _, breach := range breaches {
		if err := writef(w, "%s\t%s\t%d\t%s\t%t\n",
			breach.Title, breach.BreachDate, breach.PwnCount,
			classify.BreachSeverity(breach.PwnCount), breach.IsVerified); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runPasswordCheck(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("password-check", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("exactly one password argument is required")
	}

	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, readTimeout)
	defer cancel()

	check, err := client.CheckPassword(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !check.IsPwned {
		return writeln(os.Stdout, "password not found in known breaches")
	}
	return writef(os.Stdout, "password exposed in %d breach entries\n", check.PwnedCount)
}

// buildThreatService wires the API client and optional Redis cache. The
// returned close function releases the cache connection.
func buildThreatService(
	ctx context.Context,
	cmdCtx *commandContext,
) (*core.ThreatCacheService, func(), error) {
	client, err := bootstrap.NewAPIClient(cmdCtx.Config.API, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}

	redisClient, err := bootstrap.ConnectCacheRedis(ctx, cmdCtx.Config.Cache, cmdCtx.Logger)
	if err != nil {
		return nil, nil, err
	}

	svc, err := bootstrap.NewThreatService(client, redisClient, cmdCtx.Config.Cache, cmdCtx.Logger)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, nil, err
	}

	closeFn := func() {
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				cmdCtx.Logger.Warn("redis close failed", "error", cerr)
			}
		}
	}
	return svc, closeFn, nil
}
