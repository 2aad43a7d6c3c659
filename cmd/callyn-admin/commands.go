package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/milestone2github/callyn-backend/internal/bootstrap"
	"github.com/milestone2github/callyn-backend/internal/data"
	domainauth "github.com/milestone2github/callyn-backend/internal/domain/auth"
	"github.com/milestone2github/callyn-backend/internal/domain/model"
	"github.com/milestone2github/callyn-backend/internal/service"
)

const defaultCommandTimeout = 5 * time.Minute

type migrateOptions struct {
	Timeout time.Duration
}

type lookupOptions struct {
	Email string
	JSON  bool
}

type purgeOptions struct {
	MaxAge    time.Duration
	BatchSize int
	Yes       bool
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := migrateOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum time to wait for migrations")
	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be positive")
	}
	return opts, nil
}

func parseLookupFlags(args []string) (lookupOptions, error) {
	fs := flag.NewFlagSet("lookup-employee", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts lookupOptions
	fs.StringVar(&opts.Email, "email", "", "Email address to resolve (required)")
	fs.BoolVar(&opts.JSON, "json", false, "Print the identity as JSON")
	if err := fs.Parse(args); err != nil {
		return lookupOptions{}, err
	}
	opts.Email = strings.TrimSpace(opts.Email)
	if opts.Email == "" {
		return lookupOptions{}, errors.New("--email is required")
	}
	return opts, nil
}

func parsePurgeFlags(args []string, defaults purgeOptions) (purgeOptions, error) {
	fs := flag.NewFlagSet("purge-call-logs", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := defaults
	fs.DurationVar(&opts.MaxAge, "max-age", defaults.MaxAge, "Delete call logs uploaded longer ago than this")
	fs.IntVar(&opts.BatchSize, "batch-size", defaults.BatchSize, "Rows deleted per statement")
	fs.BoolVar(&opts.Yes, "yes", false, "Confirm deletion")
	if err := fs.Parse(args); err != nil {
		return purgeOptions{}, err
	}
	if opts.MaxAge <= 0 {
		return purgeOptions{}, errors.New("--max-age must be positive")
	}
	if opts.BatchSize <= 0 {
		return purgeOptions{}, errors.New("--batch-size must be positive")
	}
	if !opts.Yes {
		return purgeOptions{}, errors.New("refusing to delete call logs without --yes")
	}
	return opts, nil
}

func withDB(cmdCtx *commandContext, timeout time.Duration, fn func(ctx context.Context, db *sql.DB) error) error {
	ctx, cancel := context.WithTimeout(cmdCtx.Ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(ctx, bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", closeErr)
		}
	}()
	return fn(ctx, db)
}

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}
	return withDB(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("running database migrations")
		return bootstrap.RunMigrations(ctx, db, cmdCtx.Logger)
	})
}

func runLookupEmployee(cmdCtx *commandContext, args []string) error {
	opts, err := parseLookupFlags(args)
	if err != nil {
		return err
	}
	return withDB(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		identity, err := service.NewIdentityService(service.IdentityServiceOptions{
			Directory: data.NewEmployeeRepo(db),
			Logger:    cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		resolved, err := identity.Resolve(ctx, opts.Email)
		if errors.Is(err, domainauth.ErrNotAuthorized) {
			return writef(cmdCtx.Out, "%s is not in the employee registry; login would be rejected\n", opts.Email)
		}
		if err != nil {
			return err
		}
		return printIdentity(cmdCtx.Out, resolved, opts.JSON)
	})
}

func printIdentity(w io.Writer, id model.EnrichedIdentity, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(id); err != nil {
			return fmt.Errorf("encode identity: %w", err)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"ID", id.Employee.ID},
		{"Name", id.Employee.Name},
		{"Email", id.Employee.Email},
		{"Department", id.DepartmentName},
		{"Work phone", id.DeviceSerial},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1]); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

func runPurgeCallLogs(cmdCtx *commandContext, args []string) error {
	ret := cmdCtx.Config.Retention
	opts, err := parsePurgeFlags(args, purgeOptions{MaxAge: ret.CallLogMaxAge, BatchSize: ret.BatchSize})
	if err != nil {
		return err
	}
	ret.CallLogMaxAge = opts.MaxAge
	ret.BatchSize = opts.BatchSize

	return withDB(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		svc, err := service.NewRetentionService(service.RetentionServiceOptions{
			Purger: data.NewCallLogRepo(db),
			Config: ret,
			Logger: cmdCtx.Logger,
		})
		if err != nil {
			return err
		}
		deleted, err := svc.Sweep(ctx)
		if err != nil {
			return fmt.Errorf("purge call logs (deleted %d before failure): %w", deleted, err)
		}
		return writef(cmdCtx.Out, "Deleted %d call logs older than %s\n", deleted, opts.MaxAge)
	})
}

func runLatestVersion(cmdCtx *commandContext, _ []string) error {
	return withDB(cmdCtx, defaultCommandTimeout, func(ctx context.Context, db *sql.DB) error {
		latest, err := service.NewVersionService(data.NewVersionRepo(db)).Latest(ctx)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmdCtx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(latest)
	})
}
