package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/example/voting-console/internal/application"
	"github.com/example/voting-console/internal/config"
	"github.com/example/voting-console/internal/console"
	"github.com/example/voting-console/internal/importer"
	"github.com/example/voting-console/internal/logging"
	"github.com/example/voting-console/internal/notify"
	"github.com/example/voting-console/internal/persistence/sqlite"
)

func main() {
	root := &cobra.Command{
		Use:   "votingctl",
		Short: "Administrator console for the electronic voting process",
	}
	root.AddCommand(consoleCmd(), importCmd(), hashPasswordCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive election console",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsole()
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import voters from a CSV registration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(args[0])
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Produce an admin passphrase hash for VOTING_ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := application.CreatePasswordHash(args[0], application.DefaultArgon2idParams)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func runConsole() error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return err
	}
	defer func() {
		if cerr := storage.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		return err
	}

	notifier := notify.NewNotifier(
		notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		},
		notify.SMSConfig{
			GatewayURL: cfg.SMSGatewayURL,
			AccountSID: cfg.SMSAccountSID,
			AuthToken:  cfg.SMSAuthToken,
			From:       cfg.SMSFrom,
		},
	)

	out := os.Stdout
	directory := newVoterDirectoryAdapter(storage.Voters())

	voteService := application.NewVoteService(directory, notifier, nil, logger)
	tallyMonitor := application.NewTallyMonitor(directory, func(count int) {
		fmt.Fprintf(out, "\rCurrent vote count: %d", count)
	}, cfg.TallyInterval, logger)
	dispatcher := application.NewReminderDispatcher(directory, notifier, func(message string) {
		fmt.Fprintln(out, message)
	}, logger)

	opts := application.SchedulerOptions{
		Tick:         cfg.ReminderTick,
		InitialDelay: cfg.InitialReminderDelay,
	}
	opts.ThreeDayAt.Hour, opts.ThreeDayAt.Minute, _ = config.ParseTimeOfDay(cfg.ThreeDayReminderAt)
	opts.VotingDayAt.Hour, opts.VotingDayAt.Minute, _ = config.ParseTimeOfDay(cfg.VotingDayReminderAt)

	scheduler := application.NewReminderScheduler(dispatcher, uuid.NewString, nil, opts, logger)
	defer scheduler.Stop()

	shell := console.New(os.Stdin, out, console.Deps{
		Votes:             voteService,
		Scheduler:         scheduler,
		Tally:             tallyMonitor,
		Load:              importer.ReadVotersFile,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Logger:            logger,
	})

	return shell.Run(ctx)
}

func runImport(path string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithLogger(ctx, logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		return err
	}

	storage, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		return err
	}
	defer storage.Close()

	if err := storage.Migrate(ctx); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		return err
	}

	inputs, err := importer.ReadVotersFile(path)
	if err != nil {
		logger.Error("failed to read registration file", "error", err)
		return err
	}

	voteService := application.NewVoteService(newVoterDirectoryAdapter(storage.Voters()), nil, nil, logger)
	count, err := voteService.ImportVoters(ctx, inputs)
	if err != nil {
		logger.Error("import failed", "error", err)
		return err
	}

	fmt.Printf("Successfully imported %d voters.\n", count)
	return nil
}
