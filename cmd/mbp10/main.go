package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/app"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/codec"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/engine"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "config file (default: configs/config.yaml if present)")
	output := flag.String("o", "", "output mbp csv path (overrides config)")
	archivePath := flag.String("archive", "", "sqlite snapshot archive path (overrides config)")
	dumpPath := flag.String("dump", "", "final book dump json path (overrides config)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] mbo.csv\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}

	boot := app.NewBootstrap()
	if err := boot.Initialize(app.Options{
		ConfigPath:  *configPath,
		Output:      *output,
		ArchivePath: *archivePath,
		DumpPath:    *dumpPath,
	}); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, boot, flag.Arg(0))
	boot.Close()
	if err != nil {
		slog.Error("❌ Replay failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, boot *app.Bootstrap, input string) error {
	in, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("could not open input file %s: %w", input, err)
	}
	defer in.Close()

	outPath := boot.Config.Replay.Output
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("could not open output file %s: %w", outPath, err)
	}

	src, err := codec.NewReader(in)
	if err != nil {
		out.Close()
		return err
	}

	slog.Info("✅ Replay started",
		slog.String("input", input),
		slog.String("output", outPath))

	replayer := engine.NewReplayer(src, codec.NewWriter(out), boot.Archive, slog.Default())
	if err := replayer.Run(ctx); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("could not finish output file %s: %w", outPath, err)
	}

	if boot.Archive != nil {
		now := time.Now().Unix()
		if err := boot.Archive.UpsertMetadata(ctx, "source", input, now); err != nil {
			return err
		}
		if err := boot.Archive.UpsertMetadata(ctx, "rows", fmt.Sprint(replayer.Emitted()), now); err != nil {
			return err
		}
	}

	if path := boot.Config.Replay.DumpPath; path != "" {
		if err := storage.WriteBookDump(path, replayer.Emitted(), replayer.Book().Snapshot()); err != nil {
			return err
		}
	}

	return nil
}
