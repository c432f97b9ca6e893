package app

import (
	"fmt"
	"log/slog"

	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/infra"
	"github.com/Dixit-529/reconstructing-MBO-data-to-MBP/internal/storage"
)

// Options carries the CLI overrides into initialization. Non-empty
// values win over the config file.
type Options struct {
	ConfigPath  string
	Output      string
	ArchivePath string
	DumpPath    string
}

// Bootstrap orchestrates the application startup sequence.
type Bootstrap struct {
	Config  *infra.Config
	Archive *storage.Archive // nil unless an archive path is configured
}

func NewBootstrap() *Bootstrap {
	return &Bootstrap{}
}

// Initialize loads config, installs the logger and opens the optional
// snapshot archive, in that order.
func (b *Bootstrap) Initialize(opts Options) error {
	path := opts.ConfigPath
	if path == "" {
		path = infra.ResolveConfigPath()
	}
	cfg, err := infra.LoadConfig(path)
	if err != nil {
		return err
	}
	if opts.Output != "" {
		cfg.Replay.Output = opts.Output
	}
	if opts.ArchivePath != "" {
		cfg.Replay.ArchivePath = opts.ArchivePath
	}
	if opts.DumpPath != "" {
		cfg.Replay.DumpPath = opts.DumpPath
	}
	b.Config = cfg

	slog.SetDefault(infra.NewLogger(cfg))

	if cfg.Replay.ArchivePath != "" {
		arch, err := storage.NewArchive(cfg.Replay.ArchivePath)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		b.Archive = arch
		slog.Info("Snapshot archive enabled", slog.String("path", cfg.Replay.ArchivePath))
	}

	return nil
}

// Close releases everything Initialize opened.
func (b *Bootstrap) Close() {
	if b.Archive != nil {
		if err := b.Archive.Close(); err != nil {
			slog.Warn("Failed to close archive", slog.Any("error", err))
		}
	}
}
