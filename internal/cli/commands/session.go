package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/noogen-projects/md-cli-test/internal/cli"
	"github.com/noogen-projects/md-cli-test/internal/config"
	"github.com/noogen-projects/md-cli-test/internal/logs"
	"github.com/noogen-projects/md-cli-test/internal/storage"
)

// session holds what is built from the final configuration, once the
// flags of the invoked command are parsed.
type session struct {
	logger  *slog.Logger
	closer  io.Closer
	storage storage.Storage
}

// prepare applies the parsed flags and positional documents to cfg and
// builds the logger and storage.
func (s *session) prepare(cfg *config.Config, flags *cli.Flags, args []string) error {
	if err := cfg.Apply(flags.ToConfigFlags()); err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Documents = args
	}

	logger, closer, err := logs.New(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	s.logger = logger
	s.closer = closer
	s.storage = storage.New(cfg)
	return nil
}

func (s *session) close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
