package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Options - параметры командной строки одного запуска.
type Options struct {
	Config  string `short:"c" long:"config" env:"NEWS_READER_CONFIG" default:"configs/newsreader.yaml" description:"Path to the run configuration file"`
	State   string `short:"s" long:"state" env:"NEWS_READER_STATE" default:"state/notified.json" description:"Path to the dedup state file"`
	Channel string `long:"channel" env:"NEWS_READER_CHANNEL" description:"Override the configured notification channel (email, telegram, both)"`
	DryRun  bool   `long:"dry-run" description:"Process feeds and log matches without sending or saving state"`
}

// ParseOptions разбирает аргументы командной строки.
// Возвращает (nil, nil), если запрошена справка.
func ParseOptions(args []string) (*Options, error) {
	var opts Options

	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil
		}
		return nil, fmt.Errorf("parse options: %w", err)
	}

	return &opts, nil
}
