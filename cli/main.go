package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"github.com/Revolution1/bitfield/gen"
)

const usage = `Generates named bit accessors for a type that keeps its flags in an integer.

Usage:
  bitfield --type T [--field F] [--output FILE] [--dir DIR]
  bitfield --config FILE [--type T] [--dir DIR]

Flags are declared on the type with directives

  //bitfield:ro Name [Alias] Pos
  //bitfield:rw Name Setter [Alias AliasSetter] Pos

or listed in a TOML descriptor file.

`

type options struct {
	typeName string
	field    string
	output   string
	config   string
	dir      string
	verbose  bool
	embedded bool
}

func flagSet(opts *options) *flag.FlagSet {
	fs := flag.NewFlagSet("bitfield", flag.ContinueOnError)
	fs.StringVarP(&opts.typeName, "type", "t", "", "host type to generate accessors for")
	fs.StringVarP(&opts.field, "field", "f", "", "integer field of the host struct holding the flags")
	fs.StringVarP(&opts.output, "output", "o", "", "output file name; default <type>_bitfield.go")
	fs.StringVarP(&opts.config, "config", "c", "", "TOML descriptor file")
	fs.StringVarP(&opts.dir, "dir", "d", ".", "package directory")
	fs.BoolVar(&opts.embedded, "allow-embedded", false, "generate even if the type embeds types from other packages")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}
	return fs
}

// jobs works out what to generate. With both --config and --type only that
// type is taken from the descriptor file.
func jobs(opts *options) ([]gen.Job, error) {
	if opts.config == "" {
		if opts.typeName == "" {
			return nil, errors.New("--type or --config is required")
		}
		return []gen.Job{{Dir: opts.dir, Type: opts.typeName, Field: opts.field, Output: opts.output}}, nil
	}
	cfg, err := gen.LoadConfig(opts.config)
	if err != nil {
		return nil, err
	}
	all := cfg.Jobs(opts.dir)
	if opts.typeName == "" {
		return all, nil
	}
	for _, j := range all {
		if j.Type == opts.typeName {
			if opts.field != "" {
				j.Field = opts.field
			}
			if opts.output != "" {
				j.Output = opts.output
			}
			return []gen.Job{j}, nil
		}
	}
	return nil, errors.Errorf("type %s is not in %s", opts.typeName, opts.config)
}

func run(args []string) error {
	opts := &options{}
	fs := flagSet(opts)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if opts.verbose {
		log.SetLevel(log.DebugLevel)
	}
	js, err := jobs(opts)
	if err != nil {
		return err
	}
	for _, j := range js {
		j.AllowEmbedded = j.AllowEmbedded || opts.embedded
		if _, err := j.Run(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("bitfield: %s", err)
	}
}
