package main

import (
	"fmt"

	"github.com/dhamidi/derive/config"
	"github.com/dhamidi/derive/grammar"
	"github.com/dhamidi/derive/lex"
	"github.com/dhamidi/derive/parse"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("derive.cli")

// app carries the settings shared by every sub-command.
type app struct {
	configPath string
	verbose    int
	logFile    string
	start      string

	maxDerivations int
	workers        int
	prune          bool

	cfg config.Config
}

func (a *app) bindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file (default: ./"+config.DefaultFile+" if present)")
	flags.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity (repeatable)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&a.start, "start", "", "start variable (default: first rule of the grammar)")
	flags.IntVar(&a.maxDerivations, "max-derivations", 0, "fail once a search holds more derivations (0: no limit)")
	flags.IntVar(&a.workers, "workers", 1, "goroutines expanding each pass")
	flags.BoolVar(&a.prune, "prune", false, "skip sentential forms that cannot produce the word")
}

// setup loads the configuration, applies flag overrides and configures
// logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("max-derivations") {
		cfg.Engine.MaxDerivations = a.maxDerivations
	}
	if flags.Changed("workers") {
		cfg.Engine.Workers = a.workers
	}
	if flags.Changed("prune") {
		cfg.Engine.Prune = a.prune
	}
	if flags.Changed("verbose") {
		cfg.Log.Verbosity = a.verbose
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	var path *string
	if cfg.Log.File != "" {
		path = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, path)
	return nil
}

func (a *app) loadGrammar(path string) (*grammar.Grammar, error) {
	g, err := grammar.Load(path, a.start)
	if err != nil {
		return nil, fmt.Errorf("load grammar: %w", err)
	}
	return g, nil
}

func (a *app) parser(g *grammar.Grammar) *parse.Parser {
	opts := []parse.Option{
		parse.WithMaxDerivations(a.cfg.Engine.MaxDerivations),
		parse.WithWorkers(a.cfg.Engine.Workers),
	}
	if a.cfg.Engine.Prune {
		opts = append(opts, parse.WithPruning())
	}
	bound := parse.Bound
	if depth := g.UnitDepth(); depth > 0 {
		log.Warningf("%s has unit rules, searching up to %d times the default bound", g.Start(), depth+1)
		bound = parse.UnitBound(depth)
	}
	if f := a.cfg.Engine.BoundFactor; f > 0 {
		base := bound
		bound = func(n int) int {
			return max(f*n, base(n))
		}
	}
	opts = append(opts, parse.WithBound(bound))
	return parse.NewParser(g, opts...)
}

// readWord tokenizes input into terminals of g.
func readWord(g *grammar.Grammar, input string) (grammar.Word, error) {
	w, err := lex.ForGrammar(g).Tokenize(input)
	if err != nil {
		return grammar.Word{}, fmt.Errorf("read word %q: %w", input, err)
	}
	return w, nil
}
