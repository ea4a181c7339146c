// Command grue is a thin process entry point over pkg/session: a plain
// REPL/batch shell, plus a --ml JSON-lines mode for headless agents. It is
// a proof that the core's external interface (§6) is callable from a
// process boundary, not a target for feature growth of its own.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grue/internal/telemetry"
	"grue/pkg/action"
	"grue/pkg/catalogue"
	"grue/pkg/hooks"
	"grue/pkg/scripting"
	"grue/pkg/session"
)

const (
	exitSuccess     = 0
	exitDeath       = 1
	exitParserError = 2
	exitInternal    = 3
	exitMaxTurns    = 4
	exitGeneric     = 5
)

var flags struct {
	worldFile         string
	grammarFile       string
	scriptsDir        string
	seed              uint64
	inputFile         string
	strict            bool
	failOnDeath       bool
	failOnParserError bool
	maxTurns          int
	quiet             bool
	ml                bool
	mlRewards         bool
	verbose           bool
}

func main() {
	root := &cobra.Command{
		Use:   "grue",
		Short: "run a catalogue-driven text-adventure session",
		RunE:  runRoot,
	}

	root.Flags().StringVar(&flags.worldFile, "world", "", "path to the YAML world catalogue (required)")
	root.Flags().StringVar(&flags.grammarFile, "grammar", "", "path to the TOML verb/combat catalogue (required)")
	root.Flags().StringVar(&flags.scriptsDir, "scripts", "", "directory of .lua scripted action hooks (optional)")
	root.Flags().Uint64Var(&flags.seed, "seed", 1, "deterministic RNG seed")
	root.Flags().StringVar(&flags.inputFile, "input", "", "read commands from a file instead of stdin; blank/;/# lines are comments")
	root.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on any parser error or death")
	root.Flags().BoolVar(&flags.failOnDeath, "fail-on-death", false, "exit non-zero on death")
	root.Flags().BoolVar(&flags.failOnParserError, "fail-on-parser-error", false, "exit non-zero on a parser error")
	root.Flags().IntVar(&flags.maxTurns, "max-turns", 0, "abort after N turns (0 = unlimited)")
	root.Flags().BoolVar(&flags.quiet, "quiet", false, "suppress player-facing output")
	root.Flags().BoolVar(&flags.ml, "ml", false, "JSON-lines protocol: one snapshot per line to stdout, one action per line from stdin")
	root.Flags().BoolVar(&flags.mlRewards, "ml-rewards", false, "include reward-shaping signals in each --ml snapshot")
	root.Flags().BoolVar(&flags.verbose, "verbose", false, "enable debug logging to stderr")
	root.MarkFlagRequired("world")
	root.MarkFlagRequired("grammar")

	code := exitSuccess
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "grue: %v\n", err)
		code = exitGeneric
	}
	os.Exit(code)
}

func runRoot(cmd *cobra.Command, args []string) error {
	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if flags.verbose {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = level
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync()
	telemetry.Configure(logger.Sugar())

	sess, err := buildSession()
	if err != nil {
		return fmt.Errorf("building session: %w", err)
	}

	in, closeIn, err := inputReader()
	if err != nil {
		return err
	}
	if closeIn != nil {
		defer closeIn()
	}

	var code int
	if flags.ml {
		code = runML(sess, in)
	} else {
		code = runPlain(sess, in)
	}
	if code != exitSuccess {
		os.Exit(code)
	}
	return nil
}

func buildSession() (*session.Session, error) {
	worldCat, err := catalogue.LoadWorld(flags.worldFile)
	if err != nil {
		return nil, err
	}
	store, err := worldCat.Build()
	if err != nil {
		return nil, err
	}

	grammarCat, err := catalogue.LoadGrammar(flags.grammarFile)
	if err != nil {
		return nil, err
	}
	grammar, err := grammarCat.BuildGrammar()
	if err != nil {
		return nil, err
	}
	villains, err := grammarCat.BuildVillains()
	if err != nil {
		return nil, err
	}

	registry := action.NewRegistry()
	resolver := action.Resolver(registry)
	if flags.scriptsDir != "" {
		engine, err := scripting.NewEngine(flags.scriptsDir)
		if err != nil {
			return nil, err
		}
		resolver = action.Chain{registry, engine}
	}

	sess := session.New(store, resolver, grammar, flags.seed)
	sess.SetResurrection(worldCat.BuildResurrection())
	sess.BindCombat(villains)
	hooks.Wire(sess, registry)
	return sess, nil
}

func inputReader() (*bufio.Scanner, func(), error) {
	if flags.inputFile == "" {
		return bufio.NewScanner(os.Stdin), nil, nil
	}
	f, err := os.Open(flags.inputFile)
	if err != nil {
		return nil, nil, fmt.Errorf("opening --input file: %w", err)
	}
	return bufio.NewScanner(f), func() { f.Close() }, nil
}

// runPlain is the interactive/batch shell: one line in, one StepResult's
// text out, until EOF or game over.
func runPlain(sess *session.Session, in *bufio.Scanner) int {
	turns := 0
	for in.Scan() {
		line := in.Text()
		res, err := sess.Step(line)
		if err != nil {
			fmt.Fprintln(os.Stderr, "grue:", err)
			return exitInternal
		}
		if !flags.quiet && res.OutputText != "" {
			fmt.Println(res.OutputText)
		}

		if res.ParserError && (flags.strict || flags.failOnParserError) {
			return exitParserError
		}
		if res.TurnCounter > turns {
			turns = res.TurnCounter
			if flags.maxTurns > 0 && turns >= flags.maxTurns {
				return exitMaxTurns
			}
		}
		if res.Ended {
			if res.EndReason == "died" && (flags.strict || flags.failOnDeath) {
				return exitDeath
			}
			return exitSuccess
		}
	}
	return exitSuccess
}
