package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"cinder/pkg/bigint"
	cinderrors "cinder/pkg/errors"
	"cinder/pkg/expr"
	"cinder/pkg/vm"
)

// Config is the YAML-decoded runtime configuration. It maps onto the
// engine's tunables: the BigInt feature flag and the magnitude size
// ceiling.
type Config struct {
	BigInt struct {
		Enabled bool   `yaml:"enabled"`
		MaxSize uint32 `yaml:"max_size"`
	} `yaml:"bigint"`
}

func defaultConfig() Config {
	var cfg Config
	cfg.BigInt.Enabled = true
	cfg.BigInt.MaxSize = bigint.DefaultMaxSize
	return cfg
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	exprFlag := flag.String("e", "", "Evaluate the given expression and exit")
	configFlag := flag.String("config", "", "Path to a YAML config file")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := zap.NewNop()
	if *debugFlag {
		devLogger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
			os.Exit(70) // Exit code 70: internal software error
		}
		logger = devLogger
	}
	defer logger.Sync()

	cfg := defaultConfig()
	if *configFlag != "" {
		loaded, err := loadConfig(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
			os.Exit(64) // Exit code 64: command line usage error
		}
		cfg = loaded
		logger.Debug("config loaded",
			zap.String("path", *configFlag),
			zap.Bool("bigint", cfg.BigInt.Enabled),
			zap.Uint32("max_size", cfg.BigInt.MaxSize))
	}

	bigint.MaxSize = cfg.BigInt.MaxSize
	var opts []vm.Option
	if !cfg.BigInt.Enabled {
		opts = append(opts, vm.WithoutBigInt())
	}
	evaluator := expr.NewEvaluator(vm.New(opts...))

	if *exprFlag != "" {
		if !evalAndPrint(evaluator, logger, *exprFlag) {
			os.Exit(70)
		}
		return
	}

	runRepl(evaluator, logger)
}

func evalAndPrint(evaluator *expr.Evaluator, logger *zap.Logger, source string) bool {
	value, err := evaluator.EvaluateString(source)
	if err != nil {
		logger.Debug("evaluation failed", zap.String("source", source), zap.Error(err))
		if cerr, ok := err.(cinderrors.CinderError); ok {
			cinderrors.DisplayErrors(source, []cinderrors.CinderError{cerr})
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return false
	}
	fmt.Println(value.ToString())
	return true
}

func runRepl(evaluator *expr.Evaluator, logger *zap.Logger) {
	fmt.Println("cinder repl (arithmetic core) - type 'exit' to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		evalAndPrint(evaluator, logger, line)
	}
}
