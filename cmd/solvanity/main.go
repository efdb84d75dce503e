package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/solvanity/internal/output"
	"github.com/solvanity/internal/ui"
	"github.com/solvanity/pkg/keygen"
	"github.com/solvanity/pkg/search"
)

const (
	version          = "1.0.0"
	progressInterval = time.Second
)

var (
	flagWorkers int
	flagFormat  string
	flagFast    bool
	flagOutDir  string
	flagQuiet   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "solvanity <prefix>",
		Short: "Brute-force Solana vanity wallet generator",
		Long: `Searches for a Solana keypair whose Base58 address starts with the given
prefix, using every available CPU core. On success the wallet (mnemonic,
keypair, encoded keys) is printed and saved to the output directory.`,
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().IntVarP(&flagWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	rootCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format (json or text)")
	rootCmd.Flags().BoolVar(&flagFast, "fast", false, "Skip mnemonic generation (random seed only, faster)")
	rootCmd.Flags().StringVarP(&flagOutDir, "output-dir", "o", "output", "Directory for wallet files")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress banner and progress output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		if errors.Is(err, search.ErrInvalidPrefix) {
			printPrefixHelp()
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	if flagFormat != "text" && flagFormat != "json" {
		return fmt.Errorf("unknown format %q (want json or text)", flagFormat)
	}

	mode := keygen.ModeMnemonic
	if flagFast {
		mode = keygen.ModeFast
	}

	engine, err := search.NewEngine(search.Request{
		Prefix:  prefix,
		Mode:    mode,
		Workers: flagWorkers,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	req := engine.Request()
	expected := search.ExpectedIterations(prefix)
	if !flagQuiet {
		ui.PrintBanner()
		ui.PrintSearchInfo(prefix, req.Mode.String(), req.Workers, expected)
	}

	type runResult struct {
		outcome *search.Outcome
		err     error
	}
	done := make(chan runResult, 1)
	go func() {
		o, err := engine.Run(ctx)
		done <- runResult{o, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	progress := ui.NewProgress(expected)

	for {
		select {
		case r := <-done:
			if r.err != nil {
				return r.err
			}
			if r.outcome.Cancelled {
				ui.PrintCancelled(r.outcome.Stats)
				return nil
			}
			return report(r.outcome, expected)
		case <-ticker.C:
			if !flagQuiet {
				progress.Print(engine.Stats())
			}
		}
	}
}

// report prints the winning wallet and writes it to the output directory.
func report(o *search.Outcome, expected uint64) error {
	cand := o.Candidate
	rec := &output.Record{
		Mnemonic:  cand.Mnemonic,
		PublicKey: cand.Address,
		SecretKey: cand.SecretBase58(),
		Keypair:   cand.KeypairBytes(),
		Stats:     o.Stats,
		Expected:  expected,
	}

	format := output.FormatText
	if flagFormat == "json" {
		format = output.FormatJSON
	}

	path, writeErr := rec.Write(flagOutDir, format)

	ui.ClearLine()
	ui.PrintSuccess(cand.Mnemonic, cand.Address, rec.SecretKey, o.Stats, expected, path)

	if format == output.FormatJSON {
		if data, err := rec.JSON(); err == nil {
			fmt.Println(string(data))
		}
	}

	return writeErr
}

func printPrefixHelp() {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Valid Base58 characters are:")
	fmt.Fprintln(os.Stderr, "  Numbers: 1-9 (excludes 0)")
	fmt.Fprintln(os.Stderr, "  Uppercase: A-Z (excludes O and I)")
	fmt.Fprintln(os.Stderr, "  Lowercase: a-z (excludes l)")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples of valid prefixes: ABC, Sol, 123, MyWaffet")
	fmt.Fprintln(os.Stderr, "Examples of invalid prefixes: 0, O, l, _, +, =, /")
}
