// SPDX-License-Identifier: Apache-2.0

// Command qbfc converts a QCIR-subset source to QDIMACS prenex-CNF: read,
// push to NNF, hoist quantifiers to the front under a chosen strategy,
// write (§6.2).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"qbf/ferrors"
	"qbf/nnf"
	"qbf/prenex"
	"qbf/qcir"
	"qbf/qdimacs"
)

var strategies = map[string]prenex.Strategy{
	prenex.ForAllDownExistsUp.Name:   prenex.ForAllDownExistsUp,
	prenex.ExistsDownForAllUp.Name:   prenex.ExistsDownForAllUp,
	prenex.ForAllUpExistsUp.Name:     prenex.ForAllUpExistsUp,
	prenex.ForAllDownExistsDown.Name: prenex.ForAllDownExistsDown,
}

func main() {
	in := flag.String("in", "", "input QCIR source path")
	out := flag.String("out", "", "output QDIMACS path")
	strategyName := flag.String("strategy", prenex.ForAllUpExistsUp.Name, "prenex hoisting strategy")
	cancelAfter := flag.Duration("cancel-after", 0, "cancel the prenex pass after this long (debug)")
	flag.Parse()

	if *in == "" || *out == "" {
		fmt.Fprintln(os.Stderr, "usage: qbfc -in <file.qcir> -out <file.qdimacs> [-strategy name]")
		os.Exit(1)
	}

	strategy, ok := strategies[*strategyName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown strategy %q\n", *strategyName)
		os.Exit(1)
	}

	if err := run(*in, *out, strategy, *cancelAfter); err != nil {
		report(*in, err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, strategy prenex.Strategy, cancelAfter time.Duration) error {
	inFile, err := os.Open(inPath)
	if err != nil {
		return &ferrors.Io{Err: err}
	}
	defer inFile.Close()

	f, err := qcir.Read(inFile)
	if err != nil {
		return err
	}

	f, err = nnf.ToNNF(context.Background(), f)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if cancelAfter > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cancelAfter)
		defer cancel()
	}

	f, err = prenex.ToPNF(ctx, f, strategy)
	if err != nil {
		return err
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		return &ferrors.Io{Err: err}
	}
	defer outFile.Close()

	if err := qdimacs.Write(outFile, f); err != nil {
		return err
	}

	color.Green("wrote %s", outPath)
	return nil
}

func report(path string, err error) {
	source, readErr := os.ReadFile(path)
	if readErr != nil {
		source = nil
	}
	reporter := ferrors.NewReporter(path, string(source))
	fmt.Fprint(os.Stderr, reporter.Format(err))
}
