package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"campuscoins/internal/cli"
	"campuscoins/internal/importer"
	"campuscoins/internal/ledger"
	"campuscoins/internal/log"
)

func main() {
	mode := flag.String("mode", "merge", "import mode: merge or replace")
	flag.Parse()

	if *mode != "merge" && *mode != "replace" {
		fmt.Fprintln(os.Stderr, "mode must be merge or replace")
		os.Exit(2)
	}
	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: campuscoins-import [-mode merge|replace] file.json [file.json ...]")
		os.Exit(2)
	}

	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	st := cli.OpenStore(logger, cfg)
	defer st.Close()

	ctx := context.Background()
	ldg, err := ledger.Open(ctx, st, logger)
	if err != nil {
		logger.Error("Failed to load ledger", log.FieldError, err)
		os.Exit(1)
	}

	files, err := importer.ReadPaths(ctx, paths)
	if err != nil {
		logger.Error("Failed to read import files", log.FieldError, err)
		os.Exit(1)
	}

	var res importer.Result
	if *mode == "replace" {
		res = ldg.ReplaceImport(ctx, files)
	} else {
		res = ldg.MergeImport(ctx, files)
	}

	fmt.Printf("Imported %d new transaction(s), %d duplicate(s) skipped, %d invalid record(s).\n",
		res.NewCount, res.DuplicateCount, res.InvalidCount)
	for _, fe := range res.FileErrors {
		fmt.Printf("  %s: %s\n", fe.File, fe.Message)
	}
	if len(res.FileErrors) > 0 {
		os.Exit(1)
	}
}
