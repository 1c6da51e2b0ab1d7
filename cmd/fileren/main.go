package main

import (
	"flag"
	"fmt"
	"os"

	"fileren/internal/config"
	"fileren/internal/plan"
	"fileren/internal/rename"
	"fileren/internal/renamelog"
)

func main() {
	var (
		configFlag    = flag.String("config", "", "Path to settings file")
		patternFlag   = flag.String("pattern", "", `File-matching glob (default "*.*")`)
		templateFlag  = flag.String("template", "", `Rename template, e.g. "[folderN]_[incNumInFolder]" (default "[oFileN]")`)
		destFlag      = flag.String("dest", "", "Move renamed files into this folder instead of their own")
		recursiveFlag = flag.Bool("r", false, "Include sub-folders of each selected folder")
		logFlag       = flag.String("log", "", "Rename log file (default "+renamelog.DefaultPath+")")
		dryRunFlag    = flag.Bool("dry-run", false, "Compute and print the plan without renaming")
		undoFlag      = flag.String("undo-csv", "", "Write an undo CSV of the executed plan to this path")
		yesFlag       = flag.Bool("yes", false, "Apply the plan (without this flag only the preview is printed)")
		stopFlag      = flag.Bool("stop-on-error", false, "Abort the batch on the first failed rename")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("fileren - batch-rename files with a naming template")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  fileren [options] <folder> [<folder>...]")
		fmt.Println()
		fmt.Println("Tokens: [oFileN] [folderN] [incNum] [incNumInFolder] [ts]")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *patternFlag != "" {
		settings.Pattern = *patternFlag
	}
	if *templateFlag != "" {
		settings.Template = *templateFlag
	}
	if *destFlag != "" {
		settings.DestFolder = *destFlag
	}
	if *recursiveFlag {
		settings.IncludeSubfolders = true
	}
	if *logFlag != "" {
		settings.LogFile = *logFlag
	}
	if *dryRunFlag {
		settings.DryRun = true
	}
	if *stopFlag {
		settings.StopOnError = true
	}
	if *undoFlag != "" {
		settings.UndoCSV = *undoFlag
	}

	p, err := plan.Compute(plan.PlanningInput{
		Roots:             flag.Args(),
		IncludeSubfolders: settings.IncludeSubfolders,
		Pattern:           settings.Pattern,
		Template:          settings.Template,
		DestFolder:        settings.DestFolder,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, s := range p.SkippedRoots {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s\n", s)
	}
	if len(p.Pairs) == 0 {
		fmt.Println("No files match.")
		return
	}

	checked, sum := plan.Check(p)
	fmt.Printf("Folders (%d):\n", len(p.Folders))
	for _, f := range p.Folders {
		fmt.Println("  " + f)
	}
	fmt.Println()
	for _, cp := range checked {
		marker := "  "
		if cp.Status != plan.StatusOK {
			marker = "! "
		}
		fmt.Printf("%s%s\n    -> %s", marker, cp.Source, cp.Dest)
		if cp.Reason != "" {
			fmt.Printf("  [%s]", cp.Reason)
		}
		fmt.Println()
	}
	fmt.Println()
	fmt.Printf("Total %d, renamable %d, unchanged %d, conflicts %d\n",
		sum.Total, sum.Renamable, sum.Unchanged,
		len(sum.Invalid)+len(sum.Duplicate)+len(sum.TargetExists))

	if !*yesFlag && !settings.DryRun {
		fmt.Println("\nPreview only. Re-run with -yes to apply.")
		return
	}

	opts := rename.Options{
		DryRun:      settings.DryRun,
		StopOnError: settings.StopOnError,
	}
	if !settings.DryRun {
		log, err := renamelog.Open(settings.LogFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
			os.Exit(1)
		}
		defer log.Close()
		opts.Log = log
	}

	results, applyErr := rename.Apply(p, opts)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(os.Stderr, "Failed: %v\n", r.Err)
		}
	}
	fmt.Println(rename.SummaryLine(results, settings.DryRun))

	if settings.UndoCSV != "" {
		if err := rename.SaveUndoCSV(settings.UndoCSV, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing undo CSV: %v\n", err)
		}
	}
	if applyErr != nil {
		os.Exit(1)
	}
}
