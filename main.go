package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/chazu/decorated/pkg/kernel"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("decorated", flag.ContinueOnError)
	kernelName := fs.String("kernel", "sdfx", "geometry kernel: sdfx or manifold")
	linear := fs.Float64("linear", kernel.PreviewTolerance.Linear, "linear display tolerance in mm")
	angular := fs.Float64("angular", kernel.PreviewTolerance.Angular, "angular display tolerance in degrees")
	doExport := fs.Bool("export", false, "write the selected object as STL beside the document file")
	asJSON := fs.Bool("json", false, "print the evaluation result as JSON")
	verbose := fs.Bool("v", false, "log rebuilds and written files")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: decorated [flags] script.lisp")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if *verbose {
		kernel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	k, err := newKernel(*kernelName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	app := NewAppWithKernel(k)
	app.SetTolerance(kernel.Tolerance{Linear: *linear, Angular: *angular})

	result := app.Evaluate(string(source))
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(result); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	} else {
		for _, m := range result.Meshes {
			fmt.Printf("%s: %d triangles\n", m.PartName, len(m.Indices)/3)
		}
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(os.Stderr, "warning:", w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			if e.Line > 0 {
				fmt.Fprintf(os.Stderr, "%s:%d: %s\n", fs.Arg(0), e.Line, e.Message)
			} else {
				fmt.Fprintf(os.Stderr, "%s: %s\n", fs.Arg(0), e.Message)
			}
		}
		return 1
	}

	if *doExport {
		path, err := app.Export()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("STL file generated at", path)
	}
	return 0
}
