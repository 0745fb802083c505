// Command condmask evaluates boolean conditions against parquet files.
//
// Usage:
//
//	condmask filter -w '[age > 30 and age <= 40] or name == alice' data.parquet
//	condmask mask -w 'score >= 90.0' 'data/**/*.parquet'
//	condmask expr '[c1 > 1 and c1 <= 3] or c2 == "f"'
//	condmask columns data.parquet
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	red := color.New(color.FgRed, color.Bold)
	_, _ = red.Fprintf(os.Stderr, "Error: ")
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

// run parses args and executes the selected command
func run(args []string, stdout, stderr io.Writer) error {
	app, e := newApp(stdout, stderr)
	_, err := app.Parse(args)
	if e.exited {
		return nil
	}
	return err
}
