// Command report renders a snapshot file as a terminal report: the brief,
// the metric card strip, the segment table and any validation issues.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"reportlens/app"
	"reportlens/domain/snapshot"
)

func main() {
	path := flag.String("snapshot", "", "path to a snapshot JSON file")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("[ERROR] Failed to read snapshot: %v", err)
	}

	bundle := app.BuildReport(snapshot.Parse(data))
	vm := bundle.ViewModel

	fmt.Printf("%s\n", vm.Header.Title)
	fmt.Printf("confidence: %s  safe mode: %v\n\n", vm.Header.Band, vm.Header.SafeMode)
	fmt.Printf("  %s\n", vm.Brief.Headline)
	fmt.Printf("  finding:  %s\n", vm.Brief.KeyFinding)
	fmt.Printf("  decision: %s\n\n", vm.Brief.Decision)

	if len(bundle.Cards) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Metric", "Value", "Note"})
		for _, c := range bundle.Cards {
			t.AppendRow(table.Row{c.Label, c.Value, c.Caption})
		}
		t.Render()
		fmt.Println()
	}

	if len(bundle.Table) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Segment", "Size", "Share", "Avg Value", "Status"})
		for _, row := range bundle.Table {
			t.AppendRow(table.Row{row.Name, row.Size, row.Share, row.AvgValue, row.Status})
		}
		t.Render()
		fmt.Println()
	}

	if len(bundle.Validation.Issues) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Severity", "Field", "Message"})
		for _, issue := range bundle.Validation.Issues {
			t.AppendRow(table.Row{issue.Severity, issue.Field, issue.Message})
		}
		t.Render()
	}
	fmt.Printf("\nvalidation score: %d/100  valid: %v\n", bundle.Validation.Score, bundle.Validation.IsValid)
}
