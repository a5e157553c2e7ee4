// Command analyze submits one listing URL to the analysis service and
// prints the report to the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/duarte/imovest/internal/analysis"
	"github.com/duarte/imovest/internal/format"
	"github.com/duarte/imovest/internal/view"
)

func main() {
	baseURL := flag.String("base-url", os.Getenv("ANALYZER_BASE_URL"), "analysis service base URL")
	strategy := flag.String("strategy", "", "rental strategy: whole_apartment or by_room")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <listing-url>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	link := flag.Arg(0)

	client := analysis.NewClient(*baseURL, 0)

	var opts *analysis.AnalyzeOptions
	if *strategy != "" {
		opts = &analysis.AnalyzeOptions{RentalStrategy: *strategy}
	}

	raw, err := client.Analyze(context.Background(), link, opts)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	res, err := analysis.Decode(raw)
	if err != nil {
		log.Fatalf("Could not decode response: %v", err)
	}

	report := view.Build(res)
	if report.Failed {
		log.Fatalf("Analysis unsuccessful: %s", report.FailureText)
	}

	if report.ListingID != "" {
		fmt.Printf("Listing %s\n\n", report.ListingID)
	}

	printOverview(report)
	printDivisions(res)
	printSummary(report)
}

func printOverview(report view.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Metric", "Value"})

	if p := report.Property; p != nil {
		if p.Location != "" {
			t.AppendRow(table.Row{"Location", p.Location})
		}
		if p.Size != "" {
			t.AppendRow(table.Row{"Size", p.Size})
		}
		if p.Bedrooms != "" {
			t.AppendRow(table.Row{"Bedrooms", p.Bedrooms})
		}
	}
	if inv := report.Investment; inv != nil {
		t.AppendRow(table.Row{"Purchase price", inv.PurchasePrice})
		t.AppendRow(table.Row{"Remodeling cost", inv.RemodelingCost})
		t.AppendRow(table.Row{"Total investment", inv.TotalCost})
	}
	if r := report.Rent; r != nil {
		t.AppendRow(table.Row{"Monthly rent", r.Monthly})
		if r.Strategy != "" {
			t.AppendRow(table.Row{"Strategy", r.Strategy})
		}
	}
	if m := report.Metrics; m != nil {
		t.AppendRow(table.Row{"Gross yield", m.GrossYield})
		t.AppendRow(table.Row{"Net yield", m.NetYield})
		t.AppendRow(table.Row{"Monthly net income", m.MonthlyNet})
		t.AppendRow(table.Row{"Payback period", m.PaybackYears})
	}
	t.Render()
}

func printDivisions(res *analysis.Result) {
	if res.RehabCosts == nil || len(res.RehabCosts.Divisions) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Room", "Size", "Condition", "Cost"})

	for _, d := range res.RehabCosts.Divisions {
		size, cost := "", ""
		if d.SizeM2 != nil {
			size = format.Area(*d.SizeM2)
		}
		if d.TotalCost != nil {
			cost = format.Currency(*d.TotalCost)
		}
		tier := format.ConditionTier(d.Conditions["overall_condition"])
		t.AppendRow(table.Row{format.Label(d.RoomType), size, tier.Label, cost})
	}
	t.Render()
}

func printSummary(report view.Report) {
	if len(report.CostSummary) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Cost"})
	for _, line := range report.CostSummary {
		t.AppendRow(table.Row{line.Label, line.Amount})
	}
	t.Render()
}
