package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"cityflow/simulator/dataset"
	"cityflow/simulator/models"
	"cityflow/simulator/simulation"
)

func newScenariosCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the built-in traffic scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Simulation.Location()
			if err != nil {
				return err
			}
			return printScenarios(cmd.OutOrStdout(), dataset.Intersections(), dataset.Scenarios(loc))
		},
	}
}

func printScenarios(out io.Writer, is models.Intersections, scenarios []models.Scenario) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODE\tSTART\tROUTES\tVEHICLES\tNETWORK KM\tNAME")
	for _, sc := range scenarios {
		start := "wall clock"
		if sc.StartTime != nil {
			start = sc.StartTime.Format("2006-01-02 ") + simulation.ClockLabel(*sc.StartTime)
		}
		total := lo.SumBy(sc.Routes, func(r models.Route) int { return r.Count })
		var meters float64
		for _, r := range sc.Routes {
			m, err := dataset.RouteLengthMeters(is, r)
			if err != nil {
				return err
			}
			meters += m
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\t%s\n",
			sc.ID, sc.Mode(), start, len(sc.Routes), total, meters/1000, sc.Name)
	}
	return w.Flush()
}
