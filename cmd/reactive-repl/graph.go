package main

import (
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/reactive-go/reactive/reactive"
)

func graphCmd() *cobra.Command {
	var scenario string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the track/trigger events a scenario produces",
		Long: `Graph runs a scenario and prints every debug event it produces
as a table, in the order the dependency graph emitted them.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printGraph(scenario)
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "computed-chain", "Scenario to run: counter, computed-chain, watch-deep")

	return cmd
}

type capturedEvent struct {
	at   time.Time
	op   string
	key  string
	eff  uint64
}

func printGraph(scenario string) error {
	prevDevMode := reactive.DevMode
	reactive.DevMode = true
	defer func() { reactive.DevMode = prevDevMode }()

	start := time.Now()
	var events []capturedEvent
	unsubscribe := reactive.Debug.Subscribe(func(ev reactive.DebugEvent) {
		key, _ := ev.Key.(string)
		var effID uint64
		if ev.Effect != nil {
			effID = ev.Effect.ID()
		}
		events = append(events, capturedEvent{at: time.Now(), op: ev.Type.String(), key: key, eff: effID})
	})
	defer unsubscribe()

	switch scenario {
	case "counter":
		runCounterScenario()
	case "computed-chain":
		runComputedChainScenario()
	case "watch-deep":
		runWatchDeepScenario()
	default:
		errorMsg("unknown scenario %q", scenario)
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "+elapsed", "op", "key", "effect"})
	for i, ev := range events {
		t.AppendRow(table.Row{i + 1, humanize.RelTime(start, ev.at, "", ""), ev.op, ev.key, ev.eff})
	}
	t.Render()
	info("%s events total", humanize.Comma(int64(len(events))))
	return nil
}
