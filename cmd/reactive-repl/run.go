package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/reactive-go/reactive/devtools"
	"github.com/reactive-go/reactive/reactive"
)

func runCmd() *cobra.Command {
	var (
		scenario string
		serve    string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scripted reactivity scenario",
		Long: `Run exercises a small built-in scenario against the reactive
dependency graph and prints the effect runs it triggers.

Pass --serve to additionally expose a devtools websocket at
/devtools/ws for the duration of the run, so an inspector can watch
the scenario live.

Examples:
  reactive-repl run
  reactive-repl run --scenario=computed-chain
  reactive-repl run --serve=:4200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(scenario, serve)
		},
	}

	cmd.Flags().StringVarP(&scenario, "scenario", "s", "counter", "Scenario to run: counter, computed-chain, watch-deep")
	cmd.Flags().StringVar(&serve, "serve", "", "Address to serve devtools websocket on while the scenario runs (e.g. :4200)")

	return cmd
}

func runScenario(name, serve string) error {
	printBanner()

	reactive.DevMode = true

	var srv *devtools.Server
	if serve != "" {
		srv = devtools.NewServer(nil)
		defer srv.Close()
		r := chi.NewRouter()
		srv.Mount(r)
		go http.ListenAndServe(serve, r)
		info("devtools websocket listening at ws://%s/devtools/ws", serve)
	}

	switch name {
	case "counter":
		runCounterScenario()
	case "computed-chain":
		runComputedChainScenario()
	case "watch-deep":
		runWatchDeepScenario()
	default:
		errorMsg("unknown scenario %q", name)
		return fmt.Errorf("unknown scenario %q", name)
	}

	success("scenario %q complete", name)
	return nil
}

func runCounterScenario() {
	count := reactive.NewRef(0)
	reactive.CreateEffect(func() reactive.Cleanup {
		info("count = %d", count.Value())
		return nil
	})
	for i := 1; i <= 3; i++ {
		count.SetValue(i)
	}
}

func runComputedChainScenario() {
	width := reactive.NewRef(2.0)
	height := reactive.NewRef(3.0)
	area := reactive.NewComputed(func() float64 {
		return width.Value() * height.Value()
	})
	perimeter := reactive.NewComputed(func() float64 {
		return 2 * (width.Value() + height.Value())
	})
	reactive.CreateEffect(func() reactive.Cleanup {
		info("area=%.2f perimeter=%.2f", area.Value(), perimeter.Value())
		return nil
	})
	width.SetValue(5.0)
	height.SetValue(4.0)
}

func runWatchDeepScenario() {
	state := reactive.NewObject(map[string]any{
		"user": map[string]any{"name": "ada", "logins": 0},
	})
	reactive.WatchDeep(state, func(onCleanup reactive.OnCleanup) {
		info("state changed")
	})
	user := state.Get("user").(*reactive.Object)
	user.Set("logins", 1)
	user.Set("logins", 2)
}
