package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/reactive-go/reactive/reactive"
)

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func main() {
	flag.Parse()
	benchmarkPropagation()
	benchmarkDiamond()
}

// benchmarkPropagation measures how long a single ref write takes to
// propagate through a w-wide, h-deep chain of computeds each feeding one
// effect, the same shape signalparty's benchmarkAlien/benchmarkRocket use
// to compare reactive systems against each other.
func benchmarkPropagation() {
	tbl := table.NewWriter()
	tbl.SetTitle("reactive propagation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			src := reactive.NewRef(1)
			for i := 0; i < w; i++ {
				var last any = src
				for j := 0; j < h; j++ {
					prev := last
					last = reactive.NewComputed(func() int {
						return unwrapInt(prev) + 1
					})
				}
				final := last
				reactive.CreateEffect(func() reactive.Cleanup {
					unwrapInt(final)
					return nil
				})
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.SetValue(src.Value() + 1)
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
}

// benchmarkDiamond measures the classic diamond dependency (one ref feeding
// two computeds that both feed a single effect) to confirm the effect runs
// once per write rather than once per incoming edge.
func benchmarkDiamond() {
	tbl := table.NewWriter()
	tbl.SetTitle("reactive diamond dependency")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	tach := tachymeter.New(&tachymeter.Config{Size: iters})

	src := reactive.NewRef(1)
	left := reactive.NewComputed(func() int { return src.Value() + 1 })
	right := reactive.NewComputed(func() int { return src.Value() * 2 })
	reactive.CreateEffect(func() reactive.Cleanup {
		_ = left.Value() + right.Value()
		return nil
	})

	for i := 0; i < iters; i++ {
		start := time.Now()
		src.SetValue(src.Value() + 1)
		tach.AddTime(time.Since(start))
	}

	calc := tach.Calc()
	tbl.AppendRows([]table.Row{
		{"diamond: 1 ref, 2 computeds, 1 effect", calc.Time.Avg, calc.Time.Min, calc.Time.P75, calc.Time.P99, calc.Time.Max},
	})
	tbl.Render()
}

func unwrapInt(v any) int {
	switch t := v.(type) {
	case *reactive.Ref[int]:
		return t.Value()
	case *reactive.Computed[int]:
		return t.Value()
	default:
		panic("unwrapInt: unknown type")
	}
}
