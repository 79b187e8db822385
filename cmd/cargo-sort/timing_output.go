package main

import (
	"fmt"
	"io"

	"cargosort/internal/driver"
	"cargosort/internal/observ"
)

func printTimings(out io.Writer, results []driver.Result) {
	reports := make([]observ.Report, 0, len(results))
	for _, res := range results {
		if res.Timer != nil {
			reports = append(reports, res.Timer.Report())
		}
	}
	if len(reports) == 0 {
		return
	}
	fmt.Fprint(out, observ.Aggregate(reports...).Summary())
}
