// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/matrixorigin/runsort/pkg/bench"
)

func writeReport(w io.Writer, sums []bench.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "size\tregime\tpolicy\tcases\tfailed\tmean\tp50\tp90\tmax\tcompares\tmoves\tmerges\t")
	for _, s := range sums {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\t%.0f\t%.0f\t%.1f\t\n",
			s.Size, s.Regime, s.Policy, s.Cases, s.Failed,
			s.Mean, s.P50, s.P90, s.Max,
			s.MeanCompares, s.MeanMoves, s.MeanMerges)
	}
	return tw.Flush()
}
