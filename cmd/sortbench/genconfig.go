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
	"bytes"

	"github.com/google/renameio"
	"github.com/spf13/cobra"

	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/config"
)

func genConfigCommand() *cobra.Command {
	var (
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Write the default configuration",
		Long:  "Write the default benchmark configuration as toml or yaml to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := config.DefaultBenchParameters()
			var buf bytes.Buffer
			switch format {
			case "toml":
				if err := params.Dump(&buf); err != nil {
					return err
				}
			case "yaml":
				if err := params.DumpYAML(&buf); err != nil {
					return err
				}
			default:
				return moerr.NewInvalidArg(cmd.Context(), "format", format)
			}
			if output == "" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			// readers never observe a half written file
			return renameio.WriteFile(output, buf.Bytes(), 0644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write, stdout when empty")
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "toml or yaml")
	return cmd
}
