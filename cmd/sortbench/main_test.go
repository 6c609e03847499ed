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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/runsort/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := rootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenConfig(t *testing.T) {
	out, err := execute(t, "gen-config")
	require.NoError(t, err)
	require.Contains(t, out, "policies = [\"invariant\", \"power\"]")

	path := filepath.Join(t.TempDir(), "bench.toml")
	_, err = execute(t, "gen-config", "-o", path)
	require.NoError(t, err)
	p, err := config.LoadBenchParameters(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultBenchParameters(), p)
}

func TestGenConfigYAML(t *testing.T) {
	out, err := execute(t, "gen-config", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "policies:\n- invariant\n- power\n")

	path := filepath.Join(t.TempDir(), "bench.yml")
	_, err = execute(t, "gen-config", "-f", "yaml", "-o", path)
	require.NoError(t, err)
	p, err := config.LoadBenchParameters(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultBenchParameters(), p)

	_, err = execute(t, "gen-config", "-f", "ini")
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
sizes = [100, 2000]
regimes = ["natural", "poweradversarial"]
repeat = 2
workers = 2
verify = true
statsInterval = "1h"

[log]
level = "error"
`), 0644))

	out, err := execute(t, "run", "--config", path, "--indirect")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// header plus one line per size, regime and policy
	require.Len(t, lines, 1+2*2*2)
	require.Contains(t, lines[0], "compares")
	require.Contains(t, out, "poweradversarial")
}

func TestRunBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.toml")
	require.NoError(t, os.WriteFile(path, []byte("policies = [\"greedy\"]\n"), 0644))
	_, err := execute(t, "run", "-c", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "greedy")
}
