// Copyright 2021 Matrix Origin
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

package config

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ghodss/yaml"
	"go.uber.org/multierr"

	"github.com/matrixorigin/runsort/pkg/bench/datagen"
	"github.com/matrixorigin/runsort/pkg/common/moerr"
	"github.com/matrixorigin/runsort/pkg/logutil"
	"github.com/matrixorigin/runsort/pkg/sort/runmerge"
)

type ConfigurationKeyType int

const (
	ParameterUnitKey ConfigurationKeyType = 1
)

// Input regimes the benchmark can generate.
const (
	RegimeRandom           = datagen.RegimeRandom
	RegimeSorted           = datagen.RegimeSorted
	RegimeReversed         = datagen.RegimeReversed
	RegimeNatural          = datagen.RegimeNatural
	RegimeFewUnique        = datagen.RegimeFewUnique
	RegimeSawtooth         = datagen.RegimeSawtooth
	RegimePipeOrgan        = datagen.RegimePipeOrgan
	RegimePowerAdversarial = datagen.RegimePowerAdversarial
)

// Regimes lists every supported regime.
func Regimes() []string {
	return datagen.Regimes()
}

var (
	defaultSizes         = []int{1000, 100000, 1000000}
	defaultRepeat        = 3
	defaultSeed   uint64 = 1
	// defaultStatsInterval is how often sort counters are written to the log.
	defaultStatsInterval = time.Second * 10

	// maxSize keeps a single case below 1<<30 elements.
	maxSize = 1 << 30
)

// Duration is a time.Duration decoded from a toml string like "10s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// BenchParameters of the sort benchmark
type BenchParameters struct {
	//sizes of the generated inputs
	Sizes []int `toml:"sizes" json:"sizes"`

	//input regimes, see Regimes
	Regimes []string `toml:"regimes" json:"regimes"`

	//merge policies: invariant, power
	Policies []string `toml:"policies" json:"policies"`

	//how many times every (size, regime, policy) case runs
	Repeat int `toml:"repeat" json:"repeat"`

	//number of cases sorted at the same time. default: number of cpus
	Workers int `toml:"workers" json:"workers"`

	//seed of the input generators
	Seed uint64 `toml:"seed" json:"seed"`

	//check every output for order, stability and permutation
	Verify bool `toml:"verify" json:"verify"`

	//sort row selections over the generated column instead of the column itself
	Indirect bool `toml:"indirect" json:"indirect"`

	//listening address of the prometheus endpoint, empty disables it
	MetricAddress string `toml:"metricAddress" json:"metricAddress"`

	//how often sort counters are written to the log
	StatsInterval Duration `toml:"statsInterval" json:"statsInterval"`

	Log logutil.LogConfig `toml:"log" json:"log"`
}

// DefaultBenchParameters returns the parameters used when no file is given.
func DefaultBenchParameters() *BenchParameters {
	p := &BenchParameters{Verify: true}
	p.SetDefaultValues()
	return p
}

// SetDefaultValues fills every unset field.
func (p *BenchParameters) SetDefaultValues() {
	if len(p.Sizes) == 0 {
		p.Sizes = append([]int(nil), defaultSizes...)
	}
	if len(p.Regimes) == 0 {
		p.Regimes = Regimes()
	}
	if len(p.Policies) == 0 {
		p.Policies = []string{runmerge.InvariantPolicyName, runmerge.PowerPolicyName}
	}
	if p.Repeat == 0 {
		p.Repeat = defaultRepeat
	}
	if p.Workers == 0 {
		p.Workers = runtime.NumCPU()
	}
	if p.Seed == 0 {
		p.Seed = defaultSeed
	}
	if p.StatsInterval.Duration == 0 {
		p.StatsInterval.Duration = defaultStatsInterval
	}
	if p.Log.Level == "" {
		p.Log.Level = "info"
	}
	if p.Log.Format == "" {
		p.Log.Format = "console"
	}
}

// Validate reports every invalid field at once.
func (p *BenchParameters) Validate() error {
	ctx := moerr.Context()
	var err error
	for _, size := range p.Sizes {
		if size < 0 || size > maxSize {
			err = multierr.Append(err, moerr.NewBadConfig(ctx, "size %d out of range [0, %d]", size, maxSize))
		}
	}
	valid := make(map[string]struct{})
	for _, r := range Regimes() {
		valid[r] = struct{}{}
	}
	for _, r := range p.Regimes {
		if _, ok := valid[r]; !ok {
			err = multierr.Append(err, moerr.NewBadConfig(ctx, "unknown regime %q", r))
		}
	}
	for _, name := range p.Policies {
		if _, e := runmerge.PolicyByName(name); e != nil {
			err = multierr.Append(err, moerr.NewBadConfig(ctx, "unknown merge policy %q", name))
		}
	}
	if p.Repeat < 1 {
		err = multierr.Append(err, moerr.NewBadConfig(ctx, "repeat must be positive, got %d", p.Repeat))
	}
	if p.Workers < 1 {
		err = multierr.Append(err, moerr.NewBadConfig(ctx, "workers must be positive, got %d", p.Workers))
	}
	if p.StatsInterval.Duration < 0 {
		err = multierr.Append(err, moerr.NewBadConfig(ctx, "negative stats interval %s", p.StatsInterval))
	}
	switch p.Log.Format {
	case "console", "json":
	default:
		err = multierr.Append(err, moerr.NewBadConfig(ctx, "unsupported log format %q", p.Log.Format))
	}
	return err
}

// Dump writes p as toml.
func (p *BenchParameters) Dump(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p)
}

// DumpYAML writes p as yaml.
func (p *BenchParameters) DumpYAML(w io.Writer) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadBenchParameters decodes the file at path, applies defaults and
// validates the result. Files ending in .yaml or .yml are read as yaml,
// anything else as toml. Keys a toml file sets but no field knows about
// are rejected.
func LoadBenchParameters(path string) (*BenchParameters, error) {
	p := &BenchParameters{}
	if isYAML(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, moerr.NewBadConfig(moerr.Context(), "read %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, moerr.NewBadConfig(moerr.Context(), "decode %s: %v", path, err)
		}
	} else {
		md, err := toml.DecodeFile(path, p)
		if err != nil {
			return nil, moerr.NewBadConfig(moerr.Context(), "decode %s: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, moerr.NewBadConfig(moerr.Context(), "unknown keys in %s: %v", path, undecoded)
		}
	}
	p.SetDefaultValues()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *BenchParameters) String() string {
	return fmt.Sprintf("sizes=%v regimes=%v policies=%v repeat=%d workers=%d seed=%d verify=%v indirect=%v",
		p.Sizes, p.Regimes, p.Policies, p.Repeat, p.Workers, p.Seed, p.Verify, p.Indirect)
}

type ParameterUnit struct {
	SV *BenchParameters
}

func NewParameterUnit(sv *BenchParameters) *ParameterUnit {
	return &ParameterUnit{
		SV: sv,
	}
}

// WithParameterUnit attaches pu to ctx.
func WithParameterUnit(ctx context.Context, pu *ParameterUnit) context.Context {
	return context.WithValue(ctx, ParameterUnitKey, pu)
}

// GetParameterUnit gets the configuration from the context.
func GetParameterUnit(ctx context.Context) *ParameterUnit {
	pu, _ := ctx.Value(ParameterUnitKey).(*ParameterUnit)
	if pu == nil {
		panic("parameter unit is invalid")
	}
	return pu
}
