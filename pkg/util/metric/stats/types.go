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

package stats

import (
	"sync"

	"go.uber.org/zap"
)

type LogExporter interface {
	Export() []zap.Field
}

// Family contains attributed related to a DevStats Family.
// Currently, it only has LogExporter
type Family struct {
	logExporter *LogExporter
}

type Options func(*Family)

func WithLogExporter(logExporter *LogExporter) Options {
	return func(f *Family) {
		f.logExporter = logExporter
	}
}

// Registry holds the families exported to the log, keyed by name.
type Registry struct {
	mu       sync.RWMutex
	families map[string]*Family
}

var DefaultRegistry = Registry{}

func Register(familyName string, opts ...Options) {
	DefaultRegistry.Register(familyName, opts...)
}

func Unregister(familyName string) {
	DefaultRegistry.Unregister(familyName)
}

// Register adds or replaces the family called familyName.
func (r *Registry) Register(familyName string, opts ...Options) {
	f := &Family{}
	for _, opt := range opts {
		opt(f)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.families == nil {
		r.families = make(map[string]*Family)
	}
	r.families[familyName] = f
}

func (r *Registry) Unregister(familyName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.families, familyName)
}

// ExportLog collects the fields of every family that has a LogExporter.
func (r *Registry) ExportLog() map[string][]zap.Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make(map[string][]zap.Field, len(r.families))
	for name, f := range r.families {
		if f.logExporter == nil {
			continue
		}
		res[name] = (*f.logExporter).Export()
	}
	return res
}
