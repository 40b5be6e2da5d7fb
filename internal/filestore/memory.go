package filestore

import (
	"context"
	"fmt"
	"io/fs"
	"sync"
)

// Op names a Store operation recorded by Memory.
type Op string

const (
	OpExists Op = "exists"
	OpRead   Op = "read"
)

// Call is one recorded Store operation.
type Call struct {
	Op   Op
	Name string
}

// Memory keeps files in-memory and records every call made against it.
// Failures can be injected per name for either operation.
type Memory struct {
	mu        sync.RWMutex
	files     map[string]string
	existErrs map[string]error
	readErrs  map[string]error
	calls     []Call
}

// NewMemory initialises a Memory store holding a copy of files.
func NewMemory(files map[string]string) *Memory {
	m := &Memory{
		files:     make(map[string]string, len(files)),
		existErrs: make(map[string]error),
		readErrs:  make(map[string]error),
	}
	for name, contents := range files {
		m.files[name] = contents
	}
	return m
}

// Put stores contents under name.
func (m *Memory) Put(name, contents string) {
	m.mu.Lock()
	m.files[name] = contents
	m.mu.Unlock()
}

// FailExists makes every existence check for name return err.
func (m *Memory) FailExists(name string, err error) {
	m.mu.Lock()
	m.existErrs[name] = err
	m.mu.Unlock()
}

// FailRead makes every read of name return err, even if name exists.
func (m *Memory) FailRead(name string, err error) {
	m.mu.Lock()
	m.readErrs[name] = err
	m.mu.Unlock()
}

// Exists implements Store.
func (m *Memory) Exists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpExists, Name: name})
	if err := m.existErrs[name]; err != nil {
		return false, err
	}
	_, ok := m.files[name]
	return ok, nil
}

// ReadFile implements Store.
func (m *Memory) ReadFile(_ context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Call{Op: OpRead, Name: name})
	if err := m.readErrs[name]; err != nil {
		return "", err
	}
	contents, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}
	return contents, nil
}

// Calls returns a copy of the recorded operations in call order.
func (m *Memory) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// Probed returns the names passed to Exists, in call order.
func (m *Memory) Probed() []string {
	return m.namesFor(OpExists)
}

// Read returns the names passed to ReadFile, in call order.
func (m *Memory) Read() []string {
	return m.namesFor(OpRead)
}

func (m *Memory) namesFor(op Op) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for _, c := range m.calls {
		if c.Op == op {
			out = append(out, c.Name)
		}
	}
	return out
}
