// Package testutil holds in-memory fakes of the driven ports for tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/diillson/weekly-usage-report/internal/domain/aggregate"
	"github.com/diillson/weekly-usage-report/internal/domain/entity"
	"github.com/diillson/weekly-usage-report/internal/shared/types"
)

// MemStore is an ObjectStore backed by a map.
type MemStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{Files: map[string][]byte{}}
}

func (s *MemStore) Read(_ context.Context, location string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.Files[location]
	if !ok {
		return nil, fmt.Errorf("error reading file: open %s: %w", location, os.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (s *MemStore) Write(_ context.Context, location string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[location] = append([]byte(nil), data...)
	return location, nil
}

func (s *MemStore) Join(dir, name string) string {
	if rest, ok := strings.CutPrefix(dir, "s3://"); ok {
		return "s3://" + path.Join(rest, name)
	}
	return path.Join(dir, name)
}

// Put stores content at location.
func (s *MemStore) Put(location, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[location] = []byte(content)
}

// Locations lists the stored locations, sorted.
func (s *MemStore) Locations() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.Files))
	for k := range s.Files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Console records everything printed and answers Select from Choices.
type Console struct {
	mu       sync.Mutex
	Lines    []string
	Pivots   []entity.PivotTable
	Choices  map[string]string
	Prompted []string
}

var _ types.ConsoleInterface = (*Console)(nil)

func (c *Console) record(level, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Lines = append(c.Lines, level+": "+fmt.Sprintf(format, a...))
}

func (c *Console) Print(a ...interface{})                 { c.record("print", "%s", fmt.Sprint(a...)) }
func (c *Console) Printf(format string, a ...interface{}) { c.record("print", format, a...) }
func (c *Console) Println(a ...interface{})               { c.record("print", "%s", fmt.Sprint(a...)) }

func (c *Console) LogInfo(format string, a ...interface{})    { c.record("info", format, a...) }
func (c *Console) LogWarning(format string, a ...interface{}) { c.record("warning", format, a...) }
func (c *Console) LogError(format string, a ...interface{})   { c.record("error", format, a...) }
func (c *Console) LogSuccess(format string, a ...interface{}) { c.record("success", format, a...) }

func (c *Console) Status(string) types.StatusHandle { return nopStatus{} }

func (c *Console) CreateTable() types.TableInterface { return &table{} }

func (c *Console) DisplayPivot(t entity.PivotTable) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Pivots = append(c.Pivots, t)
}

func (c *Console) Select(prompt string, options []string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Prompted = append(c.Prompted, prompt)
	for key, choice := range c.Choices {
		if strings.Contains(prompt, key) {
			return choice, true
		}
	}
	return "", false
}

// Contains reports whether any recorded line at level contains substr.
func (c *Console) Contains(level, substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.Lines {
		if strings.HasPrefix(l, level+": ") && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type table struct{ rows int }

func (t *table) AddColumn(string, ...interface{}) {}
func (t *table) AddRow(...interface{})            { t.rows++ }
func (t *table) Render() string                   { return fmt.Sprintf("table(%d rows)", t.rows) }

// DataRow builds a report data row with the standard column order.
func DataRow(project, resource, quantity string) []string {
	return []string{"1001", project, "2023-01-02", "2023-01-06", "Confirmed", resource, "Labor", quantity}
}

// ReportText renders a complete report: preamble lines, the standard header at
// row aggregate.DefaultHeaderRow, then rows. Every line ends with CRLF.
func ReportText(rows ...[]string) string {
	var b strings.Builder
	for i := 0; i < aggregate.DefaultHeaderRow; i++ {
		if i == 0 {
			b.WriteString("\"Resource Usage Export\"\r\n")
			continue
		}
		b.WriteString("\r\n")
	}
	writeRow(&b, aggregate.DefaultHeader)
	for _, r := range rows {
		writeRow(&b, r)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	for i, c := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(`"` + c + `"`)
	}
	b.WriteString("\r\n")
}

// Snapshot builds a mapping snapshot from alternating key/value pairs.
func Snapshot(projCust, custGroup []string) entity.MappingSnapshot {
	s := entity.NewMappingSnapshot()
	for i := 0; i+1 < len(projCust); i += 2 {
		s.ProjectCustomer[projCust[i]] = projCust[i+1]
	}
	for i := 0; i+1 < len(custGroup); i += 2 {
		s.CustomerGroup[custGroup[i]] = custGroup[i+1]
	}
	return s
}
