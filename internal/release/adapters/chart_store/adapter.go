// Package chartstore loads and persists chart metadata files, preserving
// the on-disk key order across a round trip.
package chartstore

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nathantilsley/chart-release/internal/release/domain"
	"github.com/nathantilsley/chart-release/internal/release/ports"
)

// Adapter implements ports.ChartStorePort on the local filesystem.
type Adapter struct{}

// New creates a new chart store adapter.
func New() *Adapter {
	return &Adapter{}
}

// Load reads and parses the chart file at path. An empty file yields an
// empty document. A missing file is reported as domain.ChartNotFoundError.
func (a *Adapter) Load(path string) (ports.ChartDocument, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewChartNotFoundError(path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	root := &yaml.Node{}
	if err := yaml.Unmarshal(raw, root); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &Document{root: root}, nil
}

// Save serializes the document and overwrites the file at path.
func (a *Adapter) Save(path string, doc ports.ChartDocument) error {
	data, err := doc.Encode()
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Document implements ports.ChartDocument on top of the yaml node tree.
// Mutations edit nodes in place, so unrelated keys keep their position,
// comments, and style.
type Document struct {
	root *yaml.Node
}

// mapping returns the top-level mapping node, promoting an empty document
// to one holding an empty mapping.
func (d *Document) mapping() *yaml.Node {
	if d.root.Kind == yaml.DocumentNode && len(d.root.Content) > 0 {
		return d.root.Content[0]
	}
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	d.root.Kind = yaml.DocumentNode
	d.root.Content = []*yaml.Node{m}
	return m
}

// Get implements ports.ChartDocument. ok is false for absent keys and for
// values that are not plain strings (a bare `version: 1.0` parses as a
// float and does not count).
func (d *Document) Get(key string) (string, bool) {
	m := d.mapping()
	if m.Kind != yaml.MappingNode {
		return "", false
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != key {
			continue
		}
		v := m.Content[i+1]
		if v.Kind == yaml.ScalarNode && v.Tag == "!!str" {
			return v.Value, true
		}
		return "", false
	}
	return "", false
}

// Set implements ports.ChartDocument.
func (d *Document) Set(key, value string) {
	m := d.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1].SetString(value)
			return
		}
	}
	k := &yaml.Node{}
	k.SetString(key)
	v := &yaml.Node{}
	v.SetString(value)
	m.Content = append(m.Content, k, v)
}

// Encode implements ports.ChartDocument.
func (d *Document) Encode() ([]byte, error) {
	d.mapping() // normalize empty documents before encoding

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
