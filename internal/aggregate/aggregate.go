package aggregate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/anyshake/prisma/internal/errors"
	"github.com/anyshake/prisma/internal/section"
)

const indent = "    "

// Aggregator holds the latest published draft of every section.
type Aggregator struct {
	order    []section.Key
	drafts   map[section.Key]any
	revision uint64
}

// New creates an empty aggregator ordered by the section registry.
func New() *Aggregator {
	return &Aggregator{
		order:  section.Keys(),
		drafts: make(map[section.Key]any),
	}
}

// Publish upserts the event's draft. Create and update are handled alike.
func (a *Aggregator) Publish(ev section.Event) {
	a.drafts[ev.Section] = section.CloneDraft(ev.Draft)
	a.revision++
}

// Keys returns the keys that have been published, in registry order.
func (a *Aggregator) Keys() []section.Key {
	keys := make([]section.Key, 0, len(a.drafts))
	for _, k := range a.order {
		if _, ok := a.drafts[k]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Get returns a copy of the stored draft for key.
func (a *Aggregator) Get(key section.Key) (any, bool) {
	d, ok := a.drafts[key]
	if !ok {
		return nil, false
	}
	return section.CloneDraft(d), true
}

// Complete reports whether every registered section has published.
func (a *Aggregator) Complete() bool {
	return len(a.Keys()) == len(a.order)
}

// Revision counts publications received. Identical republications still
// advance it.
func (a *Aggregator) Revision() uint64 {
	return a.revision
}

// JSON renders the document with sections in registry order and fields in
// draft order, indented by four spaces.
func (a *Aggregator) JSON() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, k := range a.Keys() {
		if i > 0 {
			compact.WriteByte(',')
		}
		name, err := marshalJSON(string(k))
		if err != nil {
			return nil, err
		}
		value, err := marshalJSON(a.drafts[k])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", k, err)
		}
		compact.Write(name)
		compact.WriteByte(':')
		compact.Write(value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// marshalJSON encodes v without escaping <, > and &.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// YAML renders the document as YAML with the same ordering as JSON.
func (a *Aggregator) YAML() ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range a.Keys() {
		var value yaml.Node
		if err := value.Encode(a.drafts[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", k, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(k)},
			&value,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(len(indent))
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TOML renders one table per section in registry order.
func (a *Aggregator) TOML() ([]byte, error) {
	var buf bytes.Buffer
	for i, k := range a.Keys() {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fmt.Fprintf(&buf, "[%s]\n", k)
		if err := toml.NewEncoder(&buf).Encode(a.drafts[k]); err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", k, err)
		}
	}
	return buf.Bytes(), nil
}

// Query looks up a gjson path in the rendered JSON document, for example
// "hardware.endpoint" or "ntpclient.pool.0".
func (a *Aggregator) Query(path string) (gjson.Result, error) {
	data, err := a.JSON()
	if err != nil {
		return gjson.Result{}, err
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return res, errors.New(errors.ExitGeneralError, fmt.Sprintf("no value at %q", path))
	}
	return res, nil
}
