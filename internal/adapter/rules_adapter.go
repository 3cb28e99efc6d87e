// Package adapter contains the infrastructure adapters of modecitation:
// rules files, document sources and sinks, the XML tree adapter and the
// report store.
package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	m "modecitation.dev/pkg/modecitation/internal/model"
)

// ErrInvalidRules is returned when a rules file lacks a top-level "all"
// sequence.
var ErrInvalidRules = errors.New("invalid rules format: 'all' key not found or is not a sequence")

// RuleSetLoader reads the ordered rule list the engine applies.
type RuleSetLoader interface {
	Load(ctx context.Context, path m.Path) (m.RuleSet, error)
}

// LocalRuleSetLoader reads JSON or YAML rules files from disk.
type LocalRuleSetLoader struct{}

// NewLocalRuleSetLoader constructs a LocalRuleSetLoader.
func NewLocalRuleSetLoader() *LocalRuleSetLoader {
	return &LocalRuleSetLoader{}
}

// Load reads and decodes the rules file at path. JSON is picked for a .json
// extension or when the content starts with '{'; YAML otherwise.
func (l *LocalRuleSetLoader) Load(ctx context.Context, path m.Path) (m.RuleSet, error) {
	if err := ctx.Err(); err != nil {
		return m.RuleSet{}, err
	}

	// #nosec G304 - the rules path is an explicit operator choice
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.RuleSet{}, fmt.Errorf("read rules file: %w", err)
	}

	var rules []m.Rule
	if isJSON(string(path), data) {
		rules, err = decodeJSONRules(data)
	} else {
		rules, err = decodeYAMLRules(data)
	}

	if err != nil {
		return m.RuleSet{}, fmt.Errorf("decode rules file %s: %w", path, err)
	}

	slog.Info("rules loaded", "path", path, "count", len(rules))

	return m.RuleSet{Origin: path, Rules: rules}, nil
}

func isJSON(path string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".yaml", ".yml":
		return false
	}

	return bytes.HasPrefix(bytes.TrimSpace(data), []byte("{"))
}

func decodeJSONRules(data []byte) ([]m.Rule, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	raw, ok := top["all"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, ErrInvalidRules
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	rules := make([]m.Rule, 0, len(items))

	for i, item := range items {
		var rule m.Rule
		if err := json.Unmarshal(item, &rule); err != nil {
			slog.Warn("skipping undecodable rule", "index", i, "rule", string(item), "error", err)
			continue
		}

		if rule, ok := keep(i, rule); ok {
			rules = append(rules, rule)
		}
	}

	return rules, nil
}

func decodeYAMLRules(data []byte) ([]m.Rule, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRules, err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, ErrInvalidRules
	}

	var all *yaml.Node

	top := doc.Content[0]
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == "all" {
			all = top.Content[i+1]
			break
		}
	}

	if all == nil || all.Kind != yaml.SequenceNode {
		return nil, ErrInvalidRules
	}

	rules := make([]m.Rule, 0, len(all.Content))

	for i, item := range all.Content {
		var rule m.Rule
		if err := item.Decode(&rule); err != nil {
			slog.Warn("skipping undecodable rule", "index", i, "line", item.Line, "error", err)
			continue
		}

		if rule, ok := keep(i, rule); ok {
			rules = append(rules, rule)
		}
	}

	return rules, nil
}

func keep(index int, rule m.Rule) (m.Rule, bool) {
	rule.XPath = strings.TrimSpace(rule.XPath)
	if rule.XPath == "" {
		slog.Warn("rule without xpath", "index", index, "desc", rule.Desc)
		return rule, false
	}

	return rule, true
}
