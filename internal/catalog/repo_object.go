package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"stackfast/internal/shared/storage/object"
	"stackfast/internal/shared/telemetry"
)

const defaultPartitionConcurrency = 4

// ObjectRepo reads the catalog from partition files (one per category, JSON or YAML)
// held in an object store, merging them into one flat list.
type ObjectRepo struct {
	Store       object.ObjectStore
	Prefix      string
	Concurrency int
}

// partitionDoc is the object form of a partition; the bare-array form is also accepted.
type partitionDoc struct {
	Category string            `json:"category"`
	Tools    []json.RawMessage `json:"tools"`
}

// ListTools fetches every partition under Prefix and merges them in key order.
// Duplicate ids keep their first occurrence.
func (r *ObjectRepo) ListTools(ctx context.Context) ([]ToolProfile, error) {
	keys, err := r.Store.List(ctx, r.Prefix)
	if err != nil {
		return nil, fmt.Errorf("list catalog partitions: %w", err)
	}
	keys = filterPartitionKeys(keys)

	partitions := make([][]ToolProfile, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultPartitionConcurrency
	}
	g.SetLimit(limit)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			tools, err := r.loadPartition(gctx, key)
			if err != nil {
				return err
			}
			partitions[i] = tools
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]string)
	out := make([]ToolProfile, 0, 64)
	for i, tools := range partitions {
		for _, t := range tools {
			if first, dup := seen[t.ID]; dup {
				telemetry.Warn("catalog.duplicate_tool", map[string]any{
					"tool_id":   t.ID,
					"partition": keys[i],
					"kept_from": first,
				})
				continue
			}
			seen[t.ID] = keys[i]
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *ObjectRepo) loadPartition(ctx context.Context, key string) ([]ToolProfile, error) {
	rc, err := r.Store.Open(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("open partition %s: %w", key, err)
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read partition %s: %w", key, err)
	}
	tools, err := ParsePartition(raw, partitionName(key))
	if err != nil {
		return nil, fmt.Errorf("parse partition %s: %w", key, err)
	}
	return tools, nil
}

// ParsePartition decodes a JSON or YAML partition. Tools without a category inherit
// the partition's declared category, or defaultCategory when none is declared.
// Entries that fail to decode or validate are skipped and logged.
func ParsePartition(raw []byte, defaultCategory string) ([]ToolProfile, error) {
	data, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}

	var entries []json.RawMessage
	category := defaultCategory
	if data[0] == '[' {
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, err
		}
	} else {
		var doc partitionDoc
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if c := strings.TrimSpace(doc.Category); c != "" {
			category = c
		}
		entries = doc.Tools
	}

	out := make([]ToolProfile, 0, len(entries))
	for i, entry := range entries {
		var t ToolProfile
		if err := json.Unmarshal(entry, &t); err != nil {
			telemetry.Warn("catalog.tool_skipped", map[string]any{"partition": defaultCategory, "index": i, "error": err.Error()})
			continue
		}
		if strings.TrimSpace(t.Category) == "" {
			t.Category = category
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			telemetry.Warn("catalog.tool_skipped", map[string]any{"partition": defaultCategory, "index": i, "error": err.Error()})
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func filterPartitionKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch strings.ToLower(path.Ext(k)) {
		case ".json", ".yaml", ".yml":
			out = append(out, k)
		}
	}
	return out
}

func partitionName(key string) string {
	base := path.Base(key)
	return strings.TrimSuffix(base, path.Ext(base))
}

var _ Repo = (*ObjectRepo)(nil)
