package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	traceback "github.com/xgx-io/xgx-traceback"
)

// collect expands directories into their *.json files. File sink names start
// with a sortable timestamp, so lexical order is chronological.
func collect(paths []string, latest bool) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.json"))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		log.WithField("dir", p).Debugf("found %d traceback files", len(matches))
		if latest && len(matches) > 0 {
			matches = matches[len(matches)-1:]
		}
		out = append(out, matches...)
	}
	return out, nil
}

func load(path string) (*traceback.Error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return traceback.Parse(data)
}

func render(w io.Writer, e *traceback.Error, format string) error {
	switch format {
	case outputJSON:
		b, err := e.MarshalIndent("", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case outputYAML:
		node, err := yamlNode(e)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return err
		}
		return enc.Close()
	default:
		_, err := fmt.Fprintf(w, "%+v\n", e)
		return err
	}
}

type yamlFrame struct {
	Message   string    `yaml:"message"`
	File      string    `yaml:"file"`
	Line      int       `yaml:"line"`
	Timestamp time.Time `yaml:"timestamp"`
}

// yamlNode builds a mapping node with the same key order as the JSON
// document; encoding a map would sort the keys.
func yamlNode(e *traceback.Error) (*yaml.Node, error) {
	doc, err := e.Structured()
	if err != nil {
		return nil, err
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value any) error {
		v := &yaml.Node{}
		if err := v.Encode(value); err != nil {
			return fmt.Errorf("encoding %s: %w", key, err)
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: key}, v)
		return nil
	}

	frames := make([]yamlFrame, len(doc.Frames))
	for i, f := range doc.Frames {
		frames[i] = yamlFrame(f)
	}
	if err := add("frames", frames); err != nil {
		return nil, err
	}
	if err := add("extra_data", doc.ExtraData); err != nil {
		return nil, err
	}
	for _, kv := range []struct {
		key string
		val *string
	}{
		{traceback.KeyProject, doc.Project},
		{traceback.KeyComputerName, doc.ComputerName},
		{traceback.KeyUsername, doc.Username},
	} {
		if kv.val != nil {
			if err := add(kv.key, *kv.val); err != nil {
				return nil, err
			}
		}
	}
	if len(doc.Metadata) > 0 {
		meta := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range doc.Metadata {
			meta.Content = append(meta.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Value, Style: quoteStyle(f.Value)},
			)
		}
		root.Content = append(root.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: "metadata"}, meta)
	}
	return root, nil
}

// quoteStyle keeps values such as "true" or "42" strings when read back.
func quoteStyle(s string) yaml.Style {
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil || v == nil {
		return yaml.DoubleQuotedStyle
	}
	if str, ok := v.(string); ok && str == s && !strings.ContainsAny(s, ":#\n") {
		return 0
	}
	return yaml.DoubleQuotedStyle
}
