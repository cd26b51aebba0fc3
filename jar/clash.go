package jar

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// PluginCacheName is the log4j plugin cache. The cache is a binary index that
// accumulates entries across the archives that carry it, and its format is
// not worth parsing here; a larger copy is treated as the more complete one.
const PluginCacheName = "META-INF/org/apache/logging/log4j/core/config/plugins/Log4j2Plugins.dat"

// OverwriteThreshold is the staged size, in bytes, above which the plugin
// cache is considered complete. Once a copy this large has been written the
// run stops replacing it.
const OverwriteThreshold = 5000

const servicesPrefix = "META-INF/services/"

// Strategy is the rule applied when two sources produce the same entry name.
type Strategy uint8

const (
	// FirstWins keeps the first-seen content and discards the incoming copy.
	FirstWins Strategy = iota
	// MergeStructuredData merges both copies as flat key-value maps, with
	// keys from the first-seen copy winning collisions.
	MergeStructuredData
	// ConcatenateLines appends the incoming lines after the existing ones,
	// separated by a blank line, preserving order and duplicates.
	ConcatenateLines
	// SizeThresholdOverwrite replaces the existing copy while the run's
	// overwrite latch is open.
	SizeThresholdOverwrite
)

func (s Strategy) String() string {
	switch s {
	case MergeStructuredData:
		return "merge-structured-data"
	case ConcatenateLines:
		return "concatenate-lines"
	case SizeThresholdOverwrite:
		return "size-threshold-overwrite"
	default:
		return "first-wins"
	}
}

type clashRule struct {
	match    func(name string) bool
	strategy Strategy
}

// clashRules is evaluated top to bottom; the first match decides the
// strategy and unmatched names fall through to FirstWins.
var clashRules = []clashRule{
	{isDataReaders, MergeStructuredData},
	{isServiceFile, ConcatenateLines},
	{func(name string) bool { return name == PluginCacheName }, SizeThresholdOverwrite},
}

// StrategyFor selects the clash strategy for an entry name. Selection is
// purely name-driven; content is never inspected.
func StrategyFor(name string) Strategy {
	for _, rule := range clashRules {
		if rule.match(name) {
			return rule.strategy
		}
	}
	return FirstWins
}

// isDataReaders matches reader-configuration files at any depth.
func isDataReaders(name string) bool {
	switch path.Base(name) {
	case "data_readers.yaml", "data_readers.yml", "data_readers.json":
		return true
	}
	return false
}

// isServiceFile matches service-provider declarations under
// META-INF/services/, but not the directory entry itself.
func isServiceFile(name string) bool {
	return strings.HasPrefix(name, servicesPrefix) && len(name) > len(servicesPrefix)
}

// mergeStructuredMaps merges two reader-configuration files. Both sides must
// parse as a single flat map; on key collision the existing (first-seen) side
// wins, because it came from an earlier, order-preferred classpath item. The
// result is serialized with sorted keys so repeated assemblies produce
// identical bytes.
func mergeStructuredMaps(existing, incoming []byte) ([]byte, error) {
	var base, overlay map[string]any
	if err := yaml.Unmarshal(existing, &base); err != nil {
		return nil, fmt.Errorf("parsing existing copy: %w", err)
	}
	if err := yaml.Unmarshal(incoming, &overlay); err != nil {
		return nil, fmt.Errorf("parsing incoming copy: %w", err)
	}
	merged := make(map[string]any, len(base)+len(overlay))
	for k, v := range overlay {
		merged[k] = v
	}
	for k, v := range base {
		merged[k] = v
	}
	return yaml.Marshal(merged)
}

// concatenateLines joins two service-provider files: existing lines, one
// blank separator line, then incoming lines. No deduplication.
func concatenateLines(existing, incoming []byte) []byte {
	var out bytes.Buffer
	out.Write(existing)
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	out.Write(incoming)
	return out.Bytes()
}
