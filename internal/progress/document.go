// Package progress reads, mutates, and writes the tracked progress document.
//
// The document is manipulated as a yaml.Node tree rather than through
// typed structs. A round trip through a map or struct would reorder keys
// and drop anything the schema does not know about; the node tree keeps
// both, so repeated runs against an unchanged tracker rewrite the file
// byte-for-byte except for the update timestamp.
package progress

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/topictracker/pace/internal/metrics"
	"github.com/topictracker/pace/internal/models"
)

// Document is a parsed progress file.
type Document struct {
	doc  *yaml.Node // document node, retained for re-encoding
	root *yaml.Node // top-level mapping
}

// Load reads and parses the progress document at path. The file must
// already exist; Load never creates one.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse parses a progress document from raw YAML.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse progress document: %w", err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse progress document: top level is not a mapping")
	}
	return &Document{doc: &doc, root: doc.Content[0]}, nil
}

// Apply merges one run's computed state into the document.
//
// The shallow merge touches only the keys the run produces: the four task
// counters and velocity.current inside metrics, the phases list, and the
// current_status fields. Sibling keys keep their values and every mapping
// keeps its key order. The current-phase pointer moves only when some phase
// is in progress; phase and phase_name are otherwise left alone.
func (d *Document) Apply(m models.Metrics, velocity float64, phaseList []models.Phase, now time.Time) error {
	status, err := d.mapping("current_status")
	if err != nil {
		return err
	}
	metricsNode, err := d.mapping("metrics")
	if err != nil {
		return err
	}
	velocityNode := mapValue(metricsNode, "velocity")
	if velocityNode == nil || velocityNode.Kind != yaml.MappingNode {
		return fmt.Errorf("progress document has no metrics.velocity mapping")
	}

	setString(status, "last_updated", now.UTC().Format(time.RFC3339))

	setInt(metricsNode, "total_tasks", m.TotalTasks)
	setInt(metricsNode, "completed_tasks", m.CompletedTasks)
	setInt(metricsNode, "in_progress_tasks", m.InProgressTasks)
	setInt(metricsNode, "blocked_tasks", m.BlockedTasks)
	setFloat(velocityNode, "current", velocity)

	var seq yaml.Node
	if err := seq.Encode(phaseList); err != nil {
		return fmt.Errorf("encode phases: %w", err)
	}
	setNode(d.root, "phases", &seq)

	for _, p := range phaseList {
		if p.Status == models.PhaseInProgress {
			setInt(status, "phase", p.Number)
			setString(status, "phase_name", p.Name)
			break
		}
	}

	setString(status, "health", string(metrics.Health(m.BlockedTasks)))
	return nil
}

// Save writes the document back to path, replacing the previous contents.
func (d *Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	return nil
}

// Marshal renders the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("encode progress document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode progress document: %w", err)
	}
	return buf.Bytes(), nil
}

// View decodes the document into the read-only display view.
func (d *Document) View() (*models.Progress, error) {
	var p models.Progress
	if err := d.root.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode progress document: %w", err)
	}
	return &p, nil
}

// mapping returns the named top-level mapping or an error when it is
// missing or of the wrong kind.
func (d *Document) mapping(key string) (*yaml.Node, error) {
	n := mapValue(d.root, key)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("progress document has no %s mapping", key)
	}
	return n, nil
}

// mapValue returns the value node for key within a mapping, or nil.
func mapValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setNode sets key to the given value node, appending the pair when the
// key is absent. An existing key keeps its position.
func setNode(mapping *yaml.Node, key string, value *yaml.Node) {
	if existing := mapValue(mapping, key); existing != nil {
		*existing = *value
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		value,
	)
}

func setScalar(mapping *yaml.Node, key, tag, value string) {
	setNode(mapping, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value})
}

func setString(mapping *yaml.Node, key, value string) {
	setScalar(mapping, key, "!!str", value)
}

func setInt(mapping *yaml.Node, key string, value int) {
	setScalar(mapping, key, "!!int", strconv.Itoa(value))
}

// setFloat stores the value rounded to two decimal places.
func setFloat(mapping *yaml.Node, key string, value float64) {
	setScalar(mapping, key, "!!float", strconv.FormatFloat(value, 'f', 2, 64))
}
