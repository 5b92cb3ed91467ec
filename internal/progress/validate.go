package progress

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Check represents a single schema check against the progress document.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Validate verifies the document carries the structure an update run
// mutates. It checks shape only, not values: a file that passes here will
// not abort a run on a missing mapping.
func Validate(d *Document) []Check {
	var checks []Check

	status := mapValue(d.root, "current_status")
	checks = append(checks, checkMapping("current_status", status))

	metricsNode := mapValue(d.root, "metrics")
	checks = append(checks, checkMapping("metrics", metricsNode))

	if metricsNode != nil && metricsNode.Kind == yaml.MappingNode {
		checks = append(checks, checkMapping("metrics.velocity", mapValue(metricsNode, "velocity")))
	} else {
		checks = append(checks, Check{Name: "metrics.velocity", Passed: false, Detail: "metrics mapping missing"})
	}

	checks = append(checks, checkPhases(mapValue(d.root, "phases")))

	return checks
}

// Passed reports whether every check passed.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

func checkMapping(name string, n *yaml.Node) Check {
	switch {
	case n == nil:
		return Check{Name: name, Passed: false, Detail: "key missing"}
	case n.Kind != yaml.MappingNode:
		return Check{Name: name, Passed: false, Detail: "not a mapping"}
	default:
		return Check{Name: name, Passed: true, Detail: fmt.Sprintf("%d keys", len(n.Content)/2)}
	}
}

func checkPhases(n *yaml.Node) Check {
	switch {
	case n == nil:
		return Check{Name: "phases", Passed: false, Detail: "key missing"}
	case n.Kind != yaml.SequenceNode:
		return Check{Name: "phases", Passed: false, Detail: "not a sequence"}
	default:
		return Check{Name: "phases", Passed: true, Detail: fmt.Sprintf("%d entries", len(n.Content))}
	}
}
