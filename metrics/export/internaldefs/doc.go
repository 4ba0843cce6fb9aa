// Package internaldefs holds the shared metric definition tables used by the
// prometheus and otel exporters. It exists so both exporters render identical
// names and help strings without depending on each other.
package internaldefs
