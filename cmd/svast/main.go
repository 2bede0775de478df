// svast works with SystemVerilog syntax trees stored as JSON or YAML
// documents.
//
// It decodes and validates documents, prints them in canonical form,
// reports the integer ranges of declared types and runs pass pipelines
// over a document, optionally recording every intermediate state.
//
// Usage:
//
//	# Validate documents
//	svast check design.json lib/*.json
//
//	# Print the canonical YAML rendering
//	svast fmt --format yaml design.json
//
//	# Show the range of every integer type
//	svast ranges --output json design.json
//
//	# Run the configured pipeline
//	svast run --config svast.yaml --out design.out.json design.json
//
//	# Rerun the pipeline whenever the document changes
//	svast watch --metrics-addr :9090 design.json
package main

import "os"

func main() {
	os.Exit(Execute())
}
