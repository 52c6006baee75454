// Command schema-gen emits the JSON Schema of the graph export
// document, for consumers that validate exports or generate typed
// bindings.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"iremember/pkg/memgraph"
)

func main() {
	output := flag.String("output", "", "output file (stdout when empty)")
	flag.Parse()

	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}
	schema := reflector.Reflect(&memgraph.Document{})

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal schema: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote schema to %s\n", *output)
}
