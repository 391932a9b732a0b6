package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/retrodev/mzmap/catalog"
	"github.com/urfave/cli/v2"
)

var SchemaCommand = &cli.Command{
	Name:        "schema",
	Usage:       "Prints the JSON schema of the exported catalog artifact",
	Description: "Prints the JSON schema of the exported catalog artifact",
	Action:      PrintSchema,
}

// PrintSchema reflects the catalog document so downstream consumers can
// validate artifacts without hand-maintaining a schema.
func PrintSchema(ctx *cli.Context) error {
	reflector := new(jsonschema.Reflector)
	bts, err := json.MarshalIndent(reflector.Reflect(&catalog.Catalog{}), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}
	fmt.Println(string(bts))
	return nil
}
