package main

import (
	"context"
	"log"
	"os"

	"github.com/retrodev/mzmap/cmd"
	"github.com/urfave/cli/v2"
)

func main() {
	app := cli.NewApp()
	app.Name = os.Args[0]
	app.Usage = "DOS Executable Function Catalog"
	app.Description = "Recovers function boundaries, call edges, interrupt usage and subsystem tags from a real-mode MZ executable"
	app.Commands = []*cli.Command{
		cmd.AnalyzeCommand,
		cmd.InspectCommand,
		cmd.DisasmCommand,
		cmd.SchemaCommand,
	}
	err := app.RunContext(context.Background(), os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
