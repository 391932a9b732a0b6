package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/retrodev/mzmap/catalog"
	"github.com/retrodev/mzmap/disasm"
	"github.com/urfave/cli/v2"
)

var (
	CatalogFlag = &cli.PathFlag{
		Name:     "catalog",
		Usage:    "Path to an exported function catalog",
		Required: true,
	}
	FunctionFlag = &cli.StringFlag{
		Name:     "function",
		Usage:    "Name of the function to list. Ex: entry, FUN_00A20",
		Required: true,
	}
)

func CreateDisasmCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "disasm",
		Usage:       "Prints a 16-bit listing for one cataloged function",
		Description: "Prints a 16-bit listing for one cataloged function",
		ArgsUsage:   "<executable>",
		Action:      action,
		Flags: []cli.Flag{
			CatalogFlag,
			FunctionFlag,
		},
	}
}

var DisasmCommand = CreateDisasmCommand(DisasmFunction)

func DisasmFunction(ctx *cli.Context) error {
	cat, err := catalog.Load(ctx.Path(CatalogFlag.Name))
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}

	name := ctx.String(FunctionFlag.Name)
	fn := cat.Lookup(name)
	if fn == nil {
		return fmt.Errorf("function %s not found in catalog", name)
	}

	img, err := loadImage(ctx.Args().First())
	if err != nil {
		return err
	}

	lines, err := disasm.Listing(img.Data, fn.Addr, fn.SizeBytes)
	if err != nil {
		return fmt.Errorf("unable to build listing: %w", err)
	}

	var listing strings.Builder
	listing.WriteString(fmt.Sprintf("%s (%s, %d bytes, %s):\n",
		fn.Name, fn.EntryLinear, fn.SizeBytes, fn.Subsystem))
	for _, line := range lines {
		listing.WriteString(fmt.Sprintf("  %05X  %-16s %s\n", line.Offset, line.Bytes, line.Text))
	}

	_, err = os.Stdout.WriteString(listing.String())
	return err
}
