package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func CreateInspectCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:        "inspect",
		Usage:       "Prints the parsed MZ header of an executable",
		Description: "Prints the parsed MZ header of an executable",
		ArgsUsage:   "<executable>",
		Action:      action,
	}
}

var InspectCommand = CreateInspectCommand(InspectImage)

func InspectImage(ctx *cli.Context) error {
	img, err := loadImage(ctx.Args().First())
	if err != nil {
		return err
	}

	var summary strings.Builder
	summary.WriteString("MZ header:\n")
	summary.WriteString(fmt.Sprintf("  Header size: %d bytes (%d paragraphs)\n",
		img.CodeStart, img.HeaderParagraphs))
	summary.WriteString(fmt.Sprintf("  Code start: 0x%X\n", img.CodeStart))
	summary.WriteString(fmt.Sprintf("  Entry point: CS:IP = %04X:%04X (linear: 0x%X)\n",
		img.InitialCS, img.InitialIP, img.EntryLinear))
	summary.WriteString(fmt.Sprintf("  Initial stack: SS:SP = %04X:%04X\n",
		img.InitialSS, img.InitialSP))
	summary.WriteString(fmt.Sprintf("  Pages in file: %d (%d bytes on last page)\n",
		img.PagesInFile, img.BytesLastPage))
	summary.WriteString(fmt.Sprintf("  Relocations: %d (table at 0x%X)\n",
		img.RelocCount, img.RelocTableOffset))
	summary.WriteString(fmt.Sprintf("  Allocation: min %d, max %d paragraphs\n",
		img.MinAlloc, img.MaxAlloc))
	summary.WriteString(fmt.Sprintf("  Checksum: 0x%04X\n", img.Checksum))
	summary.WriteString(fmt.Sprintf("  File size: %d bytes\n", len(img.Data)))

	_, err = os.Stdout.WriteString(summary.String())
	return err
}
