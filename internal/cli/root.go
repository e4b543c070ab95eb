package cli

import (
	"os"

	"github.com/amterp/ra"
)

// CommandContext holds parsed values and used flags for all commands.
type CommandContext struct {
	// Global flags
	NonInteractive *bool

	// init command
	InitUsed *bool

	// new command
	NewUsed        *bool
	NewName        *string
	NewWidth       *int
	NewHeight      *int
	NewTransparent *bool
	NewSaveAs      *string

	// show command
	ShowUsed *bool
	ShowSave *string

	// export command
	ExportUsed         *bool
	ExportSave         *string
	ExportOut          *string
	ExportCheckerboard *bool

	// palette command
	PaletteUsed *bool

	// palette import
	PaletteImportUsed *bool
	PaletteImportSave *string
	PaletteImportFile *string

	// palette export
	PaletteExportUsed *bool
	PaletteExportSave *string
	PaletteExportFile *string

	// palette convert
	PaletteConvertUsed *bool
	PaletteConvertIn   *string
	PaletteConvertOut  *string

	// serve command
	ServeUsed   *bool
	ServePort   *int
	ServeNoOpen *bool
}

// Run is the main entry point for the CLI.
func Run() {
	ctx := &CommandContext{}

	cmd := ra.NewCmd("pixelpad")
	cmd.SetDescription("Pixel art editor with a local web UI")

	// Global flag for non-interactive mode
	ctx.NonInteractive, _ = ra.NewBool("non-interactive").
		SetShort("I").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Fail instead of prompting for missing input").
		Register(cmd, ra.WithGlobal(true))

	// Register all subcommands
	registerInit(cmd, ctx)
	registerNew(cmd, ctx)
	registerShow(cmd, ctx)
	registerExport(cmd, ctx)
	registerPalette(cmd, ctx)
	registerServe(cmd, ctx)

	// Parse command line
	cmd.ParseOrExit(os.Args[1:])

	// Execute the appropriate command
	executeCommand(ctx)
}

func executeCommand(ctx *CommandContext) {
	switch {
	case *ctx.InitUsed:
		runInit()

	case *ctx.NewUsed:
		runNew(*ctx.NewName, *ctx.NewWidth, *ctx.NewHeight, *ctx.NewTransparent, *ctx.NewSaveAs, *ctx.NonInteractive)

	case *ctx.ShowUsed:
		runShow(*ctx.ShowSave)

	case *ctx.ExportUsed:
		runExport(*ctx.ExportSave, *ctx.ExportOut, *ctx.ExportCheckerboard)

	case *ctx.PaletteImportUsed:
		runPaletteImport(*ctx.PaletteImportSave, *ctx.PaletteImportFile)

	case *ctx.PaletteExportUsed:
		runPaletteExport(*ctx.PaletteExportSave, *ctx.PaletteExportFile, *ctx.NonInteractive)

	case *ctx.PaletteConvertUsed:
		runPaletteConvert(*ctx.PaletteConvertIn, *ctx.PaletteConvertOut)

	case *ctx.ServeUsed:
		runServe(*ctx.ServePort, *ctx.ServeNoOpen)
	}
}
