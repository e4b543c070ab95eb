package cli

import (
	"os"

	"github.com/amterp/ra"
)

func registerPalette(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("palette")
	cmd.SetDescription("Import, export, and convert palette files (.ase, .gpl)")

	registerPaletteImport(cmd, ctx)
	registerPaletteExport(cmd, ctx)
	registerPaletteConvert(cmd, ctx)

	ctx.PaletteUsed, _ = parent.RegisterCmd(cmd)
}

func registerPaletteImport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("import")
	cmd.SetDescription("Replace a save's palette with colors from a swatch file")

	ctx.PaletteImportSave, _ = ra.NewString("save").
		SetUsage("Save name").
		Register(cmd)

	ctx.PaletteImportFile, _ = ra.NewString("file").
		SetUsage("Swatch file to read (.ase or .gpl)").
		Register(cmd)

	ctx.PaletteImportUsed, _ = parent.RegisterCmd(cmd)
}

func registerPaletteExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Write a save's palette to a swatch file")

	ctx.PaletteExportSave, _ = ra.NewString("save").
		SetUsage("Save name").
		Register(cmd)

	ctx.PaletteExportFile, _ = ra.NewString("file").
		SetUsage("Swatch file to write (format chosen by extension)").
		Register(cmd)

	ctx.PaletteExportUsed, _ = parent.RegisterCmd(cmd)
}

func registerPaletteConvert(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("convert")
	cmd.SetDescription("Convert a swatch file between formats")

	ctx.PaletteConvertIn, _ = ra.NewString("in").
		SetUsage("Input swatch file").
		Register(cmd)

	ctx.PaletteConvertOut, _ = ra.NewString("out").
		SetUsage("Output swatch file (format chosen by extension)").
		Register(cmd)

	ctx.PaletteConvertUsed, _ = parent.RegisterCmd(cmd)
}

func runPaletteImport(saveName, file string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireWorkspace(); err != nil {
		Fatal(err)
	}

	doc, err := app.Documents.Open(saveName)
	if err != nil {
		Fatal(err)
	}

	count, err := app.Palettes.ImportFile(doc.ID, file)
	if err != nil {
		if count == 0 {
			Fatal(err)
		}
		// Truncated file: the readable prefix was imported.
		PrintWarning("Imported only %d colors: %v", count, err)
	}

	if _, err := app.Documents.Save(doc.ID, saveName, true); err != nil {
		Fatal(err)
	}

	PrintSuccess("Imported %d colors into %s", count, saveName)
}

func runPaletteExport(saveName, file string, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireWorkspace(); err != nil {
		Fatal(err)
	}

	if _, err := os.Stat(file); err == nil {
		ok, err := app.Prompter.Confirm("Overwrite "+file+"?", false)
		if err != nil {
			Fatal(err)
		}
		if !ok {
			return
		}
	}

	doc, err := app.Documents.Open(saveName)
	if err != nil {
		Fatal(err)
	}

	count, err := app.Palettes.ExportFile(doc.ID, file)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Exported %d colors to %s", count, file)
}

func runPaletteConvert(inPath, outPath string) {
	// Pure file-to-file conversion, no workspace needed.
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	count, err := app.Palettes.Convert(inPath, outPath)
	if err != nil {
		if count == 0 {
			Fatal(err)
		}
		PrintWarning("Converted only %d colors: %v", count, err)
	}

	PrintSuccess("Converted %d colors to %s", count, outPath)
}
