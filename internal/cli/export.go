package cli

import (
	"github.com/amterp/ra"
)

func registerExport(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("export")
	cmd.SetDescription("Export a save's composited canvas as a PNG")

	ctx.ExportSave, _ = ra.NewString("save").
		SetUsage("Save name").
		Register(cmd)

	ctx.ExportOut, _ = ra.NewString("out").
		SetShort("o").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Output path (default: <save>.png in the workspace root)").
		Register(cmd)

	ctx.ExportCheckerboard, _ = ra.NewBool("checkerboard").
		SetShort("c").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Render transparency over a checkerboard instead of leaving it transparent").
		Register(cmd)

	ctx.ExportUsed, _ = parent.RegisterCmd(cmd)
}

func runExport(saveName, outPath string, checkerboard bool) {
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

	written, err := app.Documents.ExportPNG(doc.ID, outPath, checkerboard)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Exported %s to %s", doc.Name, written)
}
