package cli

import (
	"github.com/amterp/ra"
)

func registerNew(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("new")
	cmd.SetDescription("Create a new document and save it")

	ctx.NewName, _ = ra.NewString("name").
		SetOptional(true).
		SetUsage("Document name (prompted if omitted)").
		Register(cmd)

	ctx.NewWidth, _ = ra.NewInt("width").
		SetShort("W").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Canvas width in pixels (default from pixelpad.toml)").
		Register(cmd)

	ctx.NewHeight, _ = ra.NewInt("height").
		SetShort("H").
		SetOptional(true).
		SetDefault(0).
		SetFlagOnly(true).
		SetUsage("Canvas height in pixels (default from pixelpad.toml)").
		Register(cmd)

	ctx.NewTransparent, _ = ra.NewBool("transparent").
		SetShort("t").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Start with a transparent background layer").
		Register(cmd)

	ctx.NewSaveAs, _ = ra.NewString("save-as").
		SetShort("s").
		SetOptional(true).
		SetFlagOnly(true).
		SetUsage("Save file name (default: slug of the document name)").
		Register(cmd)

	ctx.NewUsed, _ = parent.RegisterCmd(cmd)
}

func runNew(name string, width, height int, transparent bool, saveAs string, nonInteractive bool) {
	app, err := NewApp(!nonInteractive)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireWorkspace(); err != nil {
		Fatal(err)
	}

	if name == "" {
		name, err = app.Prompter.Input("Document name", "untitled")
		if err != nil {
			Fatal(err)
		}
	}

	doc, err := app.Documents.Create(name, width, height, transparent)
	if err != nil {
		Fatal(err)
	}

	savedAs, err := app.Documents.Save(doc.ID, saveAs, false)
	if err != nil {
		Fatal(err)
	}

	PrintSuccess("Created %s (%dx%d), saved as %s", doc.Name, doc.Width, doc.Height, RenderID(savedAs))
}
