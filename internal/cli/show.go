package cli

import (
	"fmt"

	"github.com/amterp/ra"
	"github.com/pixelpad/pixelpad/internal/model"
	"github.com/pixelpad/pixelpad/internal/util"
)

func registerShow(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("show")
	cmd.SetDescription("List saves, or display one save's document details")

	ctx.ShowSave, _ = ra.NewString("save").
		SetOptional(true).
		SetUsage("Save name (lists all saves if omitted)").
		Register(cmd)

	ctx.ShowUsed, _ = parent.RegisterCmd(cmd)
}

func runShow(saveName string) {
	app, err := NewApp(true)
	if err != nil {
		Fatal(err)
	}

	if err := app.RequireWorkspace(); err != nil {
		Fatal(err)
	}

	if saveName == "" {
		listSaves(app)
		return
	}

	doc, err := app.Documents.Open(saveName)
	if err != nil {
		Fatal(err)
	}
	printDocument(doc)
}

func listSaves(app *App) {
	saves, err := app.Documents.ListSaves()
	if err != nil {
		Fatal(err)
	}
	if len(saves) == 0 {
		fmt.Println(RenderMuted("No saves yet (try 'pixelpad new')"))
		return
	}

	for _, s := range saves {
		fmt.Printf("%s  %s  %s\n",
			RenderID(s.Name),
			util.FormatTime(s.ModTime),
			RenderMuted(fmt.Sprintf("%d bytes", s.SizeByte)))
	}
}

func printDocument(doc *model.Document) {
	fmt.Println(TitleBox(fmt.Sprintf("%s (%dx%d)", doc.Name, doc.Width, doc.Height)))

	fmt.Println(RenderBold("Layers (top to bottom):"))
	for _, l := range doc.Layers {
		marker := " "
		if l.ID == doc.ActiveLayerID {
			marker = "*"
		}
		visibility := "visible"
		if !l.Visible {
			visibility = "hidden"
		}
		fmt.Printf("  %s %s %s\n", marker, l.Name, RenderMuted(visibility))
	}

	fmt.Println(RenderBold("Palette:"))
	for _, e := range doc.Palette.View(doc.Color.SortOrder) {
		selected := " "
		if e.ID == doc.Color.SelectedEntryID {
			selected = "*"
		}
		fmt.Printf("  %s %s %s %s\n", selected, ColorSwatch(e.Color.Hex()), e.Color.Hex(), RenderMuted(e.Name))
	}

	if doc.Color.CurrentColor != nil {
		fmt.Printf("%s %s %s\n", RenderBold("Current color:"),
			ColorSwatch(doc.Color.CurrentColor.Hex()), doc.Color.CurrentColor.Hex())
	} else {
		fmt.Printf("%s %s\n", RenderBold("Current color:"), RenderMuted("none"))
	}
	fmt.Printf("%s %s\n", RenderBold("Palette sort:"), string(doc.Color.SortOrder))
}
