package cli

import (
	"fmt"
	"os"

	"github.com/amterp/ra"
	"github.com/pixelpad/pixelpad/internal/config"
	"github.com/pixelpad/pixelpad/internal/service"
)

func registerInit(parent *ra.Cmd, ctx *CommandContext) {
	cmd := ra.NewCmd("init")
	cmd.SetDescription("Initialize a pixelpad workspace in the current directory")

	ctx.InitUsed, _ = parent.RegisterCmd(cmd)
}

func runInit() {
	cwd, err := os.Getwd()
	if err != nil {
		Fatal(err)
	}

	paths := config.NewPaths(cwd)
	if err := service.NewInitService(paths).Initialize(); err != nil {
		Fatal(err)
	}

	fmt.Println("Initialized pixelpad workspace in current directory")
}
