package main

import (
	"github.com/packwiz/clientpack/cmd"

	// Modules of clientpack
	_ "github.com/packwiz/clientpack/migrate"
	_ "github.com/packwiz/clientpack/modrinth"
	_ "github.com/packwiz/clientpack/utils"
)

func main() {
	cmd.Execute()
}
