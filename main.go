package main

import (
	"os"

	"github.com/ajadmin/ajadmin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
