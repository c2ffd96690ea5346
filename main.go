package main

import (
	"os"

	"github.com/anyshake/prisma/cmd"
	"github.com/anyshake/prisma/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
