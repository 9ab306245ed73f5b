package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophershop/internal/admin"
	"github.com/dmitrijs2005/gophershop/internal/buildinfo"
)

func main() {
	cmd := admin.NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.BuildVersion, buildinfo.BuildCommit, buildinfo.BuildDate)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
