package main

import (
	"flag"
	"fmt"
	"os"

	"render-core/internal/commands"
)

func main() {
	reg := commands.NewRegistry()
	registerGen(reg, os.Stdout)
	registerCounts(reg, os.Stdout)
	registerManifest(reg, os.Stdout)
	registerShaders(reg, os.Stdout)

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: meshgen <command> [flags]")
		reg.Usage(os.Stderr)
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if err := reg.Execute(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, "meshgen:", err)
		os.Exit(1)
	}
}
