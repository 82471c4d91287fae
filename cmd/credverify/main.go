package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var code int
	switch os.Args[1] {
	case "verify":
		code = runVerify(os.Args[2:])
	case "scan":
		code = runScan(os.Args[2:])
	default:
		usage()
		code = 1
	}
	os.Exit(code)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: credverify <verify|scan> [flags]")
	fmt.Fprintln(os.Stderr, "  verify  run the verification engine over an extraction result and a registry snapshot")
	fmt.Fprintln(os.Stderr, "  scan    extract fields and forgery signals from raw document text")
}
