package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"modemgate/pkg/anonymize"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <input.json> [output.json]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Anonymizes a captured modem device-state JSON file so it can be")
		fmt.Fprintln(os.Stderr, "shared as a test snapshot. Output defaults to <input>.anonymized.json.")
	}
	flag.Parse()

	if flag.NArg() < 1 || flag.NArg() > 2 {
		flag.Usage()
		os.Exit(2)
	}

	input := flag.Arg(0)
	output := flag.Arg(1)
	if output == "" {
		output = anonymize.OutputPath(input)
	}

	if err := anonymize.File(input, output); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.Printf("Anonymized data written to %s", output)
}
