package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"modemgate/pkg/docsis"
)

// snapshot matches the layout the integration tests diff against.
type snapshot struct {
	Metrics  *docsis.Metrics  `json:"metrics"`
	Metadata *docsis.Metadata `json:"device_metadata"`
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <capture.json>\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Parses a captured device-state JSON file and prints the structured")
		fmt.Fprintln(os.Stderr, "metrics, suitable for use as a test snapshot.")
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	metrics, metadata, err := docsis.Parse(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(snapshot{Metrics: metrics, Metadata: metadata}, "", "    ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
