package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: playbook-export [flags] <playbook.yaml> [more playbooks...]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export an AI-generated business playbook to PDF documents.")
	fmt.Fprintln(w, "Without an operation flag, the complete ZIP package is exported.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Operations (choose at most one):")
	fmt.Fprintln(w, "  -P, --package             Export the complete ZIP package (default)")
	fmt.Fprintln(w, "  -s, --section <id>        Export one section: guide, diagnosis, money-model,")
	fmt.Fprintln(w, "                            marketing-model, sales-funnel, operations-plan,")
	fmt.Fprintln(w, "                            kpi-dashboard, accountability-tracker")
	fmt.Fprintln(w, "      --offer <sel>         Export an offer document: one, two, downsell")
	fmt.Fprintln(w, "      --asset <n>           Export one asset by stack index (with --offer)")
	fmt.Fprintln(w, "      --bundle              Export an offer's full asset pack (with --offer)")
	fmt.Fprintln(w, "      --full                Export the whole playbook as one PDF")
	fmt.Fprintln(w, "      --list                List package documents without exporting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "      --context <path>      Business context YAML (needed to generate assets)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: current directory)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for multiple playbooks (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "      --version             Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The generator API key is read from the environment variable named by")
	fmt.Fprintln(w, "generator.apiKeyEnv in the config (default: OPENAI_API_KEY).")
}
