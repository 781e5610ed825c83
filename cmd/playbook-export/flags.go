package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// assetIndexSentinel detects if --asset was explicitly set.
// Since 0 is a valid stack index, we use a negative sentinel.
const assetIndexSentinel = -1

// commonFlags holds flags shared across operations.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// operationFlags selects which export runs. At most one of the
// operation selectors may be active; none means the full package.
type operationFlags struct {
	section  string
	offer    string
	asset    int
	bundle   bool
	full     bool
	pkg      bool
	listDocs bool
}

// exportFlags holds all flags for the playbook-export CLI.
type exportFlags struct {
	common      commonFlags
	operation   operationFlags
	contextPath string
	output      string
	workers     int
	showVersion bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addOperationFlags adds operation selector flags to a FlagSet.
func addOperationFlags(fs *flag.FlagSet, f *operationFlags) {
	fs.StringVarP(&f.section, "section", "s", "", "export one section: guide, diagnosis, money-model, marketing-model, sales-funnel, operations-plan, kpi-dashboard, accountability-tracker")
	fs.StringVar(&f.offer, "offer", "", "offer selector: one, two, downsell")
	fs.IntVar(&f.asset, "asset", assetIndexSentinel, "export one asset by stack index (requires --offer)")
	fs.BoolVar(&f.bundle, "bundle", false, "export an offer's full asset pack (requires --offer)")
	fs.BoolVar(&f.full, "full", false, "export the whole playbook as one PDF")
	fs.BoolVarP(&f.pkg, "package", "P", false, "export the complete ZIP package (default)")
	fs.BoolVar(&f.listDocs, "list", false, "list package documents without exporting")
}

// parseFlags parses CLI flags and returns positional args.
func parseFlags(args []string) (*exportFlags, []string, error) {
	fs := flag.NewFlagSet("playbook-export", flag.ContinueOnError)
	f := &exportFlags{}

	fs.StringVar(&f.contextPath, "context", "", "business context YAML file")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for multiple playbooks (0 = auto)")
	fs.BoolVar(&f.showVersion, "version", false, "show version and exit")

	addCommonFlags(fs, &f.common)
	addOperationFlags(fs, &f.operation)

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
