// Command layercheck assesses a layered security control checklist against
// the artifacts present in a repository tree, merges external audit tool
// findings, and renders compliance reports and dashboards.
//
// Subcommands:
//
//	assess     run the assessment and write the text and JSON reports
//	dashboard  run the assessment plus external audits and write the
//	           HTML dashboard and its JSON data file
//	export     write the assessment in a chosen format (csv, sqlite, ...)
//	tui        browse assessment results interactively
//	doctor     check the environment before running an assessment
//	init       create a layercheck configuration interactively
//	version    print version information
package main

func main() {
	Execute()
}
