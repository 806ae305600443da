// surveysyncd runs the survey synchronization engine for one account and
// exposes its commands and reads over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"surveysync/internal/di"
	"surveysync/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config.yaml", "path to the YAML configuration file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode")
	pflag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "surveysyncd: %v\n", err)
		os.Exit(1)
	}
}
