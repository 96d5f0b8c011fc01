package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/neex/multidict"
)

func main() {
	var (
		// root options
		csvLog  string
		noColor bool
		// query subcommand options
		overlay []string
		getKey  string
		listKey string
		// headers subcommand options
		defaultsFile string
		section      string
		setHeaders   []string
		removeNames  []string
		removeCount  int
		requestID    bool
		format       string
	)

	queryCmd := &cobra.Command{
		Use:     "query [key=value [key=value...]]",
		Short:   "build a multi-valued map and look keys up",
		Example: "query a=1 a=2 b=3 --overlay a=9 --list a",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := parseItems(args)
			if err != nil {
				return err
			}
			over, err := parseItems(overlay)
			if err != nil {
				return err
			}
			view := multidict.NewMergedView(base, over)

			csvWriter, err := openCSV(csvLog)
			if err != nil {
				return err
			}
			if csvWriter != nil {
				defer func() {
					_ = csvWriter.Close()
				}()
			}
			return printQuery(os.Stdout, csvWriter, view, getKey, listKey)
		},
	}

	headersCmd := &cobra.Command{
		Use:     "headers [header [header...]]",
		Short:   "build a header list and render it",
		Example: "headers \"Content-Type: text/html\" --set \"content-type: text/plain\" --format hpack",
		RunE: func(cmd *cobra.Command, args []string) error {
			var defaults multidict.Headers
			if defaultsFile != "" {
				var err error
				defaults, err = multidict.LoadDefaults(defaultsFile, section)
				if err != nil {
					return err
				}
			}
			l, err := buildHeaderList(defaults, args, setHeaders, removeNames, removeCount)
			if err != nil {
				return err
			}
			if requestID {
				l.Set("X-Request-Id", uuid.NewString())
			}

			csvWriter, err := openCSV(csvLog)
			if err != nil {
				return err
			}
			if csvWriter != nil {
				defer func() {
					_ = csvWriter.Close()
				}()
			}
			return printHeaders(os.Stdout, csvWriter, l.Get(""), format)
		},
	}

	var rootCmd = &cobra.Command{
		Use: "multidict",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&csvLog, "csv", "", "also write the result into this csv file")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	queryCmd.Flags().StringArrayVar(&overlay, "overlay", nil, "key=value pair of a second, lower-priority source (repeatable)")
	queryCmd.Flags().StringVar(&getKey, "get", "", "print the value the merged view resolves for this key")
	queryCmd.Flags().StringVar(&listKey, "list", "", "print every value the merged view resolves for this key")

	headersCmd.Flags().StringVar(&defaultsFile, "defaults", "", "ini file with default headers")
	headersCmd.Flags().StringVar(&section, "section", "headers", "ini section holding the default headers")
	headersCmd.Flags().StringArrayVar(&setHeaders, "set", nil, "replace all headers of this name (repeatable)")
	headersCmd.Flags().StringArrayVar(&removeNames, "remove", nil, "remove headers of this name (repeatable)")
	headersCmd.Flags().IntVar(&removeCount, "count", -1, "how many headers --remove deletes per name (-1 means all)")
	headersCmd.Flags().BoolVar(&requestID, "request-id", false, "set a random X-Request-Id header")
	headersCmd.Flags().StringVar(&format, "format", "text", "output format: text, hpack or qpack")

	rootCmd.AddCommand(queryCmd, headersCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func unquoteArg(s string) string {
	if decoded, err := strconv.Unquote(`"` + s + `"`); err == nil {
		return decoded
	}
	return s
}

func openCSV(filename string) (*CSVLogWriter, error) {
	if filename == "" {
		return nil, nil
	}
	w, err := NewCSVLogWriter(filename)
	if err != nil {
		return nil, fmt.Errorf("open csv log: %w", err)
	}
	return w, nil
}
