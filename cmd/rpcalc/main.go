// Package main provides the CLI entry point for rpcalc, an RPN calculator.
//
// Usage:
//
//	rpcalc repl                          # Interactive calculator
//	rpcalc run 5 ENT 3 +                 # Evaluate keys, print X
//	rpcalc run --json 2 ENT 10 Y^X       # Print the final state as JSON
//	rpcalc history convert in.csv out.json
//	rpcalc history show hist.parquet
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/guptarohit/asciigraph"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/doug-101/rpcalc/pkg/calc"
	"github.com/doug-101/rpcalc/pkg/embed"
	"github.com/doug-101/rpcalc/pkg/loader"
	"github.com/doug-101/rpcalc/pkg/options"
	"github.com/doug-101/rpcalc/pkg/repl"
)

var logger = loggo.GetLogger("rpcalc")

// Version info set by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cli holds the flags shared by every subcommand.
type cli struct {
	configPath string
	noSave     bool
	logSpec    string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:           "rpcalc",
		Short:         "rpcalc - RPN calculator with a four register stack",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return errors.Annotate(loggo.ConfigureLoggers(c.logSpec), "--log")
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "", "Options file (default $HOME/"+options.DefaultName+")")
	rootCmd.PersistentFlags().BoolVar(&c.noSave, "no-save", false, "Do not write the options file on exit")
	rootCmd.PersistentFlags().StringVar(&c.logSpec, "log", "<root>=WARNING", "Logging configuration, e.g. rpcalc.calc=DEBUG")

	rootCmd.AddCommand(c.replCmd(), c.runCmd(), c.historyCmd(), versionCmd())
	return rootCmd
}

func (c *cli) optionsPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return options.DefaultPath()
}

// engine builds an engine configured from the options file.
func (c *cli) engine() (*calc.Engine, error) {
	path, err := c.optionsPath()
	if err != nil {
		return nil, err
	}
	opts, err := options.Load(path)
	if err != nil {
		return nil, err
	}
	e := calc.NewEngine(opts.Settings)
	opts.Apply(e)
	return e, nil
}

func (c *cli) save(e *calc.Engine) error {
	if c.noSave {
		return nil
	}
	path, err := c.optionsPath()
	if err != nil {
		return err
	}
	logger.Debugf("writing options to %s", path)
	return options.Save(path, options.Capture(e))
}

func (c *cli) replCmd() *cobra.Command {
	var histPath string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start the interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.engine()
			if err != nil {
				return err
			}
			if histPath != "" {
				entries, err := loader.Load(histPath)
				if err != nil && !os.IsNotExist(errors.Cause(err)) {
					return err
				}
				e.LoadHistory(entries)
			}

			if err := repl.New(e).Start(cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}

			if histPath != "" {
				if err := loader.Save(histPath, e.History()); err != nil {
					return err
				}
			}
			return c.save(e)
		},
	}
	cmd.Flags().StringVar(&histPath, "history", "", "History file to load at start and write on exit")
	return cmd
}

func (c *cli) runCmd() *cobra.Command {
	var (
		asJSON bool
		graph  bool
		strict bool
		save   bool
		base   int
	)
	cmd := &cobra.Command{
		Use:   "run [keys]",
		Short: "Evaluate calculator keys and print X",
		Long: `Evaluate calculator keys and print X.

Keys are separated by spaces; multi-digit numbers such as 12.5 may be written
as one word. Put -- before the keys when any key starts with a dash.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.engine()
			if err != nil {
				return err
			}
			opts := []embed.Option{embed.WithEngine(e), embed.WithBase(base)}
			if strict {
				opts = append(opts, embed.WithStrict())
			}
			result, err := embed.ExecuteWithOptions(strings.Join(args, " "), opts...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return errors.Trace(err)
				}
				fmt.Fprintln(out, string(data))
			} else {
				if len(result.Rejected) > 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), "rejected: %s\n", strings.Join(result.Rejected, " "))
				}
				fmt.Fprintln(out, strings.TrimSpace(result.Display))
			}
			if graph {
				if results := e.HistoryResults(); len(results) > 1 {
					fmt.Fprintln(out, asciigraph.Plot(results, asciigraph.Height(10)))
				}
			}
			if save {
				return c.save(e)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the final state as JSON")
	cmd.Flags().BoolVar(&graph, "graph", false, "Plot the history results")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on the first rejected key")
	cmd.Flags().BoolVar(&save, "save", false, "Write the resulting stack and memory to the options file")
	cmd.Flags().IntVar(&base, "base", 10, "Entry base (2, 8, 10 or 16)")
	return cmd
}

func (c *cli) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and convert history files",
	}

	convertCmd := &cobra.Command{
		Use:   "convert [in] [out]",
		Short: "Convert a history file between CSV, JSON and Parquet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			if err := loader.Save(args[1], entries); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Converted %d entries to %s\n", len(entries), args[1])
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a history file as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"#", "Equation", "Result"})
			for i, h := range entries {
				table.Append([]string{strconv.Itoa(i + 1), h.Equation, strconv.FormatFloat(h.Result, 'g', -1, 64)})
			}
			table.Render()
			return nil
		},
	}

	cmd.AddCommand(convertCmd, showCmd)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rpcalc version %s\n", version)
			if commit != "none" {
				fmt.Fprintf(out, "  commit: %s\n", commit)
			}
			if date != "unknown" {
				fmt.Fprintf(out, "  built:  %s\n", date)
			}
		},
	}
}
