// Package repl provides an interactive read-eval-print loop around the
// calculator engine.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/olekukonko/tablewriter"

	"github.com/doug-101/rpcalc/pkg/calc"
	"github.com/doug-101/rpcalc/pkg/embed"
	"github.com/doug-101/rpcalc/pkg/loader"
)

var logger = loggo.GetLogger("rpcalc.repl")

const prompt = "rpcalc> "

// REPL provides an interactive Read-Eval-Print Loop.
type REPL struct {
	engine *calc.Engine
	done   bool
}

// New creates a REPL driving e. A nil engine gets a fresh one with default
// settings.
func New(e *calc.Engine) *REPL {
	if e == nil {
		e = calc.NewEngine(calc.DefaultSettings())
	}
	return &REPL{engine: e}
}

// Engine returns the engine the REPL drives.
func (r *REPL) Engine() *calc.Engine {
	return r.engine
}

// Start runs the loop until quit or end of input.
func (r *REPL) Start(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	fmt.Fprintln(out, "rpcalc - RPN calculator")
	fmt.Fprintln(out, "Type 'help' for available commands, 'quit' to exit")
	fmt.Fprintln(out)

	for !r.done {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if handled := r.handleCommand(line, out); handled {
			continue
		}
		r.eval(line, out)
	}
	return errors.Trace(scanner.Err())
}

func (r *REPL) handleCommand(line string, out io.Writer) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case "quit", "exit", "q":
		fmt.Fprintln(out, "Goodbye!")
		r.done = true

	case "help", "h", "?":
		r.printHelp(out)

	case "stack":
		r.printStack(out)

	case "mem":
		r.printMemory(out)

	case "hist":
		r.printHistory(out)

	case "graph":
		r.plotHistory(out)

	case "alt":
		r.printAltBases(out)

	case "settings":
		r.printSettings(out)

	case "base":
		if len(parts) < 2 {
			fmt.Fprintf(out, "Current base: %d\n", r.engine.Base())
			break
		}
		base, err := strconv.Atoi(parts[1])
		if err == nil {
			err = r.engine.SetBase(base)
		}
		if err != nil {
			fmt.Fprintln(out, "Unknown base. Use 2, 8, 10 or 16")
			break
		}
		fmt.Fprintf(out, "Switched to base %d\n", base)
		r.printDisplay(out)

	case "set":
		if len(parts) < 3 {
			fmt.Fprintln(out, "Usage: set <option> <value>")
			break
		}
		if err := r.set(parts[1], parts[2]); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			break
		}
		r.printDisplay(out)

	case "paste":
		r.engine.Paste(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "paste")))
		r.printDisplay(out)

	case "save":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: save <path.csv|path.json|path.parquet>")
			break
		}
		if err := loader.Save(parts[1], r.engine.History()); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			break
		}
		fmt.Fprintf(out, "Saved %d history entries to %s\n", len(r.engine.History()), parts[1])

	case "load":
		if len(parts) < 2 {
			fmt.Fprintln(out, "Usage: load <path.csv|path.json|path.parquet>")
			break
		}
		entries, err := loader.Load(parts[1])
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			break
		}
		r.engine.LoadHistory(entries)
		fmt.Fprintf(out, "Loaded %d history entries from %s\n", len(r.engine.History()), parts[1])

	default:
		return false
	}
	return true
}

func (r *REPL) eval(input string, out io.Writer) {
	logger.Tracef("eval %q", input)
	var rejected []string
	for _, tok := range embed.Tokenize(input) {
		if !r.engine.Cmd(tok) {
			rejected = append(rejected, tok)
		}
	}
	if len(rejected) > 0 {
		fmt.Fprintf(out, "Rejected: %s\n", strings.Join(rejected, " "))
	}
	r.printDisplay(out)
}

// set changes one setting by its short name.
func (r *REPL) set(name, value string) error {
	s := r.engine.Settings()
	var err error
	switch name {
	case "places":
		s.DecimalPlaces, err = strconv.Atoi(value)
	case "sci":
		s.ForceSci, err = strconv.ParseBool(value)
	case "eng":
		s.UseEng, err = strconv.ParseBool(value)
	case "sep":
		s.ThousandsSeparator, err = strconv.ParseBool(value)
	case "trim":
		s.TrimExponents, err = strconv.ParseBool(value)
	case "twos":
		s.UseTwosComplement, err = strconv.ParseBool(value)
	case "bits":
		s.AltBaseBits, err = strconv.Atoi(value)
	case "histmax":
		s.MaxHistLength, err = strconv.Atoi(value)
	case "savestacks":
		s.SaveStacks, err = strconv.ParseBool(value)
	case "angle":
		s.AngleUnit, err = calc.ParseAngleUnit(value)
	default:
		return errors.NotFoundf("option %q", name)
	}
	if err != nil {
		return errors.Annotatef(err, "option %s", name)
	}
	r.engine.SetSettings(s)
	return nil
}

func (r *REPL) printDisplay(out io.Writer) {
	fmt.Fprintf(out, "=> %s\n", r.engine.Display())
}

func (r *REPL) printStack(out io.Writer) {
	regs := r.engine.RegisterStrings()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Reg", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.Append([]string{"T", regs[2]})
	table.Append([]string{"Z", regs[1]})
	table.Append([]string{"Y", regs[0]})
	table.Append([]string{"X", r.engine.Display()})
	table.Render()
}

func (r *REPL) printMemory(out io.Writer) {
	mem := r.engine.Memory()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Slot", "Value"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, v := range mem {
		table.Append([]string{strconv.Itoa(i), r.engine.Format(v)})
	}
	table.Render()
}

func (r *REPL) printHistory(out io.Writer) {
	hist := r.engine.History()
	if len(hist) == 0 {
		fmt.Fprintln(out, "No history")
		return
	}
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Equation", "Result"})
	for i, h := range hist {
		table.Append([]string{strconv.Itoa(i + 1), h.Equation, r.engine.Format(h.Result)})
	}
	table.Render()
}

func (r *REPL) plotHistory(out io.Writer) {
	results := r.engine.HistoryResults()
	if len(results) < 2 {
		fmt.Fprintln(out, "Not enough history to plot")
		return
	}
	fmt.Fprintln(out, asciigraph.Plot(results,
		asciigraph.Height(10),
		asciigraph.Caption(fmt.Sprintf("last %d results", len(results)))))
}

func (r *REPL) printAltBases(out io.Writer) {
	alt := r.engine.AltBaseStrings()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Base", "Value"})
	table.Append([]string{"hex", alt.Hex})
	table.Append([]string{"oct", alt.Octal})
	table.Append([]string{"bin", alt.Binary})
	table.Append([]string{"dec", alt.Decimal})
	table.Render()
}

func (r *REPL) printSettings(out io.Writer) {
	s := r.engine.Settings()
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Option", "Value"})
	table.AppendBulk([][]string{
		{"places", strconv.Itoa(s.DecimalPlaces)},
		{"sci", strconv.FormatBool(s.ForceSci)},
		{"eng", strconv.FormatBool(s.UseEng)},
		{"sep", strconv.FormatBool(s.ThousandsSeparator)},
		{"trim", strconv.FormatBool(s.TrimExponents)},
		{"angle", string(s.AngleUnit)},
		{"bits", strconv.Itoa(s.AltBaseBits)},
		{"twos", strconv.FormatBool(s.UseTwosComplement)},
		{"histmax", strconv.Itoa(s.MaxHistLength)},
		{"savestacks", strconv.FormatBool(s.SaveStacks)},
	})
	table.Render()
}

func (r *REPL) printHelp(out io.Writer) {
	help := `
rpcalc REPL Commands:
  help, h, ?        Show this help message
  quit, exit, q     Exit the REPL
  stack             Show the X, Y, Z and T registers
  mem               Show the memory slots
  hist              Show the equation history
  graph             Plot the history results
  alt               Show X in hex, octal, binary and decimal
  base [2|8|10|16]  Show or set the entry base
  settings          Show the options
  set <opt> <val>   Change an option (places, sci, eng, sep, trim,
                    angle, bits, twos, histmax, savestacks)
  paste <text>      Push a number, ignoring separators
  save <path>       Write the history (.csv, .json, .parquet)
  load <path>       Read the history (.csv, .json, .parquet)

Anything else is read as calculator keys, separated by spaces:
  5 ENT 3 +         => 8
  2 X^2 PI *        area of a circle of radius 2
  42 STO 1          store X in memory slot 1
  12.5 is read as the keys 1 2 . 5

Keys:
  0-9 A-F .  + - * /  ENT EXP CHS <- CLR X<>Y R< R> PI
  STO RCL PLCS SCI DEG  X^2 Y^X XRT RCIP E^X TN^X
  SQRT SIN COS TAN ASIN ACOS ATAN LN LOG
`
	fmt.Fprint(out, help)
}
