package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/otcodec"
	"github.com/npillmayer/otcodec/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.opentype": "Info",
		"trace.font.otquery":  "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)    // will set the correct level later
	pterm.Info.Println("Welcome to OpenType CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "ot > ",
		AutoComplete: completer(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func completer() *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(opNames))
	for _, name := range opNames {
		items = append(items, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(items...)
}

// Intp is our interpreter object
type Intp struct {
	font  *ot.Font
	repl  *readline.Instance
	tag   ot.Tag      // current table, 0 if none
	table ot.FontData // data of current table
}

func (intp *Intp) String() string {
	if intp == nil || intp.tag == 0 {
		return "()"
	}
	return fmt.Sprintf("( table=%s, %d bytes )", intp.tag, intp.table.Len())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	TABLES
	TABLE
	HEAD
	MAXP
	NAMES
	POST
	PALETTES
	AXES
	COVERAGE
	CLASSDEF
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"tables":   TABLES,
	"table":    TABLE,
	"head":     HEAD,
	"maxp":     MAXP,
	"names":    NAMES,
	"post":     POST,
	"palettes": PALETTES,
	"axes":     AXES,
	"coverage": COVERAGE,
	"classdef": CLASSDEF,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"table",
	"head",
	"maxp",
	"names",
	"post",
	"palettes",
	"axes",
	"coverage",
	"classdef",
}

// takesArg lists the op-codes which require an argument.
var takesArg = map[int]bool{
	TABLE:    true,
	COVERAGE: true,
	CLASSDEF: true,
}

var errTooManySteps = errors.New("too many steps in command")

// parseCommand splits a command line into steps. A step is either
// "op:arg:format" or, for commands requiring an argument, "op arg".
func parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	n := 0
	for _, step := range steps {
		c := strings.Split(step, ":") // e.g.  "table:GPOS" or "coverage:0x1a" or "help:coverage"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			if n > 0 && takesArg[command.op[n-1].code] && command.op[n-1].arg == "" {
				command.op[n-1].arg = step
				continue
			}
			tracer().Infof("unknown command %q", c[0])
			code = HELP
		}
		if n == len(command.op) {
			return nil, errTooManySteps
		}
		command.op[n].code = code
		command.op[n].arg = getOptArg(c, 1)
		command.op[n].format = getOptArg(c, 2)
		n++
		if code == QUIT {
			break
		}
	}
	command.count = n
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	TABLES:   tablesOp,
	TABLE:    tableOp,
	HEAD:     headOp,
	MAXP:     maxpOp,
	NAMES:    namesOp,
	POST:     postOp,
	PALETTES: palettesOp,
	AXES:     axesOp,
	COVERAGE: coverageOp,
	CLASSDEF: classDefOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op[:cmd.count] {
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) (err error) {
	if fontname == "" {
		return errors.New("no font given, use flag -font")
	}
	if intp.font, err = otcodec.LoadFile(fontname); err != nil {
		return err
	}
	family, subfamily := otcodec.FamilyName(intp.font)
	tracer().Infof("loaded font %s %s", family, subfamily)
	pterm.Printf("font tables: %v\n", intp.font.TableTags())
	for _, w := range intp.font.Warnings() {
		pterm.Warning.Println(w)
	}
	return nil
}

// ----------------------------------------------------------------------

var ErrNoTable = errors.New("no table set")

func (intp *Intp) checkTable() error {
	if intp.tag == 0 {
		return ErrNoTable
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
