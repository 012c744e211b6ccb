package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// displaySemanticError displays a single semantic error with its source
// position.
func displaySemanticError(srcPath string, err *SemanticError) {
	ErrorStyleBG.Print("Semantic Error")
	if err.Span != nil {
		fmt.Printf(" %s:%d:%d: ", srcPath, err.Span.StartLine, err.Span.StartCol)
	} else {
		fmt.Printf(" %s: ", srcPath)
	}
	ErrorColorFG.Println(err.Message)
}

// DisplaySyntaxError displays a syntax error raised by the lexer or parser.
func DisplaySyntaxError(srcPath string, err *LocalError) {
	ErrorStyleBG.Print("Syntax Error")
	if err.Span != nil {
		fmt.Printf(" %s:%d:%d: ", srcPath, err.Span.StartLine, err.Span.StartCol)
	} else {
		fmt.Printf(" %s: ", srcPath)
	}
	ErrorColorFG.Println(err.Message)
}

// DisplayInfoMessage prints a tagged informational message to the user.
func DisplayInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// ReportFatal reports a fatal error.  These are expected errors that generally
// result from invalid configuration: unreadable input file, bad profile, etc.
// Compilation stops immediately.
func ReportFatal(message string, args ...interface{}) {
	ErrorStyleBG.Print("Fatal Error")
	ErrorColorFG.Println(" " + fmt.Sprintf(message, args...))
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// phaseSpinner stores the current phase spinner.
var phaseSpinner *pterm.SpinnerPrinter
var currentPhase string
var phaseStartTime time.Time

const maxPhaseLength = len("Generating")

// BeginPhase displays the beginning of a compilation phase.
func BeginPhase(phase string) {
	currentPhase = phase
	phaseText := phase + "..." + strings.Repeat(" ", maxPhaseLength-len(phase)+2)
	phaseSpinner = pterm.DefaultSpinner.WithStyle(pterm.NewStyle(InfoColorFG))

	phaseSpinner.SuccessPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: SuccessStyleBG,
			Text:  "Done",
		},
	}

	phaseSpinner.FailPrinter = &pterm.PrefixPrinter{
		MessageStyle: pterm.NewStyle(pterm.FgDefault),
		Prefix: pterm.Prefix{
			Style: ErrorStyleBG,
			Text:  "Fail",
		},
	}

	phaseSpinner.Start(phaseText)
	phaseStartTime = time.Now()
}

// EndPhase displays the end of a compilation phase.
func EndPhase(success bool) {
	if phaseSpinner != nil {
		if success {
			phaseSpinner.Success(
				currentPhase+strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2),
				fmt.Sprintf("(%.3fs)", time.Since(phaseStartTime).Seconds()),
			)
		} else {
			phaseSpinner.Fail(currentPhase + strings.Repeat(" ", maxPhaseLength-len(currentPhase)+2))
		}

		phaseSpinner = nil
	}
}
