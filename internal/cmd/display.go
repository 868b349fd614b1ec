package cmd

import (
	"fmt"

	"github.com/pterm/pterm"

	"github.com/fabianreyesmn/pygframe/internal/context"
)

// Shared styles and printers for run status output.
var (
	successColorFG = pterm.FgLightGreen
	errorColorFG   = pterm.FgLightRed
	warnColorFG    = pterm.FgLightYellow

	successPrinter = pterm.PrefixPrinter{
		Prefix: pterm.Prefix{
			Text:  " DONE ",
			Style: pterm.NewStyle(pterm.BgGreen, pterm.FgBlack),
		},
		MessageStyle: pterm.NewStyle(pterm.FgLightGreen),
	}

	failPrinter = pterm.PrefixPrinter{
		Prefix: pterm.Prefix{
			Text:  " FAIL ",
			Style: pterm.NewStyle(pterm.BgRed, pterm.FgWhite),
		},
		MessageStyle: pterm.NewStyle(pterm.FgLightRed),
	}
)

// ReportResult prints a one-line run summary with colored error and
// warning counts.
func ReportResult(ctx *context.CompilerContext) {
	errCount := ctx.Diagnostics.ErrorCount()
	warnCount := ctx.Diagnostics.WarningCount()

	errColor := successColorFG
	if errCount > 0 {
		errColor = errorColorFG
	}
	warnColor := successColorFG
	if warnCount > 0 {
		warnColor = warnColorFG
	}

	summary := fmt.Sprintf("%s errors, %s warnings",
		errColor.Sprint(errCount), warnColor.Sprint(warnCount))

	if errCount > 0 {
		failPrinter.Printf("Analysis failed (%s)\n", summary)
	} else {
		successPrinter.Printf("Analysis succeeded (%s)\n", summary)
	}
}
