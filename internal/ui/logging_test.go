package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "Average temperature: %.1f"
	a := 46.0
	Debug(msg, a)
	// Output:
	// DEBUG: Average temperature: 46.0
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Setting fan PWM to %d"
	a := 84
	Info(msg, a)
	// Output:
	// INFO: Setting fan PWM to 84
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}
