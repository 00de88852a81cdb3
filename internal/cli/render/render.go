// Package render turns domain results into terminal output.
package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgCyan, color.Bold)
)

func Success(w io.Writer, format string, a ...interface{}) {
	successColor.Fprintf(w, "[+] "+format+"\n", a...)
}

func Failure(w io.Writer, format string, a ...interface{}) {
	failureColor.Fprintf(w, "[-] "+format+"\n", a...)
}

func Warning(w io.Writer, format string, a ...interface{}) {
	warningColor.Fprintf(w, "[!] "+format+"\n", a...)
}

func Info(w io.Writer, format string, a ...interface{}) {
	infoColor.Fprintf(w, "[i] "+format+"\n", a...)
}

func Header(w io.Writer, title string) {
	fmt.Fprintln(w)
	headerColor.Fprintln(w, title)
}
