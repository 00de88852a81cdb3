package utils

import (
	"context"
	"fmt"
	"io"
	"os"

	"followback/internal/configutils"
	"followback/internal/errcodes"
	"followback/internal/logutils"
	"followback/internal/systemcodes"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/fatih/color"
	"github.com/pkg/errors"
)

var exit = os.Exit

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled),
		errors.Is(err, terminal.InterruptErr),
		errcodes.KindOf(err) == errcodes.Canceled:
		return systemcodes.ErrorCodeInterrupted
	case errcodes.KindOf(err) == errcodes.AuthRequired,
		errcodes.KindOf(err) == errcodes.AuthRejected:
		return systemcodes.ErrorCodeAuth
	case errors.Is(err, configutils.ErrInvalidConfig),
		errors.Is(err, configutils.ErrConfigFileIsDir),
		errors.Is(err, configutils.ErrHomeDirNotFound),
		errors.Is(err, logutils.ErrUnknownLevel):
		return systemcodes.ErrorCodeConfig
	}

	return systemcodes.ErrorCodeGeneric
}

// Exit reports err on w and terminates with the matching exit code.
func Exit(w io.Writer, err error) {
	fmt.Fprintln(w, color.RedString("[-] %s", err))
	exit(ExitCode(err))
}

// PromptMultiSelect asks the operator to pick any of options.
var PromptMultiSelect = func(message string, options []string) ([]string, error) {
	answers := []string{}
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	err := survey.AskOne(prompt, &answers)

	return answers, err
}

var PromptConfirm = func(message string) (bool, error) {
	ok := false
	err := survey.AskOne(&survey.Confirm{Message: message}, &ok)

	return ok, err
}
