// asksearch/utils/color/color.go
package color

import (
	"github.com/fatih/color"
)

var (
	promptColor   = color.New(color.FgCyan, color.Bold)
	infoColor     = color.New(color.FgGreen)
	warningColor  = color.New(color.FgYellow, color.Bold)
	errorColor    = color.New(color.FgRed, color.Bold)
	answerColor   = color.New(color.FgHiWhite, color.Bold)
	questionColor = color.New(color.FgHiYellow)
	dimColor      = color.New(color.Faint)
)

func ColorPrompt(s string) string {
	return promptColor.Sprint(s)
}

func ColorInfo(s string) string {
	return infoColor.Sprint(s)
}

func ColorWarning(s string) string {
	return warningColor.Sprint(s)
}

func ColorError(s string) string {
	return errorColor.Sprint(s)
}

func ColorAnswer(s string) string {
	return answerColor.Sprint(s)
}

func ColorQuestion(s string) string {
	return questionColor.Sprint(s)
}

func ColorDim(s string) string {
	return dimColor.Sprint(s)
}

// Disable turns colors off, e.g. when output is not a terminal.
func Disable() {
	color.NoColor = true
}
