// Package snake asks the user to fill in choices a command left open.
package snake

import (
	"errors"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"

	"tableflip.dev/daybook/pkg/datekey"
	"tableflip.dev/daybook/pkg/journal"
)

// Interactive reports whether stdin is a terminal.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type modeChoice struct {
	Mode  journal.Mode
	Short string
}

var modeHelp = map[journal.Mode]string{
	journal.ModeSingle: "only this date",
	journal.ModeGroup:  "every date of the group",
	journal.ModeRange:  "the group within a date range",
}

// SelectDeleteMode lets the user pick one of modes.
func SelectDeleteMode(in io.Reader, out io.Writer, modes []journal.Mode) (journal.Mode, error) {
	if len(modes) == 0 {
		return "", errors.New("no deletion modes to choose from")
	}
	if len(modes) == 1 {
		return modes[0], nil
	}
	choices := make([]modeChoice, 0, len(modes))
	for _, m := range modes {
		choices = append(choices, modeChoice{Mode: m, Short: modeHelp[m]})
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Mode | bold }} {{ .Short | green }}",
		Inactive: "   {{ .Mode }} {{ .Short | cyan }}",
		Selected: "{{ .Mode | bold }}",
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Delete",
		Items:     choices,
		Templates: templates,
		Size:      len(choices),
		Stdin:     io.NopCloser(in),
		Stdout:    nopCloser{out},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return choices[i].Mode, nil
}

// PromptRange asks for a START..END range.
func PromptRange(in io.Reader, out io.Writer, label string) (datekey.Range, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }}: ",
		Valid:   "{{ . | green }}: ",
		Invalid: "{{ . | red }}: ",
		Success: "{{ . | bold }}: ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate: func(input string) error {
			_, err := datekey.ParseRange(input)
			return err
		},
		Stdin:  io.NopCloser(in),
		Stdout: nopCloser{out},
	}
	result, err := prompt.Run()
	if err != nil {
		return datekey.Range{}, err
	}
	return datekey.ParseRange(result)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
