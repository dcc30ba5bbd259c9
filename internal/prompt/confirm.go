package prompt

import (
	"errors"
	"fmt"

	"github.com/conn-castle/gradebook/internal/command"
	"github.com/conn-castle/gradebook/internal/export"
	"github.com/conn-castle/gradebook/internal/messages"
)

// Confirmer adapts ui to command.Confirmer. A cancelled prompt counts as "no".
func Confirmer(ui UI) command.Confirmer {
	return command.ConfirmFunc(func(prompt string) (bool, error) {
		return confirm(ui, prompt)
	})
}

// Overwrite adapts ui to export.OverwriteFunc. The diff preview, when present,
// is shown as a note before the question.
func Overwrite(ui UI) export.OverwriteFunc {
	return func(path string, preview string) (bool, error) {
		if preview != "" {
			if err := ui.Note(messages.SetupReviewTitle, preview); err != nil {
				if errors.Is(err, ErrCancelled) {
					return false, nil
				}
				return false, err
			}
		}
		return confirm(ui, fmt.Sprintf(messages.PromptOverwriteTitleFmt, path))
	}
}

func confirm(ui UI, title string) (bool, error) {
	var ok bool
	if err := ui.Confirm(title, &ok); err != nil {
		if errors.Is(err, ErrCancelled) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
