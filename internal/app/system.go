package app

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/sqweek/dialog"
)

type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) {
	s, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("clipboard read: %w", err)
	}
	return s, nil
}

func (systemClipboard) WriteText(s string) error {
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

type nativeDialogs struct{}

func (nativeDialogs) Confirm(title, message string) bool {
	return dialog.Message("%s", message).Title(title).YesNo()
}

// SaveFile returns "" without an error when the user cancels.
func (nativeDialogs) SaveFile(title, defaultName string) (string, error) {
	path, err := dialog.File().Filter("PNG image", "png").Title(title).SetStartFile(defaultName).Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
