package surface

import (
	"github.com/atotto/clipboard"
)

// SystemClipboard writes to the OS clipboard
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// SystemClipboardAvailable reports whether a clipboard utility was found
func SystemClipboardAvailable() bool {
	return !clipboard.Unsupported
}
