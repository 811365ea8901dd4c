package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander resolves a leading "~" in directory arguments and configured file paths.
// The home directory is looked up once, on first use.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	lookupOnce    sync.Once
	homeDirectory string
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom provider. A nil provider selects os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand replaces "~" or a leading "~/" with the home directory. Other paths, including "~user" forms,
// and every path when the home directory is unknown are returned unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil {
		return candidatePath
	}

	remainder, hasShortcut := strings.CutPrefix(candidatePath, homeShortcutConstant)
	if !hasShortcut {
		return candidatePath
	}
	if len(remainder) > 0 && !isPathSeparator(remainder[0]) {
		return candidatePath
	}

	homeDirectory := expander.home()
	if len(homeDirectory) == 0 {
		return candidatePath
	}
	if len(remainder) == 0 {
		return homeDirectory
	}
	return filepath.Join(homeDirectory, remainder[1:])
}

func (expander *HomeExpander) home() string {
	expander.lookupOnce.Do(func() {
		homeDirectory, lookupError := expander.provider()
		if lookupError == nil {
			expander.homeDirectory = homeDirectory
		}
	})
	return expander.homeDirectory
}

func isPathSeparator(character byte) bool {
	return character == '/' || character == os.PathSeparator
}
