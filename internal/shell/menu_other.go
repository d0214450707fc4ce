//go:build !windows

package shell

import (
	"colonnade/internal/errors"
)

// unsupportedMenu is the capability gap: this host has no shell
// extension API to enumerate, so Platform requests fail as Unsupported
// instead of being compiled away.
type unsupportedMenu struct{}

func newMenuProvider() MenuProvider {
	return unsupportedMenu{}
}

func (unsupportedMenu) Entries(path string) ([]MenuEntry, error) {
	return nil, errors.NewActionError("context menu not available on this platform", Platform.String(), errors.Unsupported, nil)
}

func (unsupportedMenu) Invoke(path, id string) error {
	return errors.NewActionError("context menu not available on this platform", Platform.String(), errors.Unsupported, nil)
}
