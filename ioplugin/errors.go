package ioplugin

import (
	"fmt"

	"github.com/jhodges10/tlRender/perrors"
)

func newUnsupportedExtensionError(path string) error {
	return perrors.NewOpenError("Registry.Open", fmt.Errorf("no plugin registered for %q", path))
}
