// Package opener hands URIs to the operating system's default handler.
package opener

import (
	"fmt"

	"github.com/chorehq/chore/internal/core/ports"
	"github.com/pkg/browser"
	"go.trai.ch/zerr"
)

// Opener implements ports.Opener via the platform browser/handler dispatch.
type Opener struct {
	logger ports.Logger
}

// NewOpener creates a new Opener.
func NewOpener(logger ports.Logger) *Opener {
	return &Opener{logger: logger}
}

// Open dispatches the URI to the default handler.
func (o *Opener) Open(uri string) error {
	o.logger.Info(fmt.Sprintf("opening %s", uri))
	if err := browser.OpenURL(uri); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open URI"), "uri", uri)
	}
	return nil
}
