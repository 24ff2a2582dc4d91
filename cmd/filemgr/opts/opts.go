package opts

import (
	"github.com/walteh/filemgr/pkg/config"
	"github.com/walteh/filemgr/pkg/log"
	"github.com/walteh/filemgr/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// ErrReported marks a command failure whose details were already printed
var ErrReported = errors.Base("failure already reported")

// RootOpts contains shared options used by all commands. It is filled in
// once flags are parsed, before any command runs.
type RootOpts struct {
	Config *config.Config
	Runner *operation.Runner
	Logger *log.Logger
}

// Separator is the word splitting sources from targets
func (o *RootOpts) Separator() string {
	if o.Config == nil {
		return config.Default().Separator
	}
	return o.Config.Separator
}
