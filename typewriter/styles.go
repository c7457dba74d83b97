package typewriter

import (
	"sync/atomic"

	"github.com/drake/typewriter/render"
)

var stylesInjected atomic.Bool

// addStyles installs the default class styles. Tests replace it.
var addStyles = func() {
	render.AddStyles(render.DefaultSheet, render.DefaultStyles())
}

// injectStyles runs addStyles at most once per process.
func injectStyles() {
	if stylesInjected.CompareAndSwap(false, true) {
		addStyles()
	}
}
