package tools

import (
	"github.com/golang/glog"
)

var isEnabled = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

// Logs progress messages unless the logger has been silenced. Warnings and errors go straight to glog.
func LogOutput(val ...interface{}) {
	if isEnabled {
		glog.InfoDepth(1, val...)
	}
}
