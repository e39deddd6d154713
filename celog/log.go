// Package celog is a thin leveled-logging wrapper over log4go, used
// throughout the editor the same way the teacher's watch.go and
// view.go call straight into log4go's package-level functions.
package celog

import (
	log4go "github.com/limetext/log4go"
)

func Finest(format string, args ...interface{}) { log4go.Finest(format, args...) }
func Fine(format string, args ...interface{})   { log4go.Fine(format, args...) }
func Debug(format string, args ...interface{})  { log4go.Debug(format, args...) }
func Warn(format string, args ...interface{})   { log4go.Warn(format, args...) }
func Error(format string, args ...interface{})  { log4go.Error(format, args...) }
