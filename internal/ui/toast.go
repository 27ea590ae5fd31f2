package ui

import "fmt"

// Toaster prints notifications as single colored lines.
type Toaster struct{}

func (Toaster) Success(msg string) { fmt.Fprintf(Out, "  %s %s\n", StatusIcon(true), msg) }
func (Toaster) Error(msg string)   { fmt.Fprintf(Out, "  %s %s\n", StatusIcon(false), Bad.Sprint(msg)) }
func (Toaster) Warning(msg string) { fmt.Fprintf(Out, "  %s %s\n", WarnIcon(), Warn.Sprint(msg)) }
func (Toaster) Info(msg string)    { fmt.Fprintf(Out, "  %s %s\n", Info.Sprint("ℹ"), msg) }
