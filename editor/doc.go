// Package editor holds the editable state of an ad creative and re-renders
// it on every change.
//
// State changes only through [Reduce], a pure function of the current
// [State] and an [Action]. A [Shell] owns a State, a surface and a
// renderer; each Dispatch reduces and then redraws the whole layer stack.
package editor
