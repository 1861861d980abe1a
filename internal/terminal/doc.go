// Package terminal feeds terminal key, mouse and focus events into a
// whatinput tracker and renders the tracked state with tcell.
//
// Terminals report neither touch nor key-up events, so only keyboard and
// mouse methods are ever produced here. Modifier keys are not reported on
// their own either; the ignore set matters only for keys mapped onto the
// modifier codes.
package terminal
