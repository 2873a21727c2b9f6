//go:build js && wasm

// Command wasm exposes the diff and patch engines to the browser for
// the live diff page. The page calls diffStrings(a, b) as the user
// types and renders the returned HTML into the output pane;
// applyPatch(patchText, target) drives the patch demo.
package main

import (
	"syscall/js"

	"github.com/patchlive/patchlive/diff"
)

func diffStrings() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) != 2 {
			return map[string]any{"error": "diffStrings expects two arguments"}
		}
		dmp := diff.New()
		diffs := dmp.DiffMain(args[0].String(), args[1].String(), true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		diffs = dmp.DiffCleanupEfficiency(diffs)
		return map[string]any{
			"html":  diff.DiffPrettyHtml(diffs),
			"delta": dmp.DiffToDelta(diffs),
		}
	})
}

func applyPatch() js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) != 2 {
			return map[string]any{"error": "applyPatch expects two arguments"}
		}
		dmp := diff.New()
		patches, err := dmp.PatchFromText(args[0].String())
		if err != nil {
			return map[string]any{"error": err.Error()}
		}
		patched, applied := dmp.PatchApply(patches, args[1].String())
		ok := make([]any, len(applied))
		for i, a := range applied {
			ok[i] = a
		}
		return map[string]any{
			"text":    patched,
			"applied": ok,
		}
	})
}

func main() {
	js.Global().Set("diffStrings", diffStrings())
	js.Global().Set("applyPatch", applyPatch())
	// Keep the wasm module alive for callbacks.
	<-make(chan struct{})
}
