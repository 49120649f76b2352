//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/soundmark/soundmark/backend-go/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the engine API object
	soundmarkEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	soundmarkEngine.Set("loadDocument", js.FuncOf(loadDocument))
	soundmarkEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	soundmarkEngine.Set("mouseEnter", js.FuncOf(mouseEnter))
	soundmarkEngine.Set("mouseMove", js.FuncOf(mouseMove))
	soundmarkEngine.Set("mouseLeave", js.FuncOf(mouseLeave))
	soundmarkEngine.Set("mouseDown", js.FuncOf(mouseDown))
	soundmarkEngine.Set("mouseUp", js.FuncOf(mouseUp))
	soundmarkEngine.Set("setFrameOffset", js.FuncOf(setFrameOffset))
	soundmarkEngine.Set("setScale", js.FuncOf(setScale))
	soundmarkEngine.Set("resize", js.FuncOf(resize))
	soundmarkEngine.Set("refresh", js.FuncOf(refresh))
	soundmarkEngine.Set("setVisible", js.FuncOf(setVisible))
	soundmarkEngine.Set("setAmplitudeScale", js.FuncOf(setAmplitudeScale))
	soundmarkEngine.Set("addSegment", js.FuncOf(addSegment))
	soundmarkEngine.Set("removeSegment", js.FuncOf(removeSegment))
	soundmarkEngine.Set("updateSegment", js.FuncOf(updateSegment))

	// --- Queries (frontend ← backend) ---
	soundmarkEngine.Set("render", js.FuncOf(render))
	soundmarkEngine.Set("pendingEvents", js.FuncOf(pendingEvents))
	soundmarkEngine.Set("getSegments", js.FuncOf(getSegments))
	soundmarkEngine.Set("getDocument", js.FuncOf(getDocument))
	soundmarkEngine.Set("getAmplitudeScale", js.FuncOf(getAmplitudeScale))

	// Register on global scope
	js.Global().Set("soundmarkEngine", soundmarkEngine)

	// Signal that WASM is ready
	js.Global().Set("soundmarkWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	if err := eng.LoadDocument(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	projectID := "proj_playground"
	if len(args) > 0 && args[0].Type() == js.TypeString {
		projectID = args[0].String()
	}

	eng.LoadSampleDocument(projectID)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func mouseEnter(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.MouseEnter(args[0].Float(), args[1].Float())
	return nil
}

func mouseMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.MouseMove(args[0].Float(), args[1].Float())
	return nil
}

func mouseLeave(this js.Value, args []js.Value) interface{} {
	eng.MouseLeave()
	return nil
}

func mouseDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.MouseDown(args[0].Float(), args[1].Float())
	return nil
}

// mouseUp is bound to the window-level mouseup listener, not the
// canvas, so a drag released outside the view still ends.
func mouseUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	eng.MouseUp(args[0].Float(), args[1].Float())
	return nil
}

func setFrameOffset(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetFrameOffset(args[0].Int())
	return nil
}

func setScale(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	if err := eng.SetScale(args[0].Float()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func resize(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	if err := eng.Resize(args[0].Int(), args[1].Int()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func refresh(this js.Value, args []js.Value) interface{} {
	eng.Refresh()
	return nil
}

func setVisible(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetVisible(args[0].Bool())
	return nil
}

func setAmplitudeScale(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetAmplitudeScale(args[0].Float())
	return nil
}

func addSegment(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing segment JSON"})
	}
	id, err := eng.AddSegment(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "id": id})
}

func removeSegment(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.RemoveSegment(args[0].String())
	return nil
}

func updateSegment(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(map[string]interface{}{"error": "missing arguments"})
	}
	err := eng.UpdateSegment(args[0].String(), args[1].Float(), args[2].Float())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func render(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Render())
}

func pendingEvents(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.PendingEvents())
}

func getSegments(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.Segments())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.GetDocument())
}

func getAmplitudeScale(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(eng.AmplitudeScale())
}
