//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/objtool/api"
)

func assembleObj(this js.Value, args []js.Value) any {
	if len(args) < 5 {
		return js.ValueOf("missing fragments (header, v, vn, vt, f)")
	}
	frags := make([][]byte, 5)
	for i := range frags {
		frags[i] = []byte(args[i].String())
	}
	out := api.AssembleOBJ(frags[0], frags[1], frags[2], frags[3], frags[4])
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func assembleObjFromObject(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing fragments object")
	}
	fragsObj := args[0]
	frags := map[string][]byte{}
	keys := js.Global().Get("Object").Call("keys", fragsObj)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		frags[k] = []byte(fragsObj.Get(k).String())
	}
	out, err := api.AssembleOBJFromMap(frags)
	if err != nil {
		return js.ValueOf(err.Error())
	}
	uint8arr := js.Global().Get("Uint8Array").New(len(out))
	js.CopyBytesToJS(uint8arr, out)
	return uint8arr
}

func digestObj(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing obj bytes")
	}
	buf := make([]byte, args[0].Get("length").Int())
	js.CopyBytesToGo(buf, args[0])
	return js.ValueOf(api.DigestOBJ(buf))
}

func main() {
	js.Global().Set("assembleObj", js.FuncOf(assembleObj))
	js.Global().Set("assembleObjFromObject", js.FuncOf(assembleObjFromObject))
	js.Global().Set("digestObj", js.FuncOf(digestObj))
	select {}
}
