package util

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/ui"
)

func ShowAction(u ui.UI, act *action.Action) {
	u.Section("action")
	rows := [][2]string{
		{"Contract", act.ContractAddress},
		{"Function", act.FunctionSignature},
		{"Selector", act.Calldata[:10]},
	}
	if act.Value != nil {
		rows = append(rows, [2]string{"Value", fmt.Sprintf("%s wei (%s)", act.Value, action.FormatValue(act.Value))})
	}
	u.KeyValue(rows)
	for _, w := range act.Warnings {
		u.Warn("warning: %s", w)
	}
	u.Info("")
	u.Info("%s", u.Style(ui.Styled{Text: act.Calldata, Severity: ui.SeverityEmphasis}))
}

func ShowDecoded(u ui.UI, call *action.DecodedCall) {
	u.Section("decoded call")
	u.KeyValue([][2]string{
		{"Function", call.Signature},
		{"Selector", call.Selector},
	})
	rows := make([][]string, len(call.Params))
	for i, p := range call.Params {
		rows[i] = []string{fmt.Sprint(i + 1), p.Name, p.Type, p.Value}
	}
	u.Table([]string{"#", "Name", "Type", "Value"}, rows)
}

// PrintJSON writes v indented.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
