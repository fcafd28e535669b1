package util

import (
	"fmt"
	"strings"

	"github.com/tranvictor/calldata/action"
	"github.com/tranvictor/calldata/codec"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/ui"
	"github.com/tranvictor/calldata/validate"
)

// PrefillSkip in a prefill string asks for that parameter interactively.
const PrefillSkip = "?"

// ParseParamArgs reads name=value arguments.
func ParseParamArgs(args []string) (map[string]any, error) {
	params := map[string]any{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q must look like name=value", arg)
		}
		params[name] = value
	}
	return params, nil
}

// SplitPrefills splits "v1|v2|?" into trimmed positional values.
func SplitPrefills(prefill string) []string {
	prefill = strings.TrimSpace(prefill)
	if prefill == "" {
		return nil
	}
	values := strings.Split(prefill, "|")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return values
}

// ApplyPrefills stores positional prefills under the input keys of fn.
// Values already in params win.
func ApplyPrefills(fn codec.Function, prefills []string, params map[string]any) error {
	if len(prefills) == 0 {
		return nil
	}
	if len(prefills) != len(fn.Inputs) {
		return fmt.Errorf("%s takes %d params, %d prefilled", fn.Signature(), len(fn.Inputs), len(prefills))
	}
	for i, input := range fn.Inputs {
		key := action.ParamKey(input, i)
		if _, set := params[key]; set || prefills[i] == PrefillSkip {
			continue
		}
		params[key] = prefills[i]
	}
	return nil
}

// ResolveFunction finds the function a signature names. A bare name lists
// its overloads for the user to choose from.
func ResolveFunction(u ui.UI, a codec.ABI, nameOrSignature string) (codec.Function, error) {
	if strings.Contains(nameOrSignature, "(") {
		if fn, ok := a.FindBySignature(nameOrSignature); ok {
			return fn, nil
		}
	} else {
		var overloads codec.ABI
		for _, fn := range a {
			if fn.Name == nameOrSignature {
				overloads = append(overloads, fn)
			}
		}
		switch len(overloads) {
		case 1:
			return overloads[0], nil
		case 0:
		default:
			idx := u.Choose(fmt.Sprintf("%s is overloaded, pick one", nameOrSignature), overloads.Signatures())
			return overloads[idx], nil
		}
	}
	msg := fmt.Sprintf("Function %s not found in ABI", nameOrSignature)
	name, _, _ := strings.Cut(nameOrSignature, "(")
	if s := action.Suggest(name, a); len(s) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
	}
	return codec.Function{}, common.NewError(common.FunctionNotFound, "%s", msg)
}

// ParamValidator accepts answers the dispatcher validates against the type.
func ParamValidator(fn codec.Function, i int) ui.Validator {
	p := fn.Inputs[i]
	return func(answer string) error {
		outcome := validate.ValidateParameterType(answer, p.Type, p.Components)
		if !outcome.Valid {
			return fmt.Errorf("%s", outcome.Error)
		}
		return nil
	}
}

// PromptMissingParams asks for every input of fn absent from params.
func PromptMissingParams(u ui.UI, fn codec.Function, params map[string]any) {
	paramUI := u.Indent()
	for i, input := range fn.Inputs {
		key := action.ParamKey(input, i)
		if _, set := params[key]; set {
			continue
		}
		answer := paramUI.Prompt(
			fmt.Sprintf("%d. %s (%s)", i+1, key, input.Type),
			validate.ParameterTypeErrorMessage(input.Type),
			ParamValidator(fn, i),
		)
		outcome := validate.ValidateParameterType(answer, input.Type, input.Components)
		if outcome.Valid {
			paramUI.Interpret(validate.Text(outcome.Value))
		}
		params[key] = answer
	}
}
