package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/calldata/abitype"
	"github.com/tranvictor/calldata/cmd/util"
	"github.com/tranvictor/calldata/common"
	"github.com/tranvictor/calldata/config"
	"github.com/tranvictor/calldata/ui"
	"github.com/tranvictor/calldata/validate"
)

var componentsJSON string

var validateCmd = &cobra.Command{
	Use:   "validate <type> <value>",
	Short: "Check a value against a Solidity ABI type and show its normalized form",
	Example: `  calldata validate uint8 255
  calldata validate 'address[]' '["0x..", "0x.."]'
  calldata validate tuple '{"to":"0x..","amount":"1"}' --components '[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}]'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome, err := runValidate(appUI, args[0], args[1], componentsJSON)
		if config.JSON {
			if jerr := util.PrintJSON(cmd.OutOrStdout(), outcome); jerr != nil {
				return jerr
			}
		}
		return err
	},
}

func runValidate(u ui.UI, typ, value, components string) (validate.Outcome, error) {
	var comps []abitype.Parameter
	if components != "" {
		if err := json.Unmarshal([]byte(components), &comps); err != nil {
			return validate.Outcome{}, fmt.Errorf("couldn't parse --components: %w", err)
		}
	}
	outcome := validate.ValidateParameterType(value, typ, comps)
	if !outcome.Valid {
		u.Error("%s", outcome.Error)
		u.Info("%s", u.Style(ui.Styled{Text: validate.ParameterTypeErrorMessage(typ), Severity: ui.SeverityNotice}))
		return outcome, common.ParamError("value", "Invalid value for %s: %s", typ, outcome.Error)
	}
	u.Success("valid %s", typ)
	u.Interpret(validate.Text(outcome.Value))
	if outcome.Warning != "" {
		u.Warn("%s", outcome.Warning)
	}
	return outcome, nil
}

var hintCmd = &cobra.Command{
	Use:   "hint <type>",
	Short: "Describe the values a Solidity ABI type accepts",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		appUI.Info("%s", validate.ParameterTypeErrorMessage(args[0]))
	},
}

func init() {
	validateCmd.Flags().StringVar(&componentsJSON, "components", "", "tuple components as ABI JSON")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(hintCmd)
}
