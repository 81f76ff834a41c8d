package main

import (
	"encoding/json"
	"fmt"

	props "github.com/goliatone/go-props"
	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	var (
		engine  string
		args    map[string]string
		asJSON  bool
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "eval <file> <expression>",
		Short: "Evaluate an expression against a header",
		Long: `Evaluate an expression against a header. Dotted names are reachable as
nested fields (wcs.crval1) and every full name through header["NAME"].
Values passed with --arg are available as args.NAME. The helpers mjd,
firstof, lastof, deg2rad and rad2deg are always available.`,
		Example: `  propsctl eval raw.fits 'EXPTIME > 30 && FILTER == "r"'
  propsctl eval --engine cel raw.yaml 'size(NAXIS) == 2'
  propsctl eval raw.json 'mjd(header["DATE-OBS"])'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, positional []string) error {
			evaluator, err := newEvaluator(engine, noCache)
			if err != nil {
				return err
			}
			a.extraOptions = append(a.extraOptions,
				props.WithEvaluator(evaluator),
				props.WithEvaluatorLogger(props.EvaluatorLoggerFunc(func(event props.EvaluatorLogEvent) {
					a.logger.Debug("evaluated",
						"engine", event.Engine,
						"expr", event.Expr,
						"label", event.Label,
						"entries", event.Entries,
						"duration", event.Duration,
						"err", event.Err,
					)
				})),
			)
			list, err := a.load(positional[0])
			if err != nil {
				return err
			}

			ruleArgs := make(map[string]any, len(args))
			for key, value := range args {
				ruleArgs[key] = value
			}
			resp, err := list.EvaluateWith(props.RuleContext{Args: ruleArgs}, positional[1])
			if err != nil {
				return err
			}
			if asJSON {
				payload, err := json.Marshal(resp.Value)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Value)
			return err
		},
	}
	cmd.Flags().StringVar(&engine, "engine", "expr", "expression engine (expr, cel, js)")
	cmd.Flags().StringToStringVar(&args, "arg", nil, "argument exposed as args.NAME (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the compiled program cache")
	return cmd
}

func newEvaluator(engine string, noCache bool) (props.Evaluator, error) {
	var cache props.ProgramCache
	if !noCache {
		cache = props.NewMapProgramCache()
	}
	functions := props.HeaderFunctions()
	switch engine {
	case "expr", "":
		return props.NewExprEvaluator(props.ExprWithProgramCache(cache), props.ExprWithFunctionRegistry(functions)), nil
	case "cel":
		return props.NewCELEvaluator(props.CELWithProgramCache(cache), props.CELWithFunctionRegistry(functions)), nil
	case "js":
		return props.NewJSEvaluator(props.JSWithProgramCache(cache), props.JSWithFunctionRegistry(functions)), nil
	default:
		return nil, fmt.Errorf("unknown engine %q, want expr, cel or js", engine)
	}
}
