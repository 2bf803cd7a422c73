// Package main is the filterql command line tool: it parses filter
// expressions, dumps their AST, and evaluates them against bindings loaded
// from a YAML file.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/filterql/filterql"
)

var rootCmd = &cobra.Command{
	Use:   "filterql",
	Short: "Parse and evaluate SQL-like boolean filter expressions",
}

var parseCmd = &cobra.Command{
	Use:   "parse <expression>",
	Short: "Parse an expression and print its AST",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression against bindings",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().String("bindings", "", "YAML file with variable bindings")
	evalCmd.Flags().Bool("debug", false, "Print the AST before evaluating (env FILTERQL_DEBUG)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	expr, err := filterql.Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Input: %s\nAST:\n", args[0])
	filterql.Fprint(cmd.OutOrStdout(), expr)

	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	debug := strings.EqualFold(os.Getenv("FILTERQL_DEBUG"), "true")
	if v, _ := cmd.Flags().GetBool("debug"); v {
		debug = v
	}

	bindings := map[string]filterql.Value{}

	if path, _ := cmd.Flags().GetString("bindings"); path != "" {
		var err error

		bindings, err = loadBindings(path)
		if err != nil {
			return err
		}
	}

	ev := &filterql.Evaluator{Debug: debug, DebugWriter: cmd.ErrOrStderr()}

	result, err := ev.Evaluate(args[0], bindings)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)

	return nil
}

// loadBindings reads a flat YAML mapping of variable names to scalar values.
// YAML integers become Integer, floats Float, booleans Boolean, strings
// String, and explicit nulls NULL.
func loadBindings(path string) (map[string]filterql.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bindings file %s: %w", path, err)
	}

	bindings := make(map[string]filterql.Value, len(raw))

	for name, val := range raw {
		switch v := val.(type) {
		case int:
			bindings[name] = filterql.Int(int64(v))
		case int64:
			bindings[name] = filterql.Int(v)
		case float64:
			bindings[name] = filterql.Float(v)
		case bool:
			bindings[name] = filterql.Bool(v)
		case string:
			bindings[name] = filterql.Str(v)
		case nil:
			bindings[name] = filterql.Null()
		default:
			return nil, fmt.Errorf("binding %q: unsupported value type %T", name, val)
		}
	}

	return bindings, nil
}
