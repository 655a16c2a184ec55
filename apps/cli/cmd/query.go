package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jsonspec/jsonspec/packages/assertions"
	"github.com/jsonspec/jsonspec/packages/query"
)

var queryEngine string

var queryCmd = &cobra.Command{
	Use:   "query <expression> <file>",
	Short: "Extract a value from a JSON document",
	Long: `Evaluate a path expression against a JSON document and print the
extracted value as JSON. Use "-" to read the document from stdin.

Examples:
  jsonspec query "users[0].name" users.json
  jsonspec query "items[?price > ` + "`10`" + `].id" catalog.json
  cat response.json | jsonspec query "data.id" -`,
	Args: cobra.ExactArgs(2),
	RunE: queryCommand,
}

func init() {
	queryCmd.Flags().StringVar(&queryEngine, "engine", "jmespath", "expression engine: jmespath or gjson")
}

func queryCommand(cmd *cobra.Command, args []string) error {
	expression, file := args[0], args[1]

	var raw []byte
	var err error
	if file == "-" {
		raw, err = io.ReadAll(cmd.InOrStdin())
	} else {
		raw, err = os.ReadFile(file)
	}
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	data, err := assertions.ToJSONObject(raw)
	if err != nil {
		return err
	}

	var evaluator query.Evaluator
	switch queryEngine {
	case "jmespath":
		evaluator = query.NewJMESPath()
	case "gjson":
		evaluator = query.NewGJSON()
	default:
		return fmt.Errorf("unknown engine %q (want jmespath or gjson)", queryEngine)
	}

	result, err := evaluator.Search(expression, data)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}
