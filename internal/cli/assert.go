package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"psrule/internal/conditions"
	"psrule/internal/flags"
	"psrule/internal/logging"
)

func newAssertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assert",
		Short: "Evaluate a condition and exit non-zero when it fails",
		Long: `Evaluate a single condition from the command line.

Each subcommand prints PASS or FAIL and exits with 0 when the condition
passes and 1 when it fails. Use --log-level debug to trace evaluation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newWithinCmd(a), newCombinatorCmd(a, "anyof"), newCombinatorCmd(a, "allof"))
	return cmd
}

type withinOptions struct {
	field         string
	values        []string
	not           bool
	caseSensitive bool
}

func newWithinCmd(a *app) *cobra.Command {
	var o withinOptions
	cmd := &cobra.Command{
		Use:   "within TARGET",
		Short: "Check that a field of a target holds one of a set of values",
		Long: `Check that a field of a target object holds one of the allowed values.

TARGET is a JSON or YAML file (- reads stdin). When the document is a list,
each item is checked and the assertion passes only when every item passes.

Values are parsed as YAML scalars: 1 is a number, true is a boolean, null is
an absent value and anything else is a string. String comparison ignores case
unless --case-sensitive is set.

Examples:
  psrule assert within --field kind --value Deployment --value StatefulSet manifest.yaml
  psrule assert within --field replicas --value 1 --not manifest.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.field == "" {
				return fatal(fmt.Errorf("--%s is required", flags.FlagField))
			}
			allowed, err := parseValues(o.values)
			if err != nil {
				return fatal(err)
			}
			targets, err := readTargets(cmd.InOrStdin(), args[0])
			if err != nil {
				return fatal(err)
			}

			e := conditions.New(conditions.MapBinder{}, logging.NewConditionTracer(a.log))
			opts := conditions.WithinOptions{CaseSensitive: o.caseSensitive, Not: o.not}
			results := make([]bool, len(targets))
			for i, target := range targets {
				results[i] = e.Within(target, o.field, allowed, opts)
				if len(targets) > 1 {
					fmt.Fprintf(cmd.OutOrStdout(), "[%d] %s\n", i, passFail(results[i]))
				}
			}
			pass, _ := e.AllOf(results...)
			return report(cmd.OutOrStdout(), pass)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.field, flags.FlagField, "", "Name of the field to check")
	f.StringArrayVar(&o.values, flags.FlagValue, nil, "An allowed value (repeatable)")
	f.BoolVar(&o.not, flags.FlagNot, false, "Pass when the value is not one of the allowed values")
	f.BoolVar(&o.caseSensitive, flags.FlagCaseSensitive, false, "Compare string values case-sensitively")
	return cmd
}

func newCombinatorCmd(a *app, name string) *cobra.Command {
	short := "Pass when at least one boolean argument is true"
	if name == "allof" {
		short = "Pass when every boolean argument is true"
	}
	return &cobra.Command{
		Use:   name + " BOOL...",
		Short: short,
		Long: short + `.

With no arguments the assertion fails.

Examples:
  psrule assert ` + name + ` true false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := make([]bool, 0, len(args))
			for _, arg := range args {
				b, err := strconv.ParseBool(arg)
				if err != nil {
					return fatal(fmt.Errorf("invalid boolean %q", arg))
				}
				results = append(results, b)
			}

			e := conditions.New(nil, logging.NewConditionTracer(a.log))
			var pass bool
			if name == "allof" {
				pass, _ = e.AllOf(results...)
			} else {
				pass, _ = e.AnyOf(results...)
			}
			return report(cmd.OutOrStdout(), pass)
		},
	}
}

func passFail(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}

func report(w io.Writer, pass bool) error {
	fmt.Fprintln(w, passFail(pass))
	if !pass {
		return &ExitError{Code: exitFail}
	}
	return nil
}

// parseValues decodes each value as a YAML scalar. No values means the
// field must be absent or null.
func parseValues(raw []string) ([]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]any, 0, len(raw))
	for _, s := range raw {
		var v any
		if err := yaml.Unmarshal([]byte(s), &v); err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", flags.FlagValue, s, err)
		}
		switch v.(type) {
		case map[string]any, []any:
			// Only scalars are compared; keep structured input verbatim.
			v = s
		}
		out = append(out, v)
	}
	return out, nil
}

// readTargets loads a target document. A sequence yields one target per item.
func readTargets(stdin io.Reader, path string) ([]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode target %s: %w", path, err)
	}
	switch t := doc.(type) {
	case nil:
		return nil, errors.New("target document is empty")
	case []any:
		if len(t) == 0 {
			return nil, errors.New("target document is an empty list")
		}
		return t, nil
	default:
		return []any{t}, nil
	}
}
