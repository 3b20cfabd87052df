// Command prove is a small CLI over the folrules proof-assistant rule
// engine: it runs a catalog of built-in scenarios through the bounded
// forward-search meta-rule and reports, for each, whether the goal was
// reached and the proof tree that reached it.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/folrules/internal/scenarios"
	"github.com/gitrdm/folrules/pkg/folrules"
)

var (
	searchDepth int
	verbose     bool
	logger      *zap.Logger
)

var (
	reachedStyle    = color.New(color.FgGreen, color.Bold)
	notReachedStyle = color.New(color.FgRed, color.Bold)
	ruleStyle       = color.New(color.FgYellow)
	formulaStyle    = color.New(color.FgCyan)
)

var rootCmd = &cobra.Command{
	Use:   "prove",
	Short: "prove runs bounded forward-search proofs over a built-in rule catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScenarios(args)
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "list the built-in rule catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, r := range folrules.Catalog().Rules {
			fmt.Printf("%s\n  %s\n", ruleStyle.Sprint(r.Name().String()), r.Description())
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&searchDepth, "depth", folrules.DefaultSearchDepth, "bounded forward-search depth")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each search round")
	rootCmd.AddCommand(rulesCmd)
}

func main() {
	var err error
	logger, err = zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenarios(names []string) error {
	if verbose {
		folrules.SetLogger(logger)
	} else {
		folrules.SetLogger(zap.NewNop())
	}

	all := scenarios.All()
	selected := all
	if len(names) > 0 {
		selected = nil
		for _, name := range names {
			s, ok := scenarios.ByName(name)
			if !ok {
				return fmt.Errorf("unknown scenario %q", name)
			}
			selected = append(selected, s)
		}
	}

	for _, s := range selected {
		node, ok, err := prove(s)
		if err != nil {
			return err
		}

		fmt.Printf("%s: %s\n", s.Name, formulaStyle.Sprint(s.Goal.String()))
		if !ok {
			fmt.Printf("  %s\n", notReachedStyle.Sprint("NOT REACHED"))
			continue
		}
		fmt.Printf("  %s\n", reachedStyle.Sprint("REACHED"))
		printProof(node, 1)
	}
	return nil
}

// prove runs one scenario through the meta-rule, converting a
// ProgrammerError panic (a rule-engine invariant violation, per the
// package's error contract) into an error at this single boundary rather
// than crashing mid-run.
func prove(s scenarios.Scenario) (node *folrules.DeductionNode, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, isPE := r.(folrules.ProgrammerError)
			if !isPE {
				panic(r)
			}
			err = fmt.Errorf("scenario %s hit a rule-engine invariant violation: %s", s.Name, pe.Error())
		}
	}()
	meta := folrules.AllLogicRule{Catalog: folrules.Catalog(), SearchDepth: searchDepth}
	node, ok = meta.ProveToward(s.Context, nil, nil, s.Goal)
	return node, ok, nil
}

func printProof(n *folrules.DeductionNode, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}
	fmt.Printf("%s%s %s\n", pad, ruleStyle.Sprint(n.Deduction.Rule.String()), n.Deduction.Produced.String())
	for _, c := range n.Children {
		printProof(c, indent+1)
	}
}
