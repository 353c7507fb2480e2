package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "submit [file]",
		Short: "Submit a thought or management directive",
		Long: "Read one submission JSON object from a file (or stdin when no file is\n" +
			"given) and print the engine's result. Directives (saveSequence,\n" +
			"loadSequence, searchSequence, exportSequence, importSequence) take\n" +
			"priority over the thought fields.",
		Args: cobra.MaximumNArgs(1),
		Run:  runSubmit,
	}

	RootCmd.AddCommand(cmd)
}

func runSubmit(cmd *cobra.Command, args []string) {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			exitErr("open submission", err)
		}
		defer f.Close()
		in = f
	}

	var sub model.Submission
	if err := json.NewDecoder(in).Decode(&sub); err != nil {
		exitErr("decode submission", err)
	}

	eng, s, logger, err := newEngine()
	if err != nil {
		exitErr("open engine", err)
	}
	defer s.Close()
	defer logger.Sync()

	result, err := eng.Submit(cmd.Context(), &sub)
	if err != nil {
		// Structured failure shape rather than a process error: the
		// submission was handled, it was just rejected.
		b, _ := json.MarshalIndent(model.NewErrorResult(err.Error()), "", "  ")
		fmt.Println(string(b))
		os.Exit(1)
	}

	b, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(b))
}
