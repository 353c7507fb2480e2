package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <sequence-id>",
		Short: "Show a sequence and its thoughts",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	RootCmd.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	seq, err := s.LoadSequence(cmd.Context(), args[0])
	if err != nil {
		exitErr("load sequence", err)
	}
	thoughts, err := s.LoadThoughts(cmd.Context(), seq.ID)
	if err != nil {
		exitErr("load thoughts", err)
	}

	out := model.ExportBundle{Sequence: *seq, Thoughts: thoughts}
	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Println(string(b))
}
