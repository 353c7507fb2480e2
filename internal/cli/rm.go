package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <sequence-id>",
		Short: "Delete a sequence and all its thoughts",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteSequence(cmd.Context(), args[0]); err != nil {
		exitErr("delete sequence", err)
	}
	fmt.Printf("deleted sequence %s\n", args[0])
}
