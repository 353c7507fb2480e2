package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored sequences",
		Long:  "List stored sequences, most recently modified first.",
		Run:   runList,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	seqs, err := s.ListSequences(cmd.Context(), limit)
	if err != nil {
		exitErr("list sequences", err)
	}

	if len(seqs) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(seqs, "", "  ")
	fmt.Println(string(b))
}
