package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nalyk/sequentialthinking/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported sequence bundle",
		Long:  "Import an export bundle under a freshly allocated sequence id.",
		Args:  cobra.ExactArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	data, err := os.ReadFile(args[0])
	if err != nil {
		exitErr("read bundle", err)
	}

	var bundle model.ExportBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		exitErr("decode bundle", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	seq, err := s.Import(cmd.Context(), &bundle)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf("imported %d thoughts as sequence %s\n", seq.ThoughtCount, seq.ID)
}
