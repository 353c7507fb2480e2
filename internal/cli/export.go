package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export <sequence-id>",
		Short: "Export a sequence with its thoughts as JSON",
		Long:  "Write an export bundle to stdout or to --out. Import it with 'import'.",
		Args:  cobra.ExactArgs(1),
		Run:   runExport,
	}

	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	out, _ := cmd.Flags().GetString("out")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	bundle, err := s.Export(cmd.Context(), args[0])
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(bundle, "", "  ")
	if out == "" {
		fmt.Println(string(b))
		return
	}
	if err := os.WriteFile(out, b, 0o644); err != nil {
		exitErr("write export", err)
	}
	fmt.Printf("exported %d thoughts to %s\n", len(bundle.Thoughts), out)
}
