package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nalyk/sequentialthinking/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search sequences by title or thought content",
		Long: "Fuzzy-match sequence titles and descriptions, or with --content run a\n" +
			"full-text search over thought content.",
		Args: cobra.MinimumNArgs(1),
		Run:  runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("content", false, "Full-text search over thought content")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	content, _ := cmd.Flags().GetBool("content")
	query := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		exitErr("load config", err)
	}
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	seqs, err := s.Search(cmd.Context(), store.SearchParams{
		Query:         query,
		Limit:         limit,
		ContentSearch: content,
	})
	if err != nil {
		exitErr("search", err)
	}

	if len(seqs) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(seqs, "", "  ")
	fmt.Println(string(b))
}
