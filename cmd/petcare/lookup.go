package main

import (
	"encoding/json"

	"petcare/internal/adapters/storage/documents"
	"petcare/internal/domain/lookup"
	"petcare/internal/domain/pets"
	"petcare/internal/platform/config"

	"github.com/spf13/cobra"
)

func newLookupCmd(configPath *string) *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Find a pet by HN across all owners",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			paths := documents.NewPaths(cfg.AppID)
			ownersRepo := documents.NewOwnersRepo(store, paths)
			petsSvc := pets.NewService(documents.NewPetsRepo(store, paths), ownersRepo)

			p, err := lookup.NewService(ownersRepo, petsSvc).FindByHN(cmd.Context(), code)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pets.ToResponse(p))
		},
	}
	cmd.Flags().StringVar(&code, "hn", "", "HN to search, e.g. HN-AB12-0007")
	_ = cmd.MarkFlagRequired("hn")
	return cmd
}
