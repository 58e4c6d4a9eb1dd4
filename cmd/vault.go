package cmd

import (
	"context"
	"fmt"

	"payment-relay/feature/vault"

	"github.com/spf13/cobra"
)

var vaultInitiator string

// vaultCmd syncs one platform user to the customer vault.
var vaultCmd = &cobra.Command{
	Use:   "vault <user-id>",
	Short: "Add or update a platform user in the customer vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, l, err := loadCLI()
		if err != nil {
			return err
		}
		defer l.Sync()

		d, err := newDeps(ctx, cfg, l)
		if err != nil {
			return err
		}
		if d.platform == nil {
			return fmt.Errorf("appwrite.project_id is required to fetch users")
		}

		var dispatcher vault.Dispatcher
		if cfg.Vault.RelayFunctionID != "" {
			dispatcher = vault.NewFunctionDispatcher(d.platform, cfg.Vault.RelayFunctionID)
		} else {
			svc, err := d.relayService()
			if err != nil {
				return err
			}
			dispatcher = vault.NewLocalDispatcher(svc)
		}

		out, err := vault.NewService(d.platform, dispatcher, l).Sync(ctx, args[0], vaultInitiator)
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

func init() {
	vaultCmd.Flags().StringVar(&vaultInitiator, "initiated-by", "", "User recorded as initiator (default the user itself)")
	RootCmd.AddCommand(vaultCmd)
}
