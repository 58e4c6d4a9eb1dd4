package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"payment-relay/feature/relay"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	relayFile string
	relayYAML bool
)

// relayCmd sends one envelope through the relay.
var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Relay a single request envelope to the payment gateway",
	Long: `Reads a JSON request envelope from --file or stdin (YAML with --yaml or a
.yaml/.yml file), sends it to the payment
gateway and records the reply in the audit log.

Example:
  echo '{"requestCategory":"transaction","requestAction":"validate","initiatedBy":"ops","data":{"ccnumber":"4111111111111111","ccexp":"1030"}}' | payment-relay relay`,
	RunE: runRelay,
}

func init() {
	relayCmd.Flags().StringVarP(&relayFile, "file", "f", "", "Envelope file (default stdin)")
	relayCmd.Flags().BoolVar(&relayYAML, "yaml", false, "Parse the envelope as YAML")
	RootCmd.AddCommand(relayCmd)
}

func runRelay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := loadCLI()
	if err != nil {
		return err
	}
	defer l.Sync()

	var in io.Reader = cmd.InOrStdin()
	if relayFile != "" {
		f, err := os.Open(relayFile)
		if err != nil {
			return fmt.Errorf("failed to open envelope: %w", err)
		}
		defer f.Close()
		in = f
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read envelope: %w", err)
	}
	parse := relay.ParseEnvelope
	switch strings.ToLower(filepath.Ext(relayFile)) {
	case ".yaml", ".yml":
		relayYAML = true
	}
	if relayYAML {
		parse = relay.ParseEnvelopeYAML
	}
	env, _, err := parse(raw)
	if err != nil {
		return err
	}

	d, err := newDeps(ctx, cfg, l)
	if err != nil {
		return err
	}
	svc, err := d.relayService()
	if err != nil {
		return err
	}

	result, err := svc.Relay(ctx, uuid.NewString(), env)
	if err != nil {
		return err
	}
	return printJSON(result)
}
