package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecc-p256/internal/protocol/ecdh"
)

func (a *app) keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a key pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kp, err := a.generateKeyPair()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "private: %s\n", hexInt(kp.PrivateKey))
			fmt.Fprintf(out, "public: %x\n", a.curve.Marshal(kp.PublicKey))
			fmt.Fprintf(out, "compressed: %x\n", a.curve.MarshalCompressed(kp.PublicKey))
			return nil
		},
	}
}

func (a *app) exchangeCmd() *cobra.Command {
	var private, peer string
	cmd := &cobra.Command{
		Use:   "exchange",
		Short: "Derive the shared secret with a peer public key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := parsePrivate(private)
			if err != nil {
				return err
			}
			pub, err := a.parsePoint("peer", peer)
			if err != nil {
				return err
			}
			secret, err := ecdh.DeriveSharedSecret(a.curve, priv, pub)
			if err != nil {
				return err
			}
			key, err := ecdh.DeriveKey(a.curve, secret, nil, []byte(a.cfg.KDFInfo), a.cfg.KDFSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "shared: %x\n", a.curve.Marshal(secret))
			fmt.Fprintf(out, "key: %x\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&private, "private", "", "own private key (hex)")
	cmd.Flags().StringVar(&peer, "peer", "", "peer public key (SEC1 hex)")
	_ = cmd.MarkFlagRequired("private")
	_ = cmd.MarkFlagRequired("peer")
	return cmd
}
