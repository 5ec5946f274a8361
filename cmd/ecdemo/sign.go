package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecc-p256/internal/protocol/ecdsa"
)

var errBadSignature = errors.New("signature does not verify")

func (a *app) signCmd() *cobra.Command {
	var private, message string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign the digest of a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			priv, err := parsePrivate(private)
			if err != nil {
				return err
			}
			z, err := a.digest(message)
			if err != nil {
				return err
			}
			sig, err := ecdsa.Sign(a.curve, a.random, priv, z)
			if err != nil {
				return err
			}
			der, err := sig.MarshalDER()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "r: %s\n", hexInt(sig.R))
			fmt.Fprintf(out, "s: %s\n", hexInt(sig.S))
			fmt.Fprintf(out, "der: %x\n", der)
			return nil
		},
	}
	cmd.Flags().StringVar(&private, "private", "", "private key (hex)")
	cmd.Flags().StringVar(&message, "message", "", "message to sign")
	_ = cmd.MarkFlagRequired("private")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	var public, message, signature string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a DER signature over the digest of a message",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := a.parsePoint("public", public)
			if err != nil {
				return err
			}
			raw, err := parseHex("signature", signature)
			if err != nil {
				return err
			}
			sig, err := ecdsa.ParseDER(raw)
			if err != nil {
				return err
			}
			z, err := a.digest(message)
			if err != nil {
				return err
			}
			if err := ecdsa.VerifyError(a.curve, pub, z, sig); err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), "invalid")
				return errors.WithMessage(errBadSignature, err.Error())
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVar(&public, "public", "", "public key (SEC1 hex)")
	cmd.Flags().StringVar(&message, "message", "", "signed message")
	cmd.Flags().StringVar(&signature, "signature", "", "signature (DER hex)")
	_ = cmd.MarkFlagRequired("public")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
