package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smallyu/go-ecc-p256/internal/protocol/ecdh"
	"github.com/smallyu/go-ecc-p256/internal/protocol/ecdsa"
)

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through an ephemeral key exchange and a sign/verify round",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if err := a.demoExchange(out); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return a.demoSignature(out)
		},
	}
}

func (a *app) demoExchange(out io.Writer) error {
	fmt.Fprintln(out, "ECDHE")
	fmt.Fprintf(out, "Curve: %s\n", a.curve.Name())

	alice, err := a.generateKeyPair()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Alice's private key: %s\n", hexInt(alice.PrivateKey))
	fmt.Fprintf(out, "Alice's public key: %s\n", hexPoint(alice.PublicKey))

	bob, err := a.generateKeyPair()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Bob's private key: %s\n", hexInt(bob.PrivateKey))
	fmt.Fprintf(out, "Bob's public key: %s\n", hexPoint(bob.PublicKey))

	aliceSecret, err := ecdh.DeriveSharedSecret(a.curve, alice.PrivateKey, bob.PublicKey)
	if err != nil {
		return err
	}
	bobSecret, err := ecdh.DeriveSharedSecret(a.curve, bob.PrivateKey, alice.PublicKey)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Alice's shared secret: %s\n", hexPoint(aliceSecret))
	fmt.Fprintf(out, "Bob's shared secret: %s\n", hexPoint(bobSecret))
	fmt.Fprintf(out, "Secrets match: %t\n", aliceSecret.Equal(bobSecret))

	key, err := ecdh.DeriveKey(a.curve, aliceSecret, nil, []byte(a.cfg.KDFInfo), a.cfg.KDFSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Derived key: %x\n", key)
	return nil
}

func (a *app) demoSignature(out io.Writer) error {
	fmt.Fprintln(out, "ECDSA")
	fmt.Fprintf(out, "Curve: %s\n", a.curve.Name())

	kp, err := a.generateKeyPair()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Private key: %s\n", hexInt(kp.PrivateKey))
	fmt.Fprintf(out, "Public key: %s\n", hexPoint(kp.PublicKey))

	msg := "Hello!"
	z, err := a.digest(msg)
	if err != nil {
		return err
	}
	sig, err := ecdsa.Sign(a.curve, a.random, kp.PrivateKey, z)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nMessage: %s\n", msg)
	fmt.Fprintf(out, "Signature: %s, %s\n", hexInt(sig.R), hexInt(sig.S))
	fmt.Fprintf(out, "Verification: %d\n", b2i(ecdsa.Verify(a.curve, kp.PublicKey, z, sig)))

	msg = "Hi there!"
	z, err = a.digest(msg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nMessage: %s\n", msg)
	fmt.Fprintf(out, "Verification: %d\n", b2i(ecdsa.Verify(a.curve, kp.PublicKey, z, sig)))

	other, err := a.generateKeyPair()
	if err != nil {
		return err
	}
	msg = "Hello!"
	z, err = a.digest(msg)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nMessage: %s\n", msg)
	fmt.Fprintf(out, "Public key: %s\n", hexPoint(other.PublicKey))
	fmt.Fprintf(out, "Verification: %d\n", b2i(ecdsa.Verify(a.curve, other.PublicKey, z, sig)))
	return nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
