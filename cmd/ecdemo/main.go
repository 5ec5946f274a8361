package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/smallyu/go-ecc-p256/internal/config"
	"github.com/smallyu/go-ecc-p256/internal/crypto/curves"
	"github.com/smallyu/go-ecc-p256/internal/crypto/digest"
	"github.com/smallyu/go-ecc-p256/internal/logging"
	"github.com/smallyu/go-ecc-p256/internal/protocol/ecdh"
)

var logger = logging.MustGetLogger("ecdemo")

// app carries what every subcommand needs.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	curve   *curves.Curve
	random  io.Reader
}

func main() {
	if err := newRootCmd(rand.Reader).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(random io.Reader) *cobra.Command {
	a := &app{
		v:      config.New(),
		curve:  curves.P256(),
		random: random,
	}

	root := &cobra.Command{
		Use:          "ecdemo",
		Short:        "P-256 key generation, ECDH and ECDSA",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.cfgFile)
			if err != nil {
				return err
			}
			if err := logging.SetLevel(cfg.LogLevel); err != nil {
				return err
			}
			a.cfg = cfg
			logger.Debugw("configuration loaded", "hash", cfg.Hash, "keygen", cfg.KeyGen)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "path to a YAML config file")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("hash", digest.SHA256, fmt.Sprintf("message digest, one of %v", digest.Names()))
	flags.String("keygen", config.KeyGenReference, "private key range: reference [0, 2^256) or order [1, n-1]")
	if err := bindFlags(a.v, flags); err != nil {
		panic(err)
	}

	root.AddCommand(
		a.demoCmd(),
		a.keygenCmd(),
		a.exchangeCmd(),
		a.signCmd(),
		a.verifyCmd(),
	)
	return root
}

// bindFlags maps dashed flag names onto the underscored config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || f.Name == "config" {
			return
		}
		err = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	return err
}

func (a *app) generateKeyPair() (*ecdh.KeyPair, error) {
	if a.cfg.KeyGen == config.KeyGenOrder {
		return ecdh.GenerateKeyPairInOrder(a.curve, a.random)
	}
	return ecdh.GenerateKeyPair(a.curve, a.random)
}

func (a *app) digest(msg string) ([]byte, error) {
	return digest.Sum(a.cfg.Hash, []byte(msg))
}

// hexInt renders an integer as minimal big-endian hex.
func hexInt(i *big.Int) string {
	return hex.EncodeToString(curves.IntToBytes(i))
}

func hexPoint(p curves.Point) string {
	if p.IsInfinity() {
		return "infinity"
	}
	return hexInt(p.X()) + ", " + hexInt(p.Y())
}

func parseHex(name, s string) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
	if err != nil {
		return nil, errors.Wrapf(err, "decode --%s", name)
	}
	return b, nil
}

func parsePrivate(s string) (*big.Int, error) {
	b, err := parseHex("private", s)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, errors.New("--private is required")
	}
	return curves.BytesToInt(b), nil
}

func (a *app) parsePoint(name, s string) (curves.Point, error) {
	b, err := parseHex(name, s)
	if err != nil {
		return curves.Point{}, err
	}
	pt, err := a.curve.Unmarshal(b)
	if err != nil {
		return curves.Point{}, errors.Wrapf(err, "parse --%s", name)
	}
	return pt, nil
}
