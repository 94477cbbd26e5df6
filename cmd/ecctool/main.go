package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/smallyu/go-weierstrass/internal/config"
	"github.com/smallyu/go-weierstrass/internal/crypto/curves"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "ecctool",
		Usage: "elliptic-curve keys, ECDSA signatures and ECDH on short-Weierstrass curves",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "curves",
				Usage:   "YAML or JSON file of curve parameters keyed by id",
				Sources: cli.EnvVars("ECC_CURVES"),
			},
			&cli.StringFlag{
				Name:    "curve",
				Usage:   "curve id from --curves, or a built-in curve (" + strings.Join(curves.Names(), ", ") + ")",
				Value:   "secp256k1",
				Sources: cli.EnvVars("ECC_CURVE"),
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "log debug output to stderr",
			},
		},
		Commands: []*cli.Command{
			keygenCommand(),
			signCommand(),
			verifyCommand(),
			sharedKeyCommand(),
			curvesCommand(),
			demoCommand(),
		},
	}
}

func newLogger(cmd *cli.Command) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cmd.Bool("verbose") {
		log, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		log, err = cfg.Build()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// loadCurve resolves --curve against --curves when given, falling back to
// the built-in curves.
func loadCurve(cmd *cli.Command, log *zap.Logger) (*curves.Curve, error) {
	var file *config.File
	if path := cmd.String("curves"); path != "" {
		f, err := config.Load(path, log)
		if err != nil {
			return nil, err
		}
		file = f
	}
	c, err := config.Resolve(file, cmd.String("curve"))
	if err != nil {
		return nil, err
	}
	log.Debug("using curve", zap.String("curve", c.Name()), zap.Int("bits", c.P().BitLen()))
	return c, nil
}
