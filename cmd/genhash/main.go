package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"waitlist.backend/pkg/crypto"
)

const defaultTokenLength = 32

var (
	hashSecretFn    = crypto.HashSecret
	generateTokenFn = crypto.GenerateRandomToken
	fatalfFn        = log.Fatalf
)

// run prints a webhook secret and its bcrypt hash. A fresh secret is
// generated unless one is passed as the first argument.
func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("genhash", flag.ContinueOnError)
	fs.SetOutput(out)
	cost := fs.Int("cost", crypto.DefaultCost, "bcrypt cost")
	length := fs.Int("length", defaultTokenLength, "random secret length in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secret := fs.Arg(0)
	if secret == "" {
		generated, err := generateTokenFn(*length)
		if err != nil {
			return fmt.Errorf("failed to generate secret: %w", err)
		}
		secret = generated
	}

	hash, err := hashSecretFn(secret, *cost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	fmt.Fprintf(out, "WEBHOOK_SECRET=%s\n", secret)
	fmt.Fprintf(out, "WEBHOOK_SECRET_HASH=%s\n", hash)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fatalfFn("genhash: %v", err)
	}
}
