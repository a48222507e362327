package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
	"github.com/vaultmark/vaultmark"
)

func VerifyCommand(args []string) {
	verifyFlags := flag.NewFlagSet("verify", flag.ExitOnError)

	var fingerprintPath string
	var verbose bool

	verifyFlags.StringVar(&fingerprintPath, "fingerprint", "", "Path to the fingerprint image (PNG, JPEG, BMP or TIFF)")
	verifyFlags.BoolVar(&verbose, "v", false, "Log pipeline stages to stderr")

	verifyFlags.Usage = func() {
		fmt.Printf("Usage: %s verify [options] <document>\n\n", os.Args[0])
		fmt.Println("Check that a document is bound to the owner of a fingerprint")
		fmt.Println("\nOptions:")
		verifyFlags.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Printf("  %s verify -fingerprint thumb.png contract.txt.sealed\n", os.Args[0])
	}

	if err := verifyFlags.Parse(args); err != nil {
		log.Printf("Failed to parse verify flags: %v", err)
		osExit(1)
		return
	}

	if len(verifyFlags.Args()) < 1 || fingerprintPath == "" {
		verifyFlags.Usage()
		osExit(1)
		return
	}

	VerifyDocument(verifyFlags.Arg(0), fingerprintPath, verbose)
}

func VerifyDocument(input, fingerprintPath string, verbose bool) {
	fingerprintImage, err := os.ReadFile(fingerprintPath)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	doc, err := vaultmark.OpenFile(input)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	opts := []vaultmark.Option{}
	if verbose {
		opts = append(opts, vaultmark.WithLogger(
			zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
		))
	}

	if vaultmark.New(opts...).Verify(fingerprintImage, doc) {
		fmt.Println("VERIFIED")
		return
	}
	fmt.Println("NOT VERIFIED")
	osExit(1)
}
