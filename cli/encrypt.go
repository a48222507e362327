package cli

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/rs/zerolog"
	"github.com/vaultmark/vaultmark"
)

var (
	FingerprintPath string
	OutputPath      string
	Verbose         bool
)

func EncryptCommand(args []string) {
	encryptFlags := flag.NewFlagSet("encrypt", flag.ExitOnError)

	encryptFlags.StringVar(&FingerprintPath, "fingerprint", "", "Path to the fingerprint image (PNG, JPEG, BMP or TIFF)")
	encryptFlags.StringVar(&OutputPath, "out", "", "Path for the secured document (default: <input>.sealed)")
	encryptFlags.BoolVar(&Verbose, "v", false, "Log pipeline stages to stderr")

	encryptFlags.Usage = func() {
		fmt.Printf("Usage: %s encrypt [options] <document>\n\n", os.Args[0])
		fmt.Println("Bind a document to the owner of a fingerprint")
		fmt.Println("\nOptions:")
		encryptFlags.PrintDefaults()
		fmt.Println("\nExamples:")
		fmt.Printf("  %s encrypt -fingerprint thumb.png contract.txt\n", os.Args[0])
		fmt.Printf("  %s encrypt -fingerprint thumb.png -out sealed.docx contract.docx\n", os.Args[0])
	}

	if err := encryptFlags.Parse(args); err != nil {
		log.Printf("Failed to parse encrypt flags: %v", err)
		osExit(1)
		return
	}

	if len(encryptFlags.Args()) < 1 || FingerprintPath == "" {
		encryptFlags.Usage()
		osExit(1)
		return
	}

	EncryptDocument(encryptFlags.Arg(0), FingerprintPath, OutputPath, Verbose)
}

// EncryptDocumentFuncType defines the function signature for EncryptDocument
var EncryptDocument = encryptDocumentImpl

func encryptDocumentImpl(input, fingerprintPath, output string, verbose bool) {
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

	artifact, err := vaultmark.New(opts...).Encrypt(fingerprintImage, doc)
	if err != nil {
		log.Println(err)
		osExit(1)
		return
	}

	if output == "" {
		output = input + ".sealed"
	}
	if err := os.WriteFile(output, artifact.Data, 0600); err != nil {
		log.Println(err)
		osExit(1)
		return
	}
	fmt.Printf("Secured %s document written to %s\n", artifact.Format, output)
}
