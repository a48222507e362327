package cli

import (
	"fmt"
	"os"
)

var osExit = os.Exit

func Usage() {
	fmt.Printf("Usage: %s <command> [options] <args>\n\n", os.Args[0])
	fmt.Println("Commands:")
	fmt.Println("  encrypt  Bind a document to a fingerprint")
	fmt.Println("  verify   Check a document against a fingerprint")
	fmt.Println("")
	fmt.Printf("Use '%s <command> -h' for command-specific help\n", os.Args[0])
	osExit(1)
}

// Run dispatches to the subcommand named by args[1].
func Run(args []string) {
	if len(args) < 2 {
		Usage()
		return
	}

	switch args[1] {
	case "encrypt":
		EncryptCommand(args[2:])
	case "verify":
		VerifyCommand(args[2:])
	case "-h", "--help", "help":
		Usage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[1])
		Usage()
	}
}
