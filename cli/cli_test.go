package cli

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func fingerprintFixture(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	for b := 0; b < 7; b++ {
		top := 4 + b*8
		for y := top; y < top+3; y++ {
			for x := 8; x < 48; x++ {
				img.SetGray(x, y, color.Gray{})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fingerprint fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "thumb.png")
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		t.Fatalf("write fingerprint fixture: %v", err)
	}
	return path
}

func TestRunUnknownCommand(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	exitCode := -1
	osExit = func(code int) {
		exitCode = code
		panic("exit called")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Run with unknown command did not exit")
		}
		if exitCode != 1 {
			t.Errorf("exit code = %d, want 1", exitCode)
		}
	}()
	Run([]string{"vaultmark", "frobnicate"})
}

func TestRunNoArguments(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	osExit = func(code int) { panic("exit called") }

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Run without a command did not print usage and exit")
		}
	}()
	Run([]string{"vaultmark"})
}

func TestEncryptCommandRequiresFingerprint(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	origFingerprint := FingerprintPath
	defer func() { FingerprintPath = origFingerprint }()

	EncryptCommand([]string{"document.txt"})
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
}

func TestEncryptThenVerifyFile(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	osExit = func(code int) {
		t.Fatalf("unexpected exit with code %d", code)
	}

	dir := t.TempDir()
	fingerprint := fingerprintFixture(t)
	input := filepath.Join(dir, "contract.txt")
	content := "This agreement is entered into by the parties below.\nBoth parties accept the stated terms."
	if err := os.WriteFile(input, []byte(content), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}
	output := filepath.Join(dir, "contract.sealed")

	EncryptDocument(input, fingerprint, output, false)

	sealed, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read sealed output: %v", err)
	}
	if !bytes.Contains(sealed, []byte("‍")) {
		t.Error("sealed output carries no hidden channel")
	}

	VerifyDocument(output, fingerprint, false)
}

func TestVerifyDocumentRejectsUnmarked(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	dir := t.TempDir()
	fingerprint := fingerprintFixture(t)
	input := filepath.Join(dir, "plain.txt")
	if err := os.WriteFile(input, []byte("nothing hidden here"), 0600); err != nil {
		t.Fatalf("write input: %v", err)
	}

	VerifyDocument(input, fingerprint, false)
	if exitCode != 1 {
		t.Errorf("exit code = %d, want 1", exitCode)
	}
}

func TestVerifyDocumentMissingFile(t *testing.T) {
	origExit := osExit
	defer func() { osExit = origExit }()
	exitCode := -1
	osExit = func(code int) {
		exitCode = code
		panic("exit called")
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("VerifyDocument with missing file did not exit")
		}
		if exitCode != 1 {
			t.Errorf("exit code = %d, want 1", exitCode)
		}
	}()
	VerifyDocument(filepath.Join(t.TempDir(), "absent.txt"), fingerprintFixture(t), false)
}
