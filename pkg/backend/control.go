package backend

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"unicode/utf16"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

// Control runs a wsl.exe management invocation (--export, --terminate,
// --list and friends) rather than a guest command. Output is decoded
// from the UTF-16LE encoding wsl.exe uses when its console output is
// redirected.
func (b *ProcessBackend) Control(ctx context.Context, args ...string) (*api.ExecResult, error) {
	cmd := exec.CommandContext(ctx, b.exe, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return NormalizeProcess(0, decodeConsole(stdout.Bytes()), decodeConsole(stderr.Bytes())), nil
	case errors.As(err, &exitErr):
		return NormalizeProcess(exitErr.ExitCode(), decodeConsole(stdout.Bytes()), decodeConsole(stderr.Bytes())), nil
	default:
		return nil, errx.Wrap(api.ErrProcessSpawn, err)
	}
}

// decodeConsole converts redirected wsl.exe console output to UTF-8.
// Management output arrives as UTF-16LE (with or without a BOM) while
// guest output passed through the same pipe stays UTF-8, so the
// encoding is sniffed per buffer.
func decodeConsole(b []byte) []byte {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE {
		return utf16LEToUTF8(b[2:])
	}
	if looksUTF16LE(b) {
		return utf16LEToUTF8(b)
	}
	return b
}

// looksUTF16LE reports whether the buffer is plausibly UTF-16LE text:
// even length with NUL high bytes for the ASCII-range code units that
// dominate wsl.exe output.
func looksUTF16LE(b []byte) bool {
	if len(b) < 2 || len(b)%2 != 0 {
		return false
	}
	zeros := 0
	for i := 1; i < len(b); i += 2 {
		if b[i] == 0 {
			zeros++
		}
	}
	return zeros*2 >= len(b)/2
}

func utf16LEToUTF8(b []byte) []byte {
	if len(b)%2 != 0 {
		b = b[:len(b)-1]
	}
	units := make([]uint16, len(b)/2)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return []byte(string(utf16.Decode(units)))
}
