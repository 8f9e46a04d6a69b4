package controller

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ssantosv/wslkit/internal/errx"
)

// CopyIn copies a host file into the guest filesystem. The guest path is
// translated to its host-visible form with wslpath and the bytes move
// entirely on the host side, so no guest process touches the content.
func (c *Controller) CopyIn(ctx context.Context, hostPath, guestPath string) error {
	winPath, err := c.translatePath(ctx, guestPath)
	if err != nil {
		return err
	}
	return copyFile(hostPath, winPath)
}

// CopyOut copies a guest file to a host path.
func (c *Controller) CopyOut(ctx context.Context, guestPath, hostPath string) error {
	winPath, err := c.translatePath(ctx, guestPath)
	if err != nil {
		return err
	}
	return copyFile(winPath, hostPath)
}

// translatePath maps a guest absolute path to the host path wsl.exe
// exposes it at (\\wsl$\... style).
func (c *Controller) translatePath(ctx context.Context, guestPath string) (string, error) {
	res, err := c.Run(ctx, "wslpath -w "+shellquote.Join(guestPath))
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", errx.With(ErrPathTranslate, ": %q: %s", guestPath, strings.TrimSpace(res.Stderr))
	}
	winPath := strings.TrimSpace(res.Stdout)
	if winPath == "" {
		return "", errx.With(ErrPathTranslate, ": %q: empty translation", guestPath)
	}
	return winPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errx.With(ErrCopyFile, ": open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errx.With(ErrCopyFile, ": stat %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errx.With(ErrCopyFile, ": create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errx.With(ErrCopyFile, ": copy %s -> %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return errx.With(ErrCopyFile, ": flush %s: %w", dst, err)
	}
	return nil
}
