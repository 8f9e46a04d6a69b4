package backend

import (
	"strconv"
	"strings"

	"github.com/ssantosv/wslkit/pkg/api"
	"github.com/ssantosv/wslkit/pkg/wslapi"
)

// The normalizer shapes raw backend output into api.ExecResult. It never
// inspects command semantics; interpretation stays with the caller.

// NormalizeProcess maps a child process outcome. Bytes that are not valid
// UTF-8 are replaced with the Unicode replacement rune rather than failing.
func NormalizeProcess(exitCode int, stdout, stderr []byte) *api.ExecResult {
	return &api.ExecResult{
		ExitCode: exitCode,
		Stdout:   sanitize(stdout),
		Stderr:   sanitize(stderr),
	}
}

// NormalizeLaunch maps a native launch-with-capture outcome.
func NormalizeLaunch(res *wslapi.LaunchResult) *api.ExecResult {
	return &api.ExecResult{
		ExitCode: int(res.ExitCode),
		Stdout:   sanitize(res.Stdout),
		Stderr:   sanitize(res.Stderr),
	}
}

// NormalizeConfig flattens a distribution configuration struct into the
// result's field mapping with empty text channels.
func NormalizeConfig(cfg *wslapi.DistroConfig) *api.ExecResult {
	fields := map[string]string{
		"version":     strconv.Itoa(cfg.Version),
		"default_uid": strconv.FormatUint(uint64(cfg.DefaultUID), 10),
		"flags":       strconv.FormatUint(uint64(cfg.Flags), 10),
	}
	for k, v := range cfg.Env {
		fields["env."+k] = v
	}
	return &api.ExecResult{Fields: fields}
}

func sanitize(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
