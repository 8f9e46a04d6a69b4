package conf

import (
	"strconv"
	"strings"

	"github.com/ssantosv/wslkit/internal/errx"
	"github.com/ssantosv/wslkit/pkg/api"
)

// GuestConf is a typed view over /etc/wsl.conf. Boolean settings default
// to true when absent, matching how WSL itself treats them.
type GuestConf struct {
	Doc *Document
}

// ParseGuestConf parses guest init-config text.
func ParseGuestConf(data []byte) *GuestConf {
	return &GuestConf{Doc: Parse(data)}
}

func (c *GuestConf) AutomountEnabled() bool {
	return c.boolOr("automount", "enabled", true)
}

func (c *GuestConf) AutomountRoot() string {
	return c.stringOr("automount", "root", "/mnt")
}

func (c *GuestConf) AutomountOptions() string {
	return c.stringOr("automount", "options", "")
}

func (c *GuestConf) Hostname() string {
	return c.stringOr("network", "hostname", "")
}

func (c *GuestConf) GenerateHosts() bool {
	return c.boolOr("network", "generateHosts", true)
}

func (c *GuestConf) GenerateResolvConf() bool {
	return c.boolOr("network", "generateResolvConf", true)
}

func (c *GuestConf) InteropEnabled() bool {
	return c.boolOr("interop", "enabled", true)
}

func (c *GuestConf) SystemdEnabled() bool {
	return c.boolOr("boot", "systemd", true)
}

func (c *GuestConf) UseWindowsTimezone() bool {
	return c.boolOr("useWindowsTimezone", "enabled", true)
}

func (c *GuestConf) DefaultUser() string {
	return c.stringOr("user", "default", "")
}

func (c *GuestConf) stringOr(section, key, fallback string) string {
	return stringOr(c.Doc, section, key, fallback)
}

func (c *GuestConf) boolOr(section, key string, fallback bool) bool {
	return boolOr(c.Doc, section, key, fallback)
}

func stringOr(doc *Document, section, key, fallback string) string {
	if v, ok := doc.Get(section, key); ok {
		return v
	}
	return fallback
}

func boolOr(doc *Document, section, key string, fallback bool) bool {
	v, ok := doc.Get(section, key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(v) {
	case "true":
		return true
	case "false":
		return false
	default:
		return fallback
	}
}

// HostConf is a typed view over ~/.wslconfig. Resource limits live in the
// [wsl2] section; values keep their literal text with size suffixes.
type HostConf struct {
	Doc *Document
}

// ParseHostConf parses host resource-limit config text.
func ParseHostConf(data []byte) *HostConf {
	return &HostConf{Doc: Parse(data)}
}

// Memory returns the raw memory limit (for example "2GB"), empty when unset.
func (c *HostConf) Memory() string {
	v, _ := c.Doc.Get("wsl2", "memory")
	return v
}

// MemoryBytes returns the memory limit in bytes, 0 when unset.
func (c *HostConf) MemoryBytes() (int64, error) {
	v := c.Memory()
	if v == "" {
		return 0, nil
	}
	return ParseSize(v)
}

// Processors returns the vCPU limit, 0 when unset or unparsable.
func (c *HostConf) Processors() int {
	v, ok := c.Doc.Get("wsl2", "processors")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Swap returns the raw swap size, empty when unset.
func (c *HostConf) Swap() string {
	v, _ := c.Doc.Get("wsl2", "swap")
	return v
}

func (c *HostConf) LocalhostForwarding() bool {
	return boolOr(c.Doc, "wsl2", "localhostForwarding", true)
}

func (c *HostConf) GUIApplications() bool {
	return boolOr(c.Doc, "wsl2", "guiApplications", true)
}

var sizeSuffixes = []struct {
	suffix string
	factor int64
}{
	{"TB", 1 << 40},
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize converts a size literal with an optional binary suffix
// ("2GB", "512MB", "1024") into bytes.
func ParseSize(v string) (int64, error) {
	s := strings.TrimSpace(v)
	factor := int64(1)
	upper := strings.ToUpper(s)
	for _, sf := range sizeSuffixes {
		if strings.HasSuffix(upper, sf.suffix) {
			factor = sf.factor
			s = strings.TrimSpace(s[:len(s)-len(sf.suffix)])
			break
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, errx.With(api.ErrInvalidConfig, ": size literal %q", v)
	}
	return n * factor, nil
}
