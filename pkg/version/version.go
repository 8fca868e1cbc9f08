package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

const devVersion = "0.0.0-dev"

func init() {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		applyBuildSettings(bi.Settings)
	}
}

// applyBuildSettings preenche Version/Commit/BuildTime a partir das settings vcs.*
// embutidas pelo Go, sem sobrescrever o que veio por ldflags.
func applyBuildSettings(settings []debug.BuildSetting) {
	if Version != "" && Version != devVersion {
		return
	}

	values := make(map[string]string, len(settings))
	for _, s := range settings {
		values[s.Key] = s.Value
	}

	if rev := values["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := values["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	if tag := strings.TrimPrefix(values["vcs.tag"], "v"); tag != "" {
		Version = tag
		if strings.EqualFold(values["vcs.modified"], "true") {
			Version += "-dirty"
		}
	}
}

// FormatVersion retorna a versão com commit e horário de build quando conhecidos.
// Ex.: "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = devVersion
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case Commit == "":
		return fmt.Sprintf("%s (built at: %s)", ver, BuildTime)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}
