package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Заполняются через -ldflags "-X .../internal/version.BuildDate=...".
// Без ldflags коммит берется из метаданных VCS, которые вшивает go build.
var (
	BuildDate   string // YYYY-MM-DD (UTC)
	BuildCommit string
	BuildBranch string
	BuildCI     string
)

// Номер сборки - дни от начала серии протокола '$'.
var buildEpoch = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)

// BuildInfo - метаданные сборки для лога и /version.
type BuildInfo struct {
	Build  int    `json:"build"`
	Date   string `json:"date,omitempty"`
	Commit string `json:"commit"`
	Branch string `json:"branch"`
	CI     string `json:"ci"`
	Go     string `json:"go"`
	// Error - почему номер сборки не посчитан; тогда Build == 0.
	Error string `json:"error,omitempty"`
}

// BuildNumber - число дней от эпохи до date.
func BuildNumber(date string) (int, error) {
	if date == "" {
		return 0, fmt.Errorf("build date is empty")
	}
	t, err := time.ParseInLocation(time.DateOnly, date, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid build date %q: %w", date, err)
	}
	if t.Before(buildEpoch) {
		return 0, fmt.Errorf("build date %s is before %s", date, buildEpoch.Format(time.DateOnly))
	}
	// обе даты в UTC, переходов времени нет
	return int(t.Sub(buildEpoch).Hours()) / 24, nil
}

// Info собирает метаданные текущего бинарника.
func Info() BuildInfo {
	info := BuildInfo{
		Date:   BuildDate,
		Commit: coalesce(BuildCommit, vcsRevision(), "unknown"),
		Branch: coalesce(BuildBranch, "unknown"),
		CI:     coalesce(BuildCI, "local"),
		Go:     runtime.Version(),
	}
	n, err := BuildNumber(BuildDate)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Build = n
	return info
}

// String - строка для лога при старте.
func String() string {
	info := Info()
	if info.Error != "" {
		return fmt.Sprintf("Build unknown (%s) commit[%s] %s", info.Error, info.Commit, info.Go)
	}
	return fmt.Sprintf("Build %d (%s) commit[%s] branch[%s] ci[%s] %s",
		info.Build, info.Date, info.Commit, info.Branch, info.CI, info.Go)
}

func vcsRevision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
