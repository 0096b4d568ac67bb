package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNumber(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		want    int
		wantErr bool
	}{
		{name: "epoch", date: "2018-01-01", want: 0},
		{name: "next day", date: "2018-01-02", want: 1},
		{name: "one year", date: "2019-01-01", want: 365},
		{name: "over leap year 2020", date: "2021-01-01", want: 1096},
		{name: "before epoch", date: "2017-12-31", wantErr: true},
		{name: "invalid", date: "01.01.2018", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildNumber(tt.date)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// withBuild подменяет метаданные сборки на время теста.
func withBuild(t *testing.T, date, commit string) {
	t.Helper()
	oldDate, oldCommit := BuildDate, BuildCommit
	t.Cleanup(func() { BuildDate, BuildCommit = oldDate, oldCommit })
	BuildDate, BuildCommit = date, commit
}

func TestInfo(t *testing.T) {
	withBuild(t, "2018-01-11", "abc123")
	info := Info()
	assert.Equal(t, 10, info.Build)
	assert.Empty(t, info.Error)
	assert.Equal(t, "Build 10 (2018-01-11) commit[abc123] branch[unknown] ci[local] "+runtime.Version(), String())

	withBuild(t, "", "abc123")
	info = Info()
	assert.Zero(t, info.Build)
	assert.NotEmpty(t, info.Error)
	assert.Contains(t, String(), "Build unknown")
}
