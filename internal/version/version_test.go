package version

import "testing"

func TestInfo(t *testing.T) {
	origVersion, origCommit := Version, Commit
	defer func() { Version, Commit = origVersion, origCommit }()

	Version, Commit = "v1.2.3", "abc1234"
	if got, want := Info(), "v1.2.3 (abc1234)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}

func TestBuild(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, Date
	defer func() { Version, Commit, Date = origVersion, origCommit, origDate }()

	Version, Commit, Date = "v1.2.3", "abc1234", "2026-01-02"
	info := Build()

	if info.GitVersion != "v1.2.3" {
		t.Errorf("Build().GitVersion = %q, want %q", info.GitVersion, "v1.2.3")
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("Build().GitCommit = %q, want %q", info.GitCommit, "abc1234")
	}
	if info.BuildDate != "2026-01-02" {
		t.Errorf("Build().BuildDate = %q, want %q", info.BuildDate, "2026-01-02")
	}
	if info.Name != appName {
		t.Errorf("Build().Name = %q, want %q", info.Name, appName)
	}
}
