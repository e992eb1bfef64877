package blocking

import "testing"

type fakeLister struct {
	procs []Process
	err   error
}

func (f fakeLister) Processes() ([]Process, error) {
	return f.procs, f.err
}

func TestFindRunningMatchesName(t *testing.T) {
	lister := fakeLister{procs: []Process{
		{PID: 101, Name: "Safari", Cmdline: "/Applications/Safari.app/Contents/MacOS/Safari"},
		{PID: 102, Name: "Finder", Cmdline: "/System/Library/CoreServices/Finder.app/Contents/MacOS/Finder"},
	}}

	matches := FindRunning(lister, "Safari")
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].PID != 101 {
		t.Errorf("expected pid 101, got %d", matches[0].PID)
	}
}

func TestFindRunningMatchesCmdline(t *testing.T) {
	lister := fakeLister{procs: []Process{
		{PID: 201, Name: "com.apple.WebKit.WebContent", Cmdline: "/usr/libexec/webkitd com.apple.Safari"},
	}}

	if len(FindRunning(lister, "Safari", "com.apple.Safari")) != 1 {
		t.Error("expected cmdline substring to match")
	}
}

func TestFindRunningCaseSensitive(t *testing.T) {
	lister := fakeLister{procs: []Process{
		{PID: 301, Name: "safari-lookalike", Cmdline: "safari-lookalike"},
	}}

	if len(FindRunning(lister, "Safari")) != 0 {
		t.Error("matching must be case-sensitive")
	}
}

func TestIsSafariRunning(t *testing.T) {
	running, matches := IsSafariRunning(fakeLister{procs: []Process{
		{PID: 401, Name: "Safari", Cmdline: ""},
		{PID: 402, Name: "helper", Cmdline: "helper --bundle com.apple.Safari"},
	}})
	if !running {
		t.Fatal("expected Safari to be reported running")
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matching processes, got %d", len(matches))
	}

	running, matches = IsSafariRunning(fakeLister{procs: []Process{
		{PID: 403, Name: "Mail", Cmdline: "/Applications/Mail.app/Contents/MacOS/Mail"},
	}})
	if running {
		t.Error("expected Safari not running")
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %d", len(matches))
	}
}

func TestFindRunningListerError(t *testing.T) {
	lister := fakeLister{err: errFake}
	if got := FindRunning(lister, "Safari"); got != nil {
		t.Errorf("expected nil matches on lister error, got %v", got)
	}
}

var errFake = &listError{}

type listError struct{}

func (*listError) Error() string { return "process table unavailable" }

func TestSafariGate(t *testing.T) {
	tests := []struct {
		running bool
		force   bool
		want    Decision
	}{
		{running: false, force: false, want: DecisionInstall},
		{running: false, force: true, want: DecisionInstall},
		{running: true, force: true, want: DecisionForced},
		{running: true, force: false, want: DecisionWithheld},
	}

	for _, tt := range tests {
		if got := SafariGate(tt.running, tt.force); got != tt.want {
			t.Errorf("SafariGate(%v, %v) = %v, want %v", tt.running, tt.force, got, tt.want)
		}
	}
}

func TestSafariGateIdempotent(t *testing.T) {
	first := SafariGate(true, false)
	second := SafariGate(true, false)
	if first != second {
		t.Errorf("gate decision changed between evaluations: %v then %v", first, second)
	}
	if first.Allowed() {
		t.Error("withheld decision must not allow installation")
	}
}

func TestDecisionAllowed(t *testing.T) {
	if !DecisionInstall.Allowed() || !DecisionForced.Allowed() {
		t.Error("install and forced decisions must allow installation")
	}
	if DecisionWithheld.Allowed() {
		t.Error("withheld decision must not allow installation")
	}
}

func TestSystemListerContainsSelf(t *testing.T) {
	procs, err := SystemLister{}.Processes()
	if err != nil {
		t.Fatalf("failed to read process table: %v", err)
	}
	if len(procs) == 0 {
		t.Error("process table should contain at least one process")
	}
}
