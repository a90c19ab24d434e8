package lockfile

import (
	"errors"
	"os"
	"testing"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (p *mockProcess) Pid() int           { return p.pid }
func (p *mockProcess) PPid() int          { return 0 }
func (p *mockProcess) Executable() string { return p.executable }

func stubProcesses(t *testing.T, self int, running map[int]string) {
	t.Helper()
	oldFind, oldPid, oldExe := findProcessFunc, getpidFunc, executableFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc, executableFunc = oldFind, oldPid, oldExe
	})

	getpidFunc = func() int { return self }
	executableFunc = func() string { return "streakstep" }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{100: "streakstep"})

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error: %v", err)
	}
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		t.Fatalf("lockfile not written: %v", err)
	}
	if string(content) != "100|streakstep" {
		t.Errorf("lockfile content = %q", content)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(Path(dir)); !os.IsNotExist(err) {
		t.Error("lockfile still present after Release()")
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("200|streakstep"), 0600); err != nil {
		t.Fatal(err)
	}
	stubProcesses(t, 100, map[int]string{200: "streakstep"})

	_, err := Acquire(dir)
	if !errors.Is(err, ErrLocked) {
		t.Errorf("Acquire() error = %v, want ErrLocked", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"dead process", "200|streakstep", map[int]string{}},
		{"pid reused by other program", "200|streakstep", map[int]string{200: "bash"}},
		{"malformed", "garbage", map[int]string{}},
		{"bad pid", "abc|streakstep", map[int]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(Path(dir), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			stubProcesses(t, 100, tt.running)

			lock, err := Acquire(dir)
			if err != nil {
				t.Fatalf("Acquire() error: %v", err)
			}
			if lock.pid != 100 {
				t.Errorf("lock pid = %d", lock.pid)
			}
		})
	}
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{})

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatal(err)
	}
	// another session took over after this one was considered stale
	if err := os.WriteFile(Path(dir), []byte("300|streakstep"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Error("Release() removed a lock owned by another process")
	}

	var nilLock *Lock
	if err := nilLock.Release(); err != nil {
		t.Errorf("nil Release() error: %v", err)
	}
}

func TestHolder(t *testing.T) {
	dir := t.TempDir()
	stubProcesses(t, 100, map[int]string{42: "streakstep"})

	if _, _, err := Holder(Path(dir)); !os.IsNotExist(err) {
		t.Errorf("Holder() on missing file error = %v", err)
	}
	if err := os.WriteFile(Path(dir), []byte("42|streakstep\n"), 0600); err != nil {
		t.Fatal(err)
	}
	pid, alive, err := Holder(Path(dir))
	if err != nil || pid != 42 || !alive {
		t.Errorf("Holder() = %d, %v, %v", pid, alive, err)
	}
}
