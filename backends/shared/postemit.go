package shared

import (
	"os/exec"
)

// RunToolchain invokes a target's native compiler/assembler/runner the way
// the teacher's own integration tests shell out to an external binary
// (exec.Command(...).CombinedOutput()), returning combined stdout+stderr
// on failure so PostEmit can hand it back to the caller as diagnostic text
// (§6, §2 step 6).
func RunToolchain(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), err
	}
	return "", nil
}
