package handlers

// outputMaxBytes caps bytes retained from a subprocess stream so a
// runaway command cannot balloon the tool result.
const outputMaxBytes = 1024 * 1024 // 1 MiB

// limitOutput truncates a stream to outputMaxBytes and reports whether
// truncation occurred.
func limitOutput(output []byte) ([]byte, bool) {
	if len(output) <= outputMaxBytes {
		return output, false
	}
	return output[:outputMaxBytes], true
}

// splitOutputBudget caps stdout and stderr against a shared budget. On
// contention stdout gets a third and stderr the rest; unused stderr
// capacity flows back to stdout.
func splitOutputBudget(stdout, stderr []byte) ([]byte, []byte) {
	total := len(stdout) + len(stderr)
	if total <= outputMaxBytes {
		return stdout, stderr
	}

	stdoutTake := len(stdout)
	if stdoutTake > outputMaxBytes/3 {
		stdoutTake = outputMaxBytes / 3
	}
	stderrTake := len(stderr)
	if remaining := outputMaxBytes - stdoutTake; stderrTake > remaining {
		stderrTake = remaining
	}
	if spare := outputMaxBytes - stdoutTake - stderrTake; spare > 0 {
		extra := len(stdout) - stdoutTake
		if extra > spare {
			extra = spare
		}
		stdoutTake += extra
	}
	return stdout[:stdoutTake], stderr[:stderrTake]
}
