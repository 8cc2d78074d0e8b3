package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	algos := []string{"fast", "linear"}

	tests := []struct {
		shell    string
		contains []string
	}{
		{"bash", []string{"complete -F _fibdrv_completions fibdrv", "-mode)", "sweep calc verify serve repl", "fast linear all", "-output|-o)"}},
		{"zsh", []string{"#compdef fibdrv", "'-algo[Engine to use]:engine:(fast linear all)'", "'-output[Output file path]:file:_files'", "'-shared[Allow several device sessions at once]'"}},
		{"fish", []string{"complete -c fibdrv -f", "-o algo -d 'Engine to use' -xa 'fast linear all'", "-o o -d 'Output file path' -rF", "-o n -d 'Fibonacci index to calculate' -x"}},
	}

	for _, tt := range tests {
		t.Run(tt.shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, tt.shell, algos); err != nil {
				t.Fatalf("GenerateCompletion(%s): %v", tt.shell, err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("%s script missing %q", tt.shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "tcsh", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell: tcsh") {
		t.Errorf("err = %v", err)
	}
}
