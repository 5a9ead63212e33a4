// Package shellsetup prints the shell function that lets rtab change the
// caller's directory on exit.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"text/template"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/pkg/errors"
)

// ResultFile is the name rtab writes its final directory to, inside the
// temp directory, keyed by process id.
func ResultFile(pid int) string {
	return fmt.Sprintf("rtab_result_%d.txt", pid)
}

// Options controls snippet generation. Zero values detect from the
// environment.
type Options struct {
	Shell        string
	Executable   string
	DetectParent func() string
}

const posixSnippet = `rtab() {
    if [ "$#" -gt 0 ]; then
        command {{.Exe}} "$@"
        return $?
    fi

    command {{.Exe}} &
    rtab_pid=$!
    wait $rtab_pid

    result_file="${TMPDIR:-/tmp}/rtab_result_$rtab_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        [ -d "$dest" ] && cd "$dest"
    else
        rm -f "$result_file" 2>/dev/null
    fi
}
`

const fishSnippet = `function rtab
    if test (count $argv) -gt 0
        command {{.Exe}} $argv
        return $status
    end

    command {{.Exe}} &
    set rtab_pid $last_pid
    wait $rtab_pid

    set -q TMPDIR; or set TMPDIR /tmp
    set result_file "$TMPDIR/rtab_result_$rtab_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set dest (cat "$result_file" 2>/dev/null)
        test -d "$dest"; and builtin cd "$dest"
    end
    rm -f "$result_file" 2>/dev/null
end
`

const pwshSnippet = `function rtab {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Rest)
    if ($Rest.Count -gt 0) {
        & {{.Exe}} @Rest
        return
    }

    $process = Start-Process -FilePath {{.Exe}} -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path $env:TEMP "rtab_result_$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = (Get-Content $resultFile -Raw -ErrorAction SilentlyContinue).Trim()
            if ($dest -and (Test-Path $dest -PathType Container)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`

var snippets = map[string]*template.Template{
	"sh":   template.Must(template.New("sh").Parse(posixSnippet)),
	"fish": template.Must(template.New("fish").Parse(fishSnippet)),
	"pwsh": template.Must(template.New("pwsh").Parse(pwshSnippet)),
}

// family maps a shell name to the snippet it uses.
func family(shell string) (string, bool) {
	switch shell {
	case "bash", "zsh", "sh", "ksh", "dash", "ash", "mksh":
		return "sh", true
	case "fish":
		return "fish", true
	case "pwsh", "powershell":
		return "pwsh", true
	}
	return "", false
}

// Write renders the snippet for opts.Shell, or the detected shell, to w.
func Write(w io.Writer, opts Options) error {
	shell := NormalizeShellName(opts.Shell)
	if shell == "" {
		shell = detectShell(opts.DetectParent)
	}
	name, ok := family(shell)
	if !ok {
		return errors.Errorf("unsupported shell %q (try bash, zsh, fish or pwsh)", shell)
	}

	exe := opts.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "rtab"
		}
	}

	data := struct{ Exe string }{Exe: quote(name, exe)}
	return errors.Wrapf(snippets[name].Execute(w, data), "couldn't write %s snippet", shell)
}

// quote renders exe as a literal for the snippet family, so nothing in the
// path is expanded by the shell.
func quote(family, exe string) string {
	switch family {
	case "fish":
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(exe) + "'"
	case "pwsh":
		return "'" + strings.ReplaceAll(exe, "'", "''") + "'"
	}
	return "'" + strings.ReplaceAll(exe, "'", `'\''`) + "'"
}

func detectShell(parent func() string) string {
	if parent == nil {
		parent = DetectParentShellName
	}
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent func() string) string {
	if shell := NormalizeShellName(getenv("SHELL")); shell != "" {
		return shell
	}
	if parent != nil {
		if shell := NormalizeShellName(parent()); shell != "" {
			return shell
		}
	}
	if strings.EqualFold(goos, "windows") {
		return "pwsh"
	}
	return "bash"
}

// NormalizeShellName reduces a shell path or command line to its lower-case
// base name, so "/usr/local/bin/fish -l" and `"C:\...\pwsh.exe"` become fish
// and pwsh.
func NormalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	// Windows paths carry backslashes the posix splitter would eat.
	value = strings.ReplaceAll(value, `\`, "/")
	if args, err := shlex.Split(value, true); err == nil && len(args) > 0 {
		value = args[0]
	}

	base := strings.ToLower(path.Base(value))
	base = strings.TrimSuffix(base, ".exe")
	if base == "powershell" {
		return "pwsh"
	}
	if base == "." || base == "/" {
		return ""
	}
	return base
}
