package envfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

// unsetForTest clears keys for the duration of the test and restores them afterwards.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_MissingFileIsNoop(t *testing.T) {
	overlay, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if overlay.Found {
		t.Fatalf("expected Found=false for missing file")
	}
	if len(overlay.Applied) != 0 {
		t.Fatalf("expected nothing applied, got %v", overlay.Applied)
	}
}

func TestLoad_ProcessEnvironmentWins(t *testing.T) {
	t.Setenv("ENVFILE_TEST_DB_NAME", "from-process")
	// register for cleanup so the file-provided value does not leak into other tests
	t.Setenv("ENVFILE_TEST_DB_USER", "")
	os.Unsetenv("ENVFILE_TEST_DB_USER")

	path := writeEnv(t, "ENVFILE_TEST_DB_NAME=from-file\nENVFILE_TEST_DB_USER=wp\n")

	overlay, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !overlay.Found {
		t.Fatalf("expected Found=true")
	}
	if got := os.Getenv("ENVFILE_TEST_DB_NAME"); got != "from-process" {
		t.Fatalf("process value overwritten, got %q", got)
	}
	if got := os.Getenv("ENVFILE_TEST_DB_USER"); got != "wp" {
		t.Fatalf("expected file value applied, got %q", got)
	}
	if len(overlay.Applied) != 1 || overlay.Applied[0] != "ENVFILE_TEST_DB_USER" {
		t.Fatalf("unexpected applied keys %v", overlay.Applied)
	}
	if len(overlay.Shadowed) != 1 || overlay.Shadowed[0] != "ENVFILE_TEST_DB_NAME" {
		t.Fatalf("unexpected shadowed keys %v", overlay.Shadowed)
	}
}

func TestLoad_EmptyProcessValueStillWins(t *testing.T) {
	t.Setenv("ENVFILE_TEST_EMPTY", "")
	path := writeEnv(t, "ENVFILE_TEST_EMPTY=filled\n")

	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := os.Getenv("ENVFILE_TEST_EMPTY"); got != "" {
		t.Fatalf("expected empty process value kept, got %q", got)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := writeEnv(t, "ENVFILE_TEST_BROKEN=\"never closed\n")

	_, err := Load(path)
	if !errors.Is(err, ErrMalformedEnvFile) {
		t.Fatalf("expected ErrMalformedEnvFile, got %v", err)
	}
}

func TestLoad_DirectoryIsMalformed(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, ErrMalformedEnvFile) {
		t.Fatalf("expected ErrMalformedEnvFile for directory, got %v", err)
	}
}

func TestLoad_NoVariableExpansion(t *testing.T) {
	keys := []string{
		"ENVFILE_TEST_SALT",
		"ENVFILE_TEST_PATHLIKE",
		"ENVFILE_TEST_BRACED",
		"ENVFILE_TEST_BARE",
		"ENVFILE_TEST_LOWER",
		"ENVFILE_TEST_SINGLE",
		"ENVFILE_TEST_ESCAPED",
		"ENVFILE_TEST_SUBSHELL",
		"ENVFILE_TEST_REF",
	}
	unsetForTest(t, keys...)
	path := writeEnv(t, strings.Join([]string{
		`ENVFILE_TEST_SALT="ab$CD"`,
		`ENVFILE_TEST_PATHLIKE="x$HOME-y"`,
		`ENVFILE_TEST_BRACED="a${ENVFILE_TEST_SALT}b"`,
		`ENVFILE_TEST_BARE=pa$WORD`,
		`ENVFILE_TEST_LOWER=pa$word`,
		`ENVFILE_TEST_SINGLE='q$X'`,
		`ENVFILE_TEST_ESCAPED="e\$Y"`,
		`ENVFILE_TEST_SUBSHELL="$(id)"`,
		`ENVFILE_TEST_REF=$ENVFILE_TEST_LOWER`,
	}, "\n")+"\n")

	if _, err := Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}

	want := map[string]string{
		"ENVFILE_TEST_SALT":     "ab$CD",
		"ENVFILE_TEST_PATHLIKE": "x$HOME-y",
		"ENVFILE_TEST_BRACED":   "a${ENVFILE_TEST_SALT}b",
		"ENVFILE_TEST_BARE":     "pa$WORD",
		"ENVFILE_TEST_LOWER":    "pa$word",
		"ENVFILE_TEST_SINGLE":   "q$X",
		"ENVFILE_TEST_ESCAPED":  "e$Y",
		"ENVFILE_TEST_SUBSHELL": "$(id)",
		"ENVFILE_TEST_REF":      "$ENVFILE_TEST_LOWER",
	}
	for k, v := range want {
		if got := os.Getenv(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestLoad_RejectsBeforeApplying(t *testing.T) {
	unsetForTest(t, "ENVFILE_TEST_A_GOOD", "ENVFILE_TEST_Z_NUL")
	path := writeEnv(t, "ENVFILE_TEST_A_GOOD=1\nENVFILE_TEST_Z_NUL=a\x00b\n")

	overlay, err := Load(path)
	if !errors.Is(err, ErrMalformedEnvFile) {
		t.Fatalf("expected ErrMalformedEnvFile, got %v", err)
	}
	if overlay != nil {
		t.Fatalf("expected no overlay on failure")
	}
	if _, ok := os.LookupEnv("ENVFILE_TEST_A_GOOD"); ok {
		t.Fatalf("no variable may be applied when the file is rejected")
	}
}
