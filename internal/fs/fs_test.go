//go:build windows

package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/windows"
)

func Test_GetFinalPathNameByHandle(t *testing.T) {
	d := t.TempDir()
	// open f via a relative path
	name := t.Name() + ".txt"
	fullPath := filepath.Join(d, name)

	w, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}
	if err := os.Chdir(d); err != nil {
		t.Fatalf("could not chdir to %s: %v", d, err)
	}
	defer os.Chdir(w) //nolint:errcheck

	f, err := os.Create(name)
	if err != nil {
		t.Fatalf("could not open %s: %v", fullPath, err)
	}
	defer f.Close()

	path, err := GetFinalPathNameByHandle(windows.Handle(f.Fd()), GetFinalPathDefaultFlag)
	if err != nil {
		t.Fatalf("could not get final path for %s: %v", fullPath, err)
	}
	if strings.EqualFold(fullPath, path) {
		t.Fatalf("expected %s, got %s", fullPath, path)
	}
}

func Test_CreateFile_OpensExistingFile(t *testing.T) {
	d := t.TempDir()
	fullPath := filepath.Join(d, t.Name()+".txt")
	if err := os.WriteFile(fullPath, []byte("hello"), 0o644); err != nil {
		t.Fatalf("could not create %s: %v", fullPath, err)
	}

	h, err := CreateFile(fullPath, GENERIC_READ, FILE_SHARE_READ, nil, OPEN_EXISTING, FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		t.Fatalf("CreateFile(%s): %v", fullPath, err)
	}
	defer windows.CloseHandle(h) //nolint:errcheck

	if h == windows.InvalidHandle {
		t.Fatalf("CreateFile returned the invalid handle")
	}
}

func Test_CreateFile_MissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.txt")
	_, err := CreateFile(path, GENERIC_READ, FILE_SHARE_READ, nil, OPEN_EXISTING, FILE_ATTRIBUTE_NORMAL, 0)
	if err == nil {
		t.Fatalf("expected an error opening a nonexistent file")
	}
}
