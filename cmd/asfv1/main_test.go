package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadSourceStripsUTF8BOM(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.spn")
	if err := os.WriteFile(name, append([]byte{0xEF, 0xBB, 0xBF}, []byte("or 0\n")...), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSource(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "or 0\n" {
		t.Fatalf("got %q, want %q", got, "or 0\n")
	}
}

func TestReadSourceDecodesUTF16LE(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.spn")
	// BOM (FF FE) followed by "or 0\n" as little-endian UTF-16.
	raw := []byte{0xFF, 0xFE}
	for _, r := range "or 0\n" {
		raw = append(raw, byte(r), 0x00)
	}
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSource(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "or 0\n" {
		t.Fatalf("got %q, want %q", got, "or 0\n")
	}
}

func TestReadSourceDecodesUTF16BE(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.spn")
	raw := []byte{0xFE, 0xFF}
	for _, r := range "or 0\n" {
		raw = append(raw, 0x00, byte(r))
	}
	if err := os.WriteFile(name, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSource(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "or 0\n" {
		t.Fatalf("got %q, want %q", got, "or 0\n")
	}
}

func TestReadSourcePlainUTF8Passthrough(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "in.spn")
	if err := os.WriteFile(name, []byte("or 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readSource(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "or 0\n" {
		t.Fatalf("got %q, want %q", got, "or 0\n")
	}
}
