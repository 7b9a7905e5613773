package store_test

import (
	"bytes"
	"errors"
	"testing"

	"emberwallet/internal/domain"
	"emberwallet/internal/store"
)

func TestSeedSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSeedStore(dir)

	seed := bytes.Repeat([]byte{0xab}, 32)
	if err := s.Create("hunter2", seed); err != nil {
		t.Fatalf("create seed: %v", err)
	}
	if !s.Exists() {
		t.Fatal("seed file should exist after create")
	}

	got, err := s.Load("hunter2")
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	if !bytes.Equal(got, seed) {
		t.Fatal("seed mismatch after load")
	}
}

func TestSeedWrongPassphrase(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSeedStore(dir)

	if err := s.Create("correct", []byte("0123456789abcdef0123456789abcdef")); err != nil {
		t.Fatalf("create seed: %v", err)
	}
	_, err := s.Load("wrong")
	if !errors.Is(err, domain.ErrCrypto) {
		t.Fatalf("want crypto error with wrong passphrase, got %v", err)
	}
}

func TestSeedCreateRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	s := store.NewSeedStore(dir)

	seed := []byte("0123456789abcdef0123456789abcdef")
	if err := s.Create("p", seed); err != nil {
		t.Fatalf("create seed: %v", err)
	}
	if err := s.Create("p", seed); !errors.Is(err, store.ErrSeedExists) {
		t.Fatalf("want ErrSeedExists on second create, got %v", err)
	}
}

func TestSeedLoadMissingFile(t *testing.T) {
	s := store.NewSeedStore(t.TempDir())
	if _, err := s.Load("p"); !errors.Is(err, domain.ErrIO) {
		t.Fatalf("want i/o error for missing seed file, got %v", err)
	}
}
