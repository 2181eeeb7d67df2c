package store

import (
	"context"
	"errors"
	"testing"
)

func seedShow(t *testing.T, s *MemoryShowStore, name string, year int16) Show {
	t.Helper()
	sh, err := s.Create(context.Background(), Show{Name: name, ReleaseYear: year, Description: name + " desc", ImageURL: "http://img/" + name, NumEpisodes: 10})
	if err != nil {
		t.Fatalf("seed show %q: %v", name, err)
	}
	return sh
}

func TestMemoryShowStore_CreateRoundTrip(t *testing.T) {
	s := NewMemoryShowStore()
	ctx := context.Background()

	created := seedShow(t, s, "The Wire", 2002)
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected assigned created_at")
	}

	found, err := s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	// Equal on all fields; created_at is server-assigned on create.
	if found != created {
		t.Fatalf("round trip mismatch: %+v vs %+v", found, created)
	}
}

func TestMemoryShowStore_DuplicateNameYear(t *testing.T) {
	s := NewMemoryShowStore()
	ctx := context.Background()

	seedShow(t, s, "The Wire", 2002)

	_, err := s.Create(ctx, Show{Name: "the wire", ReleaseYear: 2002})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for case-insensitive duplicate, got %v", err)
	}

	// Same name, different year is a different show.
	if _, err := s.Create(ctx, Show{Name: "The Wire", ReleaseYear: 2020}); err != nil {
		t.Fatalf("different year should not conflict: %v", err)
	}
}

func TestMemoryShowStore_FindByName(t *testing.T) {
	s := NewMemoryShowStore()
	ctx := context.Background()

	seedShow(t, s, "Breaking Bad", 2008)
	seedShow(t, s, "Better Call Saul", 2015)

	got, err := s.FindByName(ctx, "break")
	if err != nil {
		t.Fatalf("find by name: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Breaking Bad" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMemoryShowStore_FindByGenre(t *testing.T) {
	s := NewMemoryShowStore()
	ctx := context.Background()

	crime := seedShow(t, s, "The Wire", 2002)
	seedShow(t, s, "The Office", 2005)
	s.SetGenres(crime.ID, "Crime", "Drama")

	got, err := s.FindByGenre(ctx, "Crime")
	if err != nil {
		t.Fatalf("find by genre: %v", err)
	}
	if len(got) != 1 || got[0].ID != crime.ID {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestMemoryShowStore_UpdateMissing(t *testing.T) {
	s := NewMemoryShowStore()
	err := s.Update(context.Background(), Show{ID: 99, Name: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryUserStore_CreateAndCredentials(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	u, err := s.Create(ctx, NewUser{Name: "Alice", Username: "alice", Email: "alice@x.com", PasswordHash: "$2a$fakehash"}, "ROLE_USER")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.UserID == 0 {
		t.Fatal("expected assigned id")
	}

	creds, err := s.FindCredentials(ctx, "alice")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds.PasswordHash != "$2a$fakehash" || creds.Role != "ROLE_USER" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	_, err = s.Create(ctx, NewUser{Username: "alice", PasswordHash: "x"}, "ROLE_USER")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for taken username, got %v", err)
	}
}

func TestMemoryUserStore_LookupCaseInsensitive(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	created, err := s.Create(ctx, NewUser{Name: "Alice", Username: "alice", Email: "alice@x.com", PasswordHash: "h"}, "ROLE_USER")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Both lookup paths must resolve any casing to the stored row, the
	// same way the Postgres queries match on lower(username).
	u, err := s.FindByUsername(ctx, "ALICE")
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if u.UserID != created.UserID || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}

	creds, err := s.FindCredentials(ctx, "Alice")
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if creds.UserID != created.UserID {
		t.Fatalf("unexpected credentials: %+v", creds)
	}

	if err := s.SetRoleByUsername(ctx, "aLiCe", "ROLE_ADMIN"); err != nil {
		t.Fatalf("set role: %v", err)
	}
	creds, _ = s.FindCredentials(ctx, "alice")
	if creds.Role != "ROLE_ADMIN" {
		t.Fatalf("expected role change to land on the stored row, got %q", creds.Role)
	}

	_, err = s.Create(ctx, NewUser{Username: "Alice", PasswordHash: "h2"}, "ROLE_USER")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for case-variant duplicate, got %v", err)
	}
}

func TestMemoryUserStore_UpdateRenameToTakenUsername(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	_, _ = s.Create(ctx, NewUser{Name: "Alice", Username: "alice", Email: "alice@x.com", PasswordHash: "h"}, "ROLE_USER")
	bob, _ := s.Create(ctx, NewUser{Name: "Bob", Username: "bob", Email: "bob@x.com", PasswordHash: "h"}, "ROLE_USER")

	err := s.Update(ctx, UserUpdate{UserID: bob.UserID, Name: "Bob", Username: "Alice", Email: "bob@x.com"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict renaming onto a taken username, got %v", err)
	}

	// Keeping your own username is not a conflict.
	if err := s.Update(ctx, UserUpdate{UserID: bob.UserID, Name: "Robert", Username: "BOB", Email: "bob@x.com"}); err != nil {
		t.Fatalf("self rename: %v", err)
	}
}

func TestMemoryUserStore_UpdateKeepsHashWhenBlank(t *testing.T) {
	s := NewMemoryUserStore()
	ctx := context.Background()

	u, _ := s.Create(ctx, NewUser{Name: "Alice", Username: "alice", Email: "alice@x.com", PasswordHash: "original-hash"}, "ROLE_USER")

	err := s.Update(ctx, UserUpdate{UserID: u.UserID, Name: "Alice B", Username: "alice", Email: "alice@y.com"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	creds, _ := s.FindCredentials(ctx, "alice")
	if creds.PasswordHash != "original-hash" {
		t.Fatalf("blank password overwrote stored hash: %q", creds.PasswordHash)
	}

	err = s.Update(ctx, UserUpdate{UserID: u.UserID, Name: "Alice B", Username: "alice", Email: "alice@y.com", PasswordHash: "new-hash"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	creds, _ = s.FindCredentials(ctx, "alice")
	if creds.PasswordHash != "new-hash" {
		t.Fatalf("expected new hash, got %q", creds.PasswordHash)
	}
}

func newHistoryFixture(t *testing.T) (*MemoryShowStore, *MemoryWatchHistoryStore, []Show) {
	t.Helper()
	shows := NewMemoryShowStore()
	history := NewMemoryWatchHistoryStore(shows)
	a := seedShow(t, shows, "The Wire", 2002)
	b := seedShow(t, shows, "Breaking Bad", 2008)
	c := seedShow(t, shows, "The Office", 2005)
	return shows, history, []Show{a, b, c}
}

func TestMemoryWatchHistoryStore_MembershipExclusivity(t *testing.T) {
	_, history, shows := newHistoryFixture(t)
	ctx := context.Background()
	userID := 1

	in, err := history.Contains(ctx, userID, shows[0].ID)
	if err != nil || in {
		t.Fatalf("expected absent pair, got in=%v err=%v", in, err)
	}

	if err := history.Insert(ctx, userID, shows[0].ID, StatusWantToWatch); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if in, _ := history.Contains(ctx, userID, shows[0].ID); !in {
		t.Fatal("expected pair present after insert")
	}

	if err := history.Insert(ctx, userID, shows[0].ID, StatusAlreadyWatched); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate pair, got %v", err)
	}

	if err := history.Delete(ctx, userID, shows[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if in, _ := history.Contains(ctx, userID, shows[0].ID); in {
		t.Fatal("expected pair absent immediately after delete")
	}
}

func TestMemoryWatchHistoryStore_IdempotentStatusOverwrite(t *testing.T) {
	_, history, shows := newHistoryFixture(t)
	ctx := context.Background()
	userID := 1

	if err := history.Insert(ctx, userID, shows[1].ID, StatusNotWatched); err != nil {
		t.Fatalf("insert: %v", err)
	}

	statuses := []WatchStatus{StatusWantToWatch, StatusCurrentlyWatching, StatusAlreadyWatched, StatusAlreadyWatched}
	for _, st := range statuses {
		if err := history.UpdateStatus(ctx, userID, shows[1].ID, st); err != nil {
			t.Fatalf("update to %q: %v", st, err)
		}
	}

	items, err := history.ListByUser(ctx, userID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one row after repeated updates, got %d", len(items))
	}
	if items[0].Status != StatusAlreadyWatched {
		t.Fatalf("expected last-written status, got %q", items[0].Status)
	}
}

func TestMemoryWatchHistoryStore_GetAllSuperset(t *testing.T) {
	_, history, shows := newHistoryFixture(t)
	ctx := context.Background()
	userID := 1

	if err := history.Insert(ctx, userID, shows[0].ID, StatusCurrentlyWatching); err != nil {
		t.Fatalf("insert: %v", err)
	}

	own, err := history.ListByUser(ctx, userID, false)
	if err != nil {
		t.Fatalf("list own: %v", err)
	}
	full, err := history.ListByUser(ctx, userID, true)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}

	if len(full) != len(shows) {
		t.Fatalf("full projection must cover the catalog: got %d, want %d", len(full), len(shows))
	}

	fullByID := make(map[int]WatchStatus, len(full))
	for _, item := range full {
		fullByID[item.ShowID] = item.Status
	}
	for _, item := range own {
		st, ok := fullByID[item.ShowID]
		if !ok {
			t.Fatalf("own row %d missing from full projection", item.ShowID)
		}
		if st != item.Status {
			t.Fatalf("status mismatch for show %d: %q vs %q", item.ShowID, st, item.Status)
		}
	}
	// Shows without a row project as Not Watched.
	for _, sh := range shows[1:] {
		if fullByID[sh.ID] != StatusNotWatched {
			t.Fatalf("expected default status for show %d, got %q", sh.ID, fullByID[sh.ID])
		}
	}
}

func TestMemoryWatchHistoryStore_UpdateAndDeleteMissing(t *testing.T) {
	_, history, shows := newHistoryFixture(t)
	ctx := context.Background()

	if err := history.UpdateStatus(ctx, 1, shows[0].ID, StatusAlreadyWatched); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := history.Delete(ctx, 1, shows[0].ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
