package cron

import (
	"testing"
)

func TestRegister_Jobs(t *testing.T) {
	ran := false
	Register("prunetest", "@every 1h", func(args ...string) {
		ran = true
	})
	defer Unregister("prunetest")

	jobs := Jobs()
	j, ok := jobs["prunetest"]
	if !ok {
		t.Fatal("prunetest not in Jobs()")
	}
	if j.Schedule != "@every 1h" {
		t.Errorf("Schedule = %q, want @every 1h", j.Schedule)
	}
	j.Run()
	if !ran {
		t.Error("Run did not execute")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Register("dupjob", "@hourly", func(...string) {})
	defer Unregister("dupjob")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate name")
		}
	}()
	Register("dupjob", "@daily", func(...string) {})
}

func TestRegister_LockedPanics(t *testing.T) {
	Register("locktest", "@daily", func(...string) {})
	defer Unregister("locktest")

	Jobs() // locks the registry

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic after lock")
		}
		Unregister("afterlock") // unlock again for other tests
	}()
	Register("afterlock", "@daily", func(...string) {})
}

func TestJobs_ReturnsCopy(t *testing.T) {
	Register("copytest", "@weekly", func(...string) {})
	defer Unregister("copytest")

	jobs := Jobs()
	delete(jobs, "copytest")

	if _, ok := Jobs()["copytest"]; !ok {
		t.Error("mutating the returned map reached the registry")
	}
}
