package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"

	"github.com/pulsecheck/pulse/internal/config"
	"github.com/pulsecheck/pulse/internal/notifier"
)

// captureStdout runs fn with os.Stdout redirected and returns what it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	runErr := fn()
	w.Close()
	os.Stdout = orig
	return <-done, runErr
}

// pulse runs one command line against db the way main does.
func pulse(t *testing.T, db string, argv ...string) string {
	t.Helper()
	var args CLI
	parser, err := kong.New(&args, options()...)
	if err != nil {
		t.Fatalf("failed to build parser: %v", err)
	}
	ctx, err := parser.Parse(append([]string{"--config", db}, argv...))
	if err != nil {
		t.Fatalf("parse %v: %v", argv, err)
	}
	app, err := newAppContext(&args, ctx.Command(), config.Config{}, nil, notifier.Nop{})
	if err != nil {
		t.Fatalf("setup %v: %v", argv, err)
	}
	defer app.Store.Close()

	out, err := captureStdout(t, func() error { return ctx.Run(app) })
	if err != nil {
		t.Fatalf("pulse %s: %v\n%s", strings.Join(argv, " "), err, out)
	}
	return out
}

func TestEndToEndWorkflow(t *testing.T) {
	db := filepath.Join(t.TempDir(), "pulse", "pulse.db")
	now := time.Now().UTC()
	day := func(offset int) string { return now.AddDate(0, 0, offset).Format("2006-01-02") }

	// 1. Setup
	if out := pulse(t, db, "init"); !strings.Contains(out, "Initialized pulse storage") {
		t.Errorf("init output: %s", out)
	}
	pulse(t, db, "settings", "--timezone", "UTC", "--default-user", "sam")
	pulse(t, db, "clinic", "add", "Corner Clinic", "--distance", "1.5")
	if out := pulse(t, db, "settings", "--list"); !strings.Contains(out, "sam") {
		t.Errorf("settings list output: %s", out)
	}

	// 2. Four low-energy days trigger a nudge on the last one
	var out string
	for i := 3; i >= 0; i-- {
		out = pulse(t, db, "checkin", "--date", day(-i), "--energy", "1", "--mood", "2")
	}
	if !strings.Contains(out, "Streak: 4 day(s)") || !strings.Contains(out, "💡") {
		t.Errorf("last check-in output: %s", out)
	}
	if out := pulse(t, db, "entries"); strings.Count(out, "energy 1") != 4 {
		t.Errorf("entries output: %s", out)
	}

	// 3. Dismiss, then book
	pulse(t, db, "nudge", "dismiss")
	out = pulse(t, db, "nudge", "status")
	if !strings.Contains(out, "Escalation count:  1") || !strings.Contains(out, "Dismissed nudges:  1") {
		t.Errorf("nudge status output: %s", out)
	}

	out = pulse(t, db, "appointment", "book", "--date", day(5), "--time", "09:00")
	if !strings.Contains(out, "✓ Booked") || !strings.Contains(out, "Corner Clinic") {
		t.Errorf("book output: %s", out)
	}
	if out := pulse(t, db, "nudge", "status"); !strings.Contains(out, "Escalation count:  0") || !strings.Contains(out, "Upcoming:") {
		t.Errorf("nudge status after booking: %s", out)
	}
	if out := pulse(t, db, "appointment", "list"); !strings.Contains(out, day(5)+" 09:00") {
		t.Errorf("appointment list output: %s", out)
	}

	// 4. Rewards and backups
	if out := pulse(t, db, "streak"); !strings.Contains(out, "4") {
		t.Errorf("streak output: %s", out)
	}
	if out := pulse(t, db, "backup", "create"); !strings.Contains(out, "✓ Backup created") {
		t.Errorf("backup output: %s", out)
	}
	if out := pulse(t, db, "doctor"); strings.Contains(out, "FAIL") {
		t.Errorf("doctor reported failures: %s", out)
	}
}
