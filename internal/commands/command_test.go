package commands

import (
	"errors"
	"testing"

	"github.com/rohanmehra/habitd/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add water the plants", TypeAdd},
		{"done task-1", TypeDone},
		{"show history", TypeShow},
		{"toggle completed", TypeToggle},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("/add water the plants at:09:00 every:weekly")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "water the plants" {
		t.Fatalf("unexpected title: %q", cmd.Add.Title)
	}
	if cmd.Add.StartTime != "09:00" || cmd.Add.Repeat != model.RepeatWeekly {
		t.Fatalf("unexpected options: %+v", cmd.Add)
	}
}

func TestParseAddOptionsMixedCase(t *testing.T) {
	cmd, err := Parse("/add water the plants At:09:00 Every:Weekly")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.StartTime != "09:00" {
		t.Fatalf("unexpected start time: %q", cmd.Add.StartTime)
	}
	if cmd.Add.Repeat != model.RepeatWeekly {
		t.Fatalf("unexpected repeat: %q", cmd.Add.Repeat)
	}
}

func TestParseAddRejectsUnknownRepeat(t *testing.T) {
	_, err := Parse("/add stretch every:fortnightly")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestParseDoneScope(t *testing.T) {
	cmd, err := Parse("done task-1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Done.Target != "task-1" || cmd.Done.All {
		t.Fatalf("unexpected done args: %+v", cmd.Done)
	}

	cmd, err = Parse("done task-1 all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !cmd.Done.All {
		t.Fatalf("expected all scope: %+v", cmd.Done)
	}

	_, err = Parse("done task-1 tomorrow")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestParseShowSubjects(t *testing.T) {
	for _, subject := range []string{"today", "history"} {
		cmd, err := Parse("show " + subject)
		if err != nil {
			t.Fatalf("parse show %s failed: %v", subject, err)
		}
		if cmd.Show.Subject != subject {
			t.Fatalf("unexpected subject: %q", cmd.Show.Subject)
		}
	}

	_, err := Parse("show everything")
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show today")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
