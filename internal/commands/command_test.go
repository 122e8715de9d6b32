package commands

import (
	"errors"
	"testing"

	"github.com/habitforge/habitd/internal/model"
)

func TestParseAdd(t *testing.T) {
	cmd, err := Parse("/add Drink Water #health")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeAdd || cmd.Add == nil {
		t.Fatalf("unexpected command: %#v", cmd)
	}
	if cmd.Add.Name != "Drink Water" {
		t.Fatalf("unexpected name: %q", cmd.Add.Name)
	}
	if cmd.Add.Category != model.CategoryHealth {
		t.Fatalf("unexpected category: %q", cmd.Add.Category)
	}
}

func TestParseAddDefaultsToPersonal(t *testing.T) {
	cmd, err := Parse("add Morning run")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Add.Name != "Morning run" || cmd.Add.Category != model.CategoryPersonal {
		t.Fatalf("unexpected args: %#v", cmd.Add)
	}
}

func TestParseAddUnknownCategory(t *testing.T) {
	_, err := Parse("add Run #sleep")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got: %v", err)
	}
}

func TestParseTargetedCommands(t *testing.T) {
	cases := []struct {
		input string
		typ   Type
	}{
		{"done selected", TypeDone},
		{"progress selected", TypeProgress},
		{"delete selected", TypeDelete},
	}
	for _, tc := range cases {
		cmd, err := Parse(tc.input)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.input, err)
		}
		if cmd.Type != tc.typ {
			t.Fatalf("parse %q: expected type %s, got %s", tc.input, tc.typ, cmd.Type)
		}
		var target string
		switch tc.typ {
		case TypeDone:
			target = cmd.Done.Target
		case TypeProgress:
			target = cmd.Progress.Target
		case TypeDelete:
			target = cmd.Delete.Target
		}
		if target != TargetSelected {
			t.Fatalf("parse %q: unexpected target %q", tc.input, target)
		}
	}
}

func TestParseRemind(t *testing.T) {
	cmd, err := Parse("remind selected 07:30")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Remind.Target != TargetSelected || cmd.Remind.Time != "07:30" {
		t.Fatalf("unexpected args: %#v", cmd.Remind)
	}

	_, err = Parse("remind selected 7:30am")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid_argument for bad time, got: %v", err)
	}
}

func TestParseNote(t *testing.T) {
	cmd, err := Parse("note felt strong after the workout")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Note.Text != "felt strong after the workout" {
		t.Fatalf("unexpected text: %q", cmd.Note.Text)
	}
}

func TestParseReset(t *testing.T) {
	cmd, err := Parse("reset")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.Type != TypeReset {
		t.Fatalf("unexpected type: %s", cmd.Type)
	}
}

func TestParseRejectsEmptyAndUnknown(t *testing.T) {
	var cmdErr *CommandError

	_, err := Parse("   ")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input, got: %v", err)
	}

	_, err = Parse("/")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty_input for bare slash, got: %v", err)
	}

	_, err = Parse("teleport home")
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown_command, got: %v", err)
	}
}

func TestExecuteDispatches(t *testing.T) {
	cmd, err := Parse("add Stretch #fitness")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(args AddArgs) (Result, error) {
			called = true
			if args.Name != "Stretch" || args.Category != model.CategoryFitness {
				t.Fatalf("unexpected args: %#v", args)
			}
			return Result{Message: "added Stretch"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called || res.Message != "added Stretch" {
		t.Fatalf("handler not invoked correctly: %#v", res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("reset")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	_, err = Execute(cmd, Handlers{})
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected handler_missing, got: %v", err)
	}
}
