package command

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOK    bool
		wantName  Name
		wantParam string
	}{
		{
			name:      "slash checkin with note",
			input:     "/checkin working from home",
			wantOK:    true,
			wantName:  CheckIn,
			wantParam: "working from home",
		},
		{
			name:     "slash status without param",
			input:    "/status",
			wantOK:   true,
			wantName: Status,
		},
		{
			name:   "plain greeting is not a command",
			input:  "hello",
			wantOK: false,
		},
		{
			name:      "bare checkout with note",
			input:     "checkout heading out",
			wantOK:    true,
			wantName:  CheckOut,
			wantParam: "heading out",
		},
		{
			name:     "vacation stub command",
			input:    "vacation",
			wantOK:   true,
			wantName: Vacation,
		},
		{
			name:      "param is trimmed",
			input:     "checkin   office  ",
			wantOK:    true,
			wantName:  CheckIn,
			wantParam: "office",
		},
		{
			name:     "mixed case command",
			input:    "CheckIn",
			wantOK:   true,
			wantName: CheckIn,
		},
		{
			name:   "command must start the message",
			input:  "today I will checkin late",
			wantOK: false,
		},
		{
			name:   "prefix of a command is not a command",
			input:  "check in",
			wantOK: false,
		},
		{
			name:   "empty input",
			input:  "",
			wantOK: false,
		},
		{
			name:   "whitespace only",
			input:  "   ",
			wantOK: false,
		},
		{
			name:      "newline separates command from param",
			input:     "checkout\nlong day",
			wantOK:    true,
			wantName:  CheckOut,
			wantParam: "long day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", cmd.Name, tt.wantName)
			}
			if cmd.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", cmd.Param, tt.wantParam)
			}
		})
	}
}

func TestCommand_HasParam(t *testing.T) {
	cmd, ok := Parse("/checkin office")
	if !ok || !cmd.HasParam() {
		t.Error("checkin with note should have a param")
	}

	cmd, ok = Parse("/status")
	if !ok || cmd.HasParam() {
		t.Error("bare status should have no param")
	}
}
