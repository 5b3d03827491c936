package cli

import (
	"errors"
	"reflect"
	"testing"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		want        []string
		expectError bool
	}{
		{
			name: "empty_args_rewritten_to_help",
			args: []string{},
			want: []string{"--help"},
		},
		{
			name: "nil_args_rewritten_to_help",
			args: nil,
			want: []string{"--help"},
		},
		{
			name: "plain_command_passes_through",
			args: []string{"start"},
			want: []string{"start"},
		},
		{
			name: "options_pass_through_unchanged",
			args: []string{"start", "--optimized", "--log-level=DEBUG"},
			want: []string{"start", "--optimized", "--log-level=DEBUG"},
		},
		{
			name: "bare_double_dash_passes_through",
			args: []string{"start", "--"},
			want: []string{"start", "--"},
		},
		{
			name: "single_dash_flags_not_checked",
			args: []string{"start", "-v"},
			want: []string{"start", "-v"},
		},
		{
			name:        "empty_option_name_rejected",
			args:        []string{"start", "--=value"},
			expectError: true,
		},
		{
			name:        "whitespace_in_option_name_rejected",
			args:        []string{"start", "--db path=/tmp/x"},
			expectError: true,
		},
		{
			name:        "tab_in_option_name_rejected",
			args:        []string{"start", "--db\tpath"},
			expectError: true,
		},
		{
			name: "whitespace_in_value_allowed",
			args: []string{"start", "--name=my node"},
			want: []string{"start", "--name=my node"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preprocess(tt.args)

			if tt.expectError {
				if err == nil {
					t.Fatalf("Preprocess(%v) expected error, got %v", tt.args, got)
				}
				var usageErr *UsageError
				if !errors.As(err, &usageErr) {
					t.Errorf("Preprocess(%v) error type = %T, want *UsageError", tt.args, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Preprocess(%v) unexpected error: %v", tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Preprocess(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestPreprocessDoesNotMutateInput(t *testing.T) {
	args := []string{"start", "--optimized"}
	got, err := Preprocess(args)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got[0] = "mutated"
	if args[0] != "start" {
		t.Errorf("Preprocess aliased its input slice: args[0] = %q", args[0])
	}
}
