package cli

import "testing"

func TestIsFastStart(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "start_with_optimized",
			args: []string{"start", "--optimized"},
			want: true,
		},
		{
			name: "empty_args",
			args: []string{},
			want: false,
		},
		{
			name: "start_alone",
			args: []string{"start"},
			want: false,
		},
		{
			name: "optimized_alone",
			args: []string{"--optimized"},
			want: false,
		},
		{
			name: "extra_flag_forces_full_dispatch",
			args: []string{"start", "--optimized", "--log-level=DEBUG"},
			want: false,
		},
		{
			name: "other_command_with_optimized",
			args: []string{"export", "--optimized"},
			want: false,
		},
		{
			name: "start_with_other_flag",
			args: []string{"start", "--verbose"},
			want: false,
		},
		{
			name: "optimized_prefix_not_matched",
			args: []string{"start", "--optimized-build"},
			want: false,
		},
		{
			name: "start_dev_with_optimized",
			args: []string{"start-dev", "--optimized"},
			want: false,
		},
		{
			name: "case_sensitive_flag",
			args: []string{"start", "--OPTIMIZED"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFastStart(tt.args); got != tt.want {
				t.Errorf("IsFastStart(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}
