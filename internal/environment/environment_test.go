package environment

import "testing"

// mapLookup builds a LookupFunc over a fixed variable set.
func mapLookup(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestProfileResolution(t *testing.T) {
	tests := []struct {
		name     string
		vars     map[string]string
		override string
		want     string
	}{
		{
			name: "default_prod",
			vars: map[string]string{},
			want: "prod",
		},
		{
			name: "env_var_selects_dev",
			vars: map[string]string{ProfileEnvVar: "dev"},
			want: "dev",
		},
		{
			name: "empty_env_var_falls_back_to_default",
			vars: map[string]string{ProfileEnvVar: ""},
			want: "prod",
		},
		{
			name:     "override_wins_over_env",
			vars:     map[string]string{ProfileEnvVar: "prod"},
			override: "dev",
			want:     "dev",
		},
		{
			name:     "override_wins_over_default",
			vars:     map[string]string{},
			override: "dev",
			want:     "dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := New(mapLookup(tt.vars))
			if tt.override != "" {
				env.SetProfile(tt.override)
			}
			if got := env.Profile(); got != tt.want {
				t.Errorf("Profile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsDevProfile(t *testing.T) {
	env := New(mapLookup(map[string]string{ProfileEnvVar: "dev"}))
	if !env.IsDevProfile() {
		t.Error("IsDevProfile() = false with dev profile env var")
	}

	env = New(mapLookup(nil))
	if env.IsDevProfile() {
		t.Error("IsDevProfile() = true with no profile configured")
	}
}

func TestIsTestLaunchMode(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want bool
	}{
		{
			name: "unset",
			vars: map[string]string{},
			want: false,
		},
		{
			name: "test_mode",
			vars: map[string]string{LaunchModeEnvVar: "test"},
			want: true,
		},
		{
			name: "other_mode",
			vars: map[string]string{LaunchModeEnvVar: "normal"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := New(mapLookup(tt.vars))
			if got := env.IsTestLaunchMode(); got != tt.want {
				t.Errorf("IsTestLaunchMode() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestImportExportMode(t *testing.T) {
	env := New(mapLookup(nil))
	if env.IsImportExportMode() {
		t.Error("IsImportExportMode() = true before being set")
	}

	env.SetImportExportMode(true)
	if !env.IsImportExportMode() {
		t.Error("IsImportExportMode() = false after SetImportExportMode(true)")
	}
}

func TestResolvedMode(t *testing.T) {
	env := New(mapLookup(nil))
	if got := env.ResolvedMode(); got != "production" {
		t.Errorf("ResolvedMode() = %q, want production", got)
	}

	env.SetProfile(DevProfile)
	if got := env.ResolvedMode(); got != "development" {
		t.Errorf("ResolvedMode() = %q, want development", got)
	}
}

func TestGetenv(t *testing.T) {
	env := New(mapLookup(map[string]string{"KEYCLOAK_ADMIN": "admin"}))

	if got := env.Getenv("KEYCLOAK_ADMIN"); got != "admin" {
		t.Errorf("Getenv(KEYCLOAK_ADMIN) = %q, want admin", got)
	}
	if got := env.Getenv("MISSING"); got != "" {
		t.Errorf("Getenv(MISSING) = %q, want empty", got)
	}
}

func TestNewNilLookup(t *testing.T) {
	env := New(nil)
	if got := env.Profile(); got != DefaultProfile {
		t.Errorf("Profile() with nil lookup = %q, want %q", got, DefaultProfile)
	}
}
