package cli

import "testing"

func TestPlayerIDValidation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "5a2f12dd-41b0-4b4e-a55c-65b0c09a3c3c", want: "5a2f12dd-41b0-4b4e-a55c-65b0c09a3c3c"},
		{in: "not-a-uuid", wantErr: true},
		{in: "5a2f12dd-41b0-4b4e-a55c", wantErr: true},
	}
	for _, tt := range tests {
		got, err := playerID(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("playerID(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("playerID(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("playerID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchIDValidation(t *testing.T) {
	t.Parallel()
	if _, err := matchID(""); err == nil {
		t.Error("expected error for empty match id")
	}
	if _, err := matchID("zzz"); err == nil {
		t.Error("expected error for garbage match id")
	}
	if _, err := matchID("4b9d2f67-5be0-41c8-a987-a6e43b4e39b0"); err != nil {
		t.Errorf("valid match id rejected: %v", err)
	}
}
