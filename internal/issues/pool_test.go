package issues

import "testing"

func TestFormatID(t *testing.T) {
	tests := []struct {
		path       string
		definition string
		want       string
	}{
		{"entities/Moment.schema.json", "", "entities/Moment.schema.json"},
		{"entities/Moment.schema.json", "LoginStatus", "entities/Moment.schema.json#LoginStatus"},
		{"a.json", "B", "a.json#B"},
	}

	for _, tt := range tests {
		got := FormatID(tt.path, tt.definition)
		if got != tt.want {
			t.Errorf("FormatID(%q, %q) = %q, want %q", tt.path, tt.definition, got, tt.want)
		}
	}
}

func TestSplitID(t *testing.T) {
	tests := []struct {
		id       string
		wantPath string
		wantDef  string
	}{
		{"entities/Moment.schema.json", "entities/Moment.schema.json", ""},
		{"entities/Moment.schema.json#LoginStatus", "entities/Moment.schema.json", "LoginStatus"},
		{"a.json#", "a.json", ""},
	}

	for _, tt := range tests {
		path, def := SplitID(tt.id)
		if path != tt.wantPath || def != tt.wantDef {
			t.Errorf("SplitID(%q) = (%q, %q), want (%q, %q)", tt.id, path, def, tt.wantPath, tt.wantDef)
		}
	}
}

func BenchmarkFormatID_WithPool(b *testing.B) {
	for b.Loop() {
		_ = FormatID("entities/Moment.schema.json", "LoginStatus")
	}
}

func BenchmarkFormatID_WithoutPool(b *testing.B) {
	for b.Loop() {
		_ = "entities/Moment.schema.json" + "#" + "LoginStatus"
	}
}
