package commands

import (
	"testing"

	"github.com/erraggy/schemagraph/classifier"
)

func TestSetupClassifyFlags(t *testing.T) {
	fs, flags := SetupClassifyFlags()

	t.Run("default values", func(t *testing.T) {
		if flags.Format != FormatText {
			t.Errorf("expected Format %q by default, got %q", FormatText, flags.Format)
		}
		if flags.Kind != "" {
			t.Errorf("expected Kind to be empty by default, got %q", flags.Kind)
		}
		if flags.Detail {
			t.Error("expected Detail to be false by default")
		}
	})

	t.Run("parse flags", func(t *testing.T) {
		if err := fs.Parse([]string{"--kind", "struct", "--detail", "./schemas"}); err != nil {
			t.Fatalf("unexpected parse error: %v", err)
		}
		if flags.Kind != "struct" {
			t.Errorf("expected Kind 'struct', got %q", flags.Kind)
		}
		if !flags.Detail {
			t.Error("expected Detail to be true")
		}
	})
}

func TestHandleClassify_NoArgs(t *testing.T) {
	if err := HandleClassify([]string{}); err == nil {
		t.Error("expected error when no corpus provided")
	}
}

func TestHandleClassify_Help(t *testing.T) {
	if err := HandleClassify([]string{"--help"}); err != nil {
		t.Errorf("unexpected error for help: %v", err)
	}
}

func TestHandleClassify_InvalidKind(t *testing.T) {
	if err := HandleClassify([]string{"--kind", "tuple", "./schemas"}); err == nil {
		t.Error("expected error for invalid kind")
	}
}

func TestHandleClassify_Corpus(t *testing.T) {
	dir := writeTestCorpus(t)

	t.Run("summary", func(t *testing.T) {
		if err := HandleClassify([]string{"-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("kind filter", func(t *testing.T) {
		if err := HandleClassify([]string{"--kind", "discriminated_union", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("detail json", func(t *testing.T) {
		if err := HandleClassify([]string{"--detail", "--format", "json", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if err := HandleClassify([]string{"--kind", "map", "-q", dir}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestParseTypeKind(t *testing.T) {
	tests := []struct {
		label     string
		want      classifier.TypeKind
		wantSet   bool
		wantError bool
	}{
		{"", 0, false, false},
		{"struct", classifier.KindStruct, true, false},
		{"enum", classifier.KindEnum, true, false},
		{"discriminated_union", classifier.KindDiscriminatedUnion, true, false},
		{"newtype", classifier.KindNewType, true, false},
		{"collection", classifier.KindCollection, true, false},
		{"map", classifier.KindMap, true, false},
		{"alias", classifier.KindAlias, true, false},
		{"STRUCT", classifier.KindStruct, true, false},
		{"tuple", 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, set, err := ParseTypeKind(tt.label)
			if (err != nil) != tt.wantError {
				t.Fatalf("ParseTypeKind(%q) error = %v, wantError %v", tt.label, err, tt.wantError)
			}
			if err != nil {
				return
			}
			if set != tt.wantSet {
				t.Errorf("ParseTypeKind(%q) set = %v, want %v", tt.label, set, tt.wantSet)
			}
			if got != tt.want {
				t.Errorf("ParseTypeKind(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}
