package cli

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestCompleteSSLModes(t *testing.T) {
	tests := []struct {
		prefix string
		want   []string
	}{
		{"", sslModes},
		{"verify", []string{"verify-ca", "verify-full"}},
		{"dis", []string{"disable"}},
		{"x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, directive := completeSSLModes(nil, nil, tt.prefix)
			if directive != cobra.ShellCompDirectiveNoFileComp {
				t.Errorf("directive = %v, want NoFileComp", directive)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("completeSSLModes(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("completeSSLModes(%q)[%d] = %q, want %q", tt.prefix, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCompleteAuthMethods(t *testing.T) {
	got, _ := completeAuthMethods(nil, nil, "a")
	if len(got) != 2 || got[0] != "aws" || got[1] != "azure" {
		t.Errorf("completeAuthMethods(\"a\") = %v", got)
	}
}

func TestCompleteDirectories(t *testing.T) {
	_, directive := completeDirectories(nil, nil, "")
	if directive != cobra.ShellCompDirectiveFilterDirs {
		t.Errorf("directive = %v, want FilterDirs", directive)
	}
}
