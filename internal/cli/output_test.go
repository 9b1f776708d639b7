package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		name  string
		yes   bool
		input string
		want  bool
	}{
		{"yes flag skips the prompt", true, "", true},
		{"y accepts", false, "y\n", true},
		{"full yes accepts", false, "YES\n", true},
		{"n declines", false, "n\n", false},
		{"empty line declines", false, "\n", false},
		{"eof declines", false, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "x"}
			cmd.Flags().Bool("yes", tc.yes, "")
			cmd.SetIn(strings.NewReader(tc.input))
			cmd.SetOut(&bytes.Buffer{})
			assert.Equal(t, tc.want, Confirm(cmd, "Proceed?"))
		})
	}
}
