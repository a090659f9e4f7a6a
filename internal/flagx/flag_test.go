package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-o", "index.tlf", "-compression", "zlib"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{"-o", "index.tlf"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--output=alt.tlf", "-compression", "zlib"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{"--output=alt.tlf"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--output=first.tlf", "-o", "second.tlf", "-x", "1"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{"--output=first.tlf", "-o", "second.tlf"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "folderid"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-o"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{"-o"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-o", "-notvalue"},
			allowedFlags: []string{"-o", "--output"},
			want:         []string{"-o"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterFlagArgs(t *testing.T) {
	valueFlags := []string{"-o", "-compression"}
	boolFlags := []string{"-share-files", "-no-recursion"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "bool flag does not swallow following positional",
			args: []string{"-share-files", "folderid", "-o", "index.tlf"},
			want: []string{"-share-files=true", "-o", "index.tlf"},
		},
		{
			name: "bool flag in equals form kept as-is",
			args: []string{"-no-recursion=true", "folderid"},
			want: []string{"-no-recursion=true"},
		},
		{
			name: "value flag keeps separate value",
			args: []string{"-compression", "zlib"},
			want: []string{"-compression", "zlib"},
		},
		{
			name: "unknown flags dropped",
			args: []string{"-x", "1", "-share-files"},
			want: []string{"-share-files=true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFlagArgs(tt.args, valueFlags, boolFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FilterFlagArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPositionals(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		boolFlags []string
		want      []string
	}{
		{
			name:      "folder ids around flags",
			args:      []string{"id1", "-o", "index.tlf", "id2"},
			boolFlags: nil,
			want:      []string{"id1", "id2"},
		},
		{
			name:      "bool flag does not consume value",
			args:      []string{"-share-files", "id1"},
			boolFlags: []string{"-share-files"},
			want:      []string{"id1"},
		},
		{
			name:      "equals form consumes nothing",
			args:      []string{"--output=index.tlf", "id1"},
			boolFlags: nil,
			want:      []string{"id1"},
		},
		{
			name:      "no positionals",
			args:      []string{"-o", "index.tlf"},
			boolFlags: nil,
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Positionals(tt.args, tt.boolFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Positionals() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "conf.json", "id1"}
	assert.Equal(t, "conf.json", JsonConfigFlags())

	os.Args = []string{"cmd", "--config=alt.json"}
	assert.Equal(t, "alt.json", JsonConfigFlags())

	os.Args = []string{"cmd", "-config=fromlong.json", "id1"}
	assert.Equal(t, "fromlong.json", JsonConfigFlags())

	os.Args = []string{"cmd", "--c=short.json"}
	assert.Equal(t, "short.json", JsonConfigFlags())

	os.Args = []string{"cmd", "id1"}
	assert.Equal(t, "", JsonConfigFlags())
}
