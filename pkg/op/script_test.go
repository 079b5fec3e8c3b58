package op

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	cat := DefaultCatalog()

	script := `# rename race
5
add mv_attr u

delete sv_attr
delete mv_attr v
rename to sv_attr w
rename to mv_attr u delete mv_attr v
`
	ops, err := ParseScript(strings.NewReader(script), cat, 9)
	require.NoError(t, err)
	require.Equal(t, []Operation{
		Add(1, MV, 1),
		DeleteAttr(2, SV),
		Delete(3, MV, 0),
		Rename(4, SV, 2, nil),
		Rename(5, MV, 1, &RDN{Attr: MV, Value: 0}),
	}, ops)
}

func TestParseScript_Errors(t *testing.T) {
	cat := DefaultCatalog()

	tests := []struct {
		name    string
		script  string
		wantErr error
		line    string
	}{
		{name: "empty", script: "", wantErr: ErrInvalidScript},
		{name: "only comments", script: "# nothing\n\n", wantErr: ErrInvalidScript},
		{name: "bad count", script: "three\n", wantErr: ErrInvalidScript, line: "line 1"},
		{name: "zero count", script: "0\n", wantErr: ErrOperationCount},
		{name: "count above bound", script: "10\n", wantErr: ErrOperationCount},
		{name: "too few operations", script: "2\nadd mv_attr u\n", wantErr: ErrOperationCount},
		{name: "too many operations", script: "1\nadd mv_attr u\nadd mv_attr w\n", wantErr: ErrOperationCount, line: "line 3"},
		{name: "unknown verb", script: "1\nmodify mv_attr u\n", wantErr: ErrInvalidScript, line: "line 2"},
		{name: "unknown attribute", script: "1\nadd cn u\n", wantErr: ErrUnknownAttribute},
		{name: "unknown value", script: "1\ndelete sv_attr q\n", wantErr: ErrUnknownValue},
		{name: "add without value", script: "1\nadd mv_attr\n", wantErr: ErrInvalidScript},
		{name: "rename without to", script: "1\nrename sv_attr u x y\n", wantErr: ErrInvalidScript},
		{name: "rename with trailing garbage", script: "1\nrename to sv_attr u delete\n", wantErr: ErrInvalidScript},
		{name: "rename deleting its target", script: "1\nrename to sv_attr u delete sv_attr u\n", wantErr: ErrOldRDNIsTarget},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript(strings.NewReader(tc.script), cat, 9)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.line != "" {
				require.Contains(t, err.Error(), tc.line)
			}
		})
	}
}

func TestParseScript_NoBound(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("12\n")
	for range 12 {
		sb.WriteString("add mv_attr w\n")
	}

	ops, err := ParseScript(strings.NewReader(sb.String()), DefaultCatalog(), 0)
	require.NoError(t, err)
	require.Len(t, ops, 12)
	require.EqualValues(t, 12, ops[11].CSN)
}

func TestScript_ParsesBack(t *testing.T) {
	cat := DefaultCatalog()
	gen := NewGenerator(7, cat, 9)

	for range 50 {
		ops := gen.Generate()
		parsed, err := ParseScript(strings.NewReader(Script(ops, cat)), cat, 9)
		require.NoError(t, err)
		require.Equal(t, ops, parsed)
	}
}

func TestScriptLine(t *testing.T) {
	cat := DefaultCatalog()

	require.Equal(t, "add sv_attr v", Add(1, SV, 0).ScriptLine(cat))
	require.Equal(t, "delete mv_attr w", Delete(1, MV, 2).ScriptLine(cat))
	require.Equal(t, "delete sv_attr", DeleteAttr(1, SV).ScriptLine(cat))
	require.Equal(t, "rename to mv_attr u delete sv_attr u",
		Rename(1, MV, 1, &RDN{Attr: SV, Value: 1}).ScriptLine(cat))
}
