package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	require.Equal(t, 3, cat.Len())
	require.Equal(t, []string{"v", "u", "w"}, cat.Names())
	require.Equal(t, "u", cat.Name(1))
	require.Equal(t, "#7", cat.Name(7))

	id, err := cat.Lookup("w")
	require.NoError(t, err)
	require.Equal(t, ValueID(2), id)

	_, err = cat.Lookup("x")
	require.ErrorIs(t, err, ErrUnknownValue)
}

func TestNewCatalog(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		wantErr error
	}{
		{name: "single value", values: []string{"a"}},
		{name: "full", values: []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}},
		{name: "empty", values: nil, wantErr: ErrEmptyCatalog},
		{name: "too large", values: []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}, wantErr: ErrCatalogTooLarge},
		{name: "blank name", values: []string{"a", ""}, wantErr: ErrInvalidValueName},
		{name: "name with space", values: []string{"a b"}, wantErr: ErrInvalidValueName},
		{name: "comment marker", values: []string{"#a"}, wantErr: ErrInvalidValueName},
		{name: "duplicate", values: []string{"a", "b", "a"}, wantErr: ErrDuplicateValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat, err := NewCatalog(tc.values...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, cat)
				return
			}
			require.NoError(t, err)
			require.Equal(t, len(tc.values), cat.Len())
		})
	}
}

func TestCatalog_NamesIsCopy(t *testing.T) {
	cat := DefaultCatalog()
	names := cat.Names()
	names[0] = "changed"
	require.Equal(t, "v", cat.Name(0))
}
