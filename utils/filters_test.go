package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDList(t *testing.T) {
	ids, err := ParseIDList("1,3,5")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3, 5}, ids)

	ids, err = ParseIDList(" 2 ,, 4 ")
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 4}, ids)

	_, err = ParseIDList("1,xyz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xyz"`)

	_, err = ParseIDList(",,")
	assert.Error(t, err)

	_, err = ParseIDList("-1")
	assert.Error(t, err)
}
