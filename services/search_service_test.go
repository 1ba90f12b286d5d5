package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hazaribi/google-drive-clone-backend-secure/utils"
)

func TestNormalizeSearchParamsDefaults(t *testing.T) {
	p, err := normalizeSearchParams(SearchParams{Query: "report"})
	require.NoError(t, err)
	assert.Equal(t, "all", p.Kind)
	assert.Equal(t, searchDefaultLimit, p.Limit)
	assert.Equal(t, 1, p.Page)
}

func TestNormalizeSearchParamsClampsLimit(t *testing.T) {
	p, err := normalizeSearchParams(SearchParams{Query: "report", Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, searchMaxLimit, p.Limit)

	p, err = normalizeSearchParams(SearchParams{Query: "report", Limit: -3})
	require.NoError(t, err)
	assert.Equal(t, searchDefaultLimit, p.Limit)

	p, err = normalizeSearchParams(SearchParams{Query: "report", Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, p.Limit)
}

func TestNormalizeSearchParamsPage(t *testing.T) {
	p, err := normalizeSearchParams(SearchParams{Query: "report", Page: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)

	p, err = normalizeSearchParams(SearchParams{Query: "report", Page: 7})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Page)
}

func TestNormalizeSearchParamsEmptyQuery(t *testing.T) {
	_, err := normalizeSearchParams(SearchParams{})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
}

func TestNormalizeSearchParamsKinds(t *testing.T) {
	for _, kind := range []string{"files", "folders", "all"} {
		p, err := normalizeSearchParams(SearchParams{Query: "x", Kind: kind})
		require.NoError(t, err)
		assert.Equal(t, kind, p.Kind)
	}

	_, err := normalizeSearchParams(SearchParams{Query: "x", Kind: "documents"})
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
}
